package handlers

import (
  "fmt"
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/services"
)

type AnalogyHandler struct {
  analogyService services.AnalogyService
  log            *logger.Logger
}

func NewAnalogyHandler(analogyService services.AnalogyService, log *logger.Logger) *AnalogyHandler {
  return &AnalogyHandler{
    analogyService: analogyService,
    log:            log.With("handler", "AnalogyHandler"),
  }
}

type GenerateAnalogyRequest struct {
  UserIdentifier       string     `json:"user_identifier" binding:"required"`
  ProfessionID         uuid.UUID  `json:"profession_id" binding:"required"`
  TopicID              uuid.UUID  `json:"topic_id" binding:"required"`
  SubtopicID           *uuid.UUID `json:"subtopic_id,omitempty"`
  ConceptName          string     `json:"concept_name,omitempty"`
  ConceptDescription   string     `json:"concept_description,omitempty"`
  DifficultyPreference string     `json:"difficulty_preference,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
  CreativeLevel        int        `json:"creative_level,omitempty" binding:"omitempty,min=1,max=5"`
  MaxTokens            int        `json:"max_tokens,omitempty" binding:"omitempty,min=100,max=8000"`
  ResponseFormat       string     `json:"response_format,omitempty" binding:"omitempty,oneof=concise detailed comprehensive"`
}

func (ah *AnalogyHandler) Generate(c *gin.Context) {
  var req GenerateAnalogyRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  view, err := ah.analogyService.Generate(c.Request.Context(), services.GenerateAnalogyInput{
    UserIdentifier:       req.UserIdentifier,
    ProfessionID:         req.ProfessionID,
    TopicID:              req.TopicID,
    SubtopicID:           req.SubtopicID,
    ConceptName:          req.ConceptName,
    ConceptDescription:   req.ConceptDescription,
    DifficultyPreference: req.DifficultyPreference,
    CreativeLevel:        req.CreativeLevel,
    MaxTokens:            req.MaxTokens,
    ResponseFormat:       req.ResponseFormat,
  })
  if err != nil {
    if !services.IsNotFound(err) {
      ah.log.Error("Failed to generate analogy", "error", err)
    }
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, view)
}

type AnalogyFeedbackRequest struct {
  AnalogyID             uuid.UUID `json:"analogy_id" binding:"required"`
  UserRating            int       `json:"user_rating" binding:"required,min=1,max=5"`
  FeedbackText          string    `json:"feedback_text,omitempty"`
  UnderstandingImproved bool      `json:"understanding_improved"`
}

func (ah *AnalogyHandler) Feedback(c *gin.Context) {
  var req AnalogyFeedbackRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  outcome, err := ah.analogyService.SubmitFeedback(c.Request.Context(), req.AnalogyID, req.UserRating, req.UnderstandingImproved)
  if err != nil {
    if !services.IsNotFound(err) {
      ah.log.Error("Failed to submit feedback", "error", err)
    }
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{
    "message":             "Feedback submitted successfully",
    "analogy_id":          outcome.AnalogyID,
    "rating":              outcome.Rating,
    "understanding_score": outcome.UnderstandingScore,
  })
}

type QuickExplainRequest struct {
  Profession      string `json:"profession" binding:"required"`
  Concept         string `json:"concept" binding:"required"`
  Context         string `json:"context,omitempty"`
  CreativityLevel int    `json:"creativity_level,omitempty" binding:"omitempty,min=1,max=5"`
  MaxTokens       int    `json:"max_tokens,omitempty" binding:"omitempty,min=100,max=8000"`
  ResponseLength  string `json:"response_length,omitempty" binding:"omitempty,oneof=concise detailed comprehensive"`
}

func (ah *AnalogyHandler) QuickExplain(c *gin.Context) {
  var req QuickExplainRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", err)
    return
  }

  ah.log.Info("Quick explanation requested", "profession", req.Profession, "concept", req.Concept)
  result := ah.analogyService.QuickExplain(c.Request.Context(), req.Profession, req.Concept, req.Context, req.CreativityLevel, req.MaxTokens, req.ResponseLength)
  RespondOK(c, result)
}

func (ah *AnalogyHandler) UserSessions(c *gin.Context) {
  userIdentifier := c.Param("identifier")
  sessions, err := ah.analogyService.UserSessions(c.Request.Context(), userIdentifier)
  if err != nil {
    ah.log.Error("Failed to list user sessions", "user_identifier", userIdentifier, "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, sessions)
}

func (ah *AnalogyHandler) SessionAnalogies(c *gin.Context) {
  sessionID, err := uuid.Parse(c.Param("identifier"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid session id: %s", c.Param("identifier")))
    return
  }

  analogies, err := ah.analogyService.SessionAnalogies(c.Request.Context(), sessionID)
  if err != nil {
    if !services.IsNotFound(err) {
      ah.log.Error("Failed to list session analogies", "session_id", sessionID, "error", err)
    }
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, analogies)
}

func (ah *AnalogyHandler) PopularCombinations(c *gin.Context) {
  combinations, err := ah.analogyService.PopularCombinations(c.Request.Context())
  if err != nil {
    ah.log.Error("Failed to compute popular combinations", "error", err)
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, combinations)
}

func (ah *AnalogyHandler) ServiceHealth(c *gin.Context) {
  RespondOK(c, gin.H{
    "status":                "healthy",
    "model":                 ah.analogyService.Model(),
    "supported_professions": services.SupportedProfessions(),
  })
}

// Examples serves pre-crafted demo analogies; handy for frontends before
// any real generation has happened.
func (ah *AnalogyHandler) Examples(c *gin.Context) {
  RespondOK(c, demoAnalogies)
}

var demoAnalogies = []gin.H{
  {
    "profession":    "Gaming",
    "concept":       "Recursion",
    "analogy_title": "Recursion is Like Dungeon Crawling with Nested Instances",
    "preview":       "Just like how some RPGs have dungeons that contain smaller dungeons, recursion is a function that calls itself to solve smaller versions of the same problem...",
    "difficulty":    "intermediate",
    "rating":        4.8,
  },
  {
    "profession":    "Cooking",
    "concept":       "Binary Trees",
    "analogy_title": "Binary Trees are Like Recipe Organization Systems",
    "preview":       "Imagine organizing your recipes where each main category can only have two subcategories - like 'Quick Meals' splitting into 'Under 15 min' and 'Under 30 min'...",
    "difficulty":    "beginner",
    "rating":        4.6,
  },
  {
    "profession":    "Sports",
    "concept":       "Hash Tables",
    "analogy_title": "Hash Tables Work Like Team Position Assignments",
    "preview":       "Think of assigning players to positions using their jersey numbers. A hash function is like a formula that determines which position a player goes to...",
    "difficulty":    "intermediate",
    "rating":        4.5,
  },
  {
    "profession":    "Music",
    "concept":       "Dynamic Programming",
    "analogy_title": "Dynamic Programming is Like Building Musical Arrangements",
    "preview":       "When composing a symphony, you don't rewrite the entire piece every time. You build upon previous sections, reusing themes and motifs...",
    "difficulty":    "advanced",
    "rating":        4.9,
  },
  {
    "profession":    "Business",
    "concept":       "Graph Traversal",
    "analogy_title": "Graph Traversal is Like Organizational Network Analysis",
    "preview":       "Imagine mapping out how information flows through your company. Graph traversal algorithms are like systematic ways to visit every department...",
    "difficulty":    "intermediate",
    "rating":        4.4,
  },
}
