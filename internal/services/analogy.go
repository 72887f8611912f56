package services

import (
  "context"
  "encoding/json"
  "errors"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/repos"
  "github.com/yungbote/conceptbridge-backend/internal/types"
)

// GenerateAnalogyInput is the validated request for the analogy pipeline.
// Zero-valued optional fields get defaults in applyDefaults.
type GenerateAnalogyInput struct {
  UserIdentifier       string
  ProfessionID         uuid.UUID
  TopicID              uuid.UUID
  SubtopicID           *uuid.UUID
  ConceptName          string
  ConceptDescription   string
  DifficultyPreference string
  CreativeLevel        int
  MaxTokens            int
  ResponseFormat       string
}

func (in *GenerateAnalogyInput) applyDefaults() {
  if in.DifficultyPreference == "" {
    in.DifficultyPreference = types.DifficultyIntermediate
  }
  if in.CreativeLevel == 0 {
    in.CreativeLevel = 3
  }
  if in.MaxTokens == 0 {
    in.MaxTokens = 1500
  }
  if in.ResponseFormat == "" {
    in.ResponseFormat = "detailed"
  }
}

// GeneratedAnalogyView is the API shape of one generated analogy.
type GeneratedAnalogyView struct {
  AnalogyID             uuid.UUID        `json:"analogy_id"`
  SessionID             uuid.UUID        `json:"session_id"`
  ConceptName           string           `json:"concept_name"`
  ConceptDescription    string           `json:"concept_description"`
  AnalogyTitle          string           `json:"analogy_title"`
  AnalogyExplanation    string           `json:"analogy_explanation"`
  Examples              []AnalogyExample `json:"examples"`
  ProfessionContext     string           `json:"profession_context"`
  TopicContext          string           `json:"topic_context"`
  DifficultyLevel       string           `json:"difficulty_level"`
  AIModelUsed           string           `json:"ai_model_used"`
  GenerationTimeSeconds float64          `json:"generation_time_seconds"`
  FallbackUsed          bool             `json:"fallback_used"`
  CreatedAt             time.Time        `json:"created_at"`
}

// SessionView summarizes one learning session for history reads.
type SessionView struct {
  SessionID      uuid.UUID  `json:"session_id"`
  UserIdentifier string     `json:"user_identifier"`
  ProfessionName string     `json:"profession_name"`
  TopicName      string     `json:"topic_name"`
  SubtopicName   *string    `json:"subtopic_name,omitempty"`
  SessionStart   time.Time  `json:"session_start"`
  IsActive       bool       `json:"is_active"`
  AnalogiesCount int64      `json:"analogies_count"`
}

// FeedbackOutcome reports the score computed from a feedback submission.
type FeedbackOutcome struct {
  AnalogyID          uuid.UUID `json:"analogy_id"`
  Rating             int       `json:"rating"`
  UnderstandingScore float64   `json:"understanding_score"`
}

type AnalogyService interface {
  Generate(ctx context.Context, in GenerateAnalogyInput) (*GeneratedAnalogyView, error)
  SubmitFeedback(ctx context.Context, analogyID uuid.UUID, rating int, understandingImproved bool) (*FeedbackOutcome, error)
  QuickExplain(ctx context.Context, profession, concept, contextText string, creativityLevel, maxTokens int, responseLength string) *QuickAnalogyResult
  UserSessions(ctx context.Context, userIdentifier string) ([]*SessionView, error)
  SessionAnalogies(ctx context.Context, sessionID uuid.UUID) ([]*GeneratedAnalogyView, error)
  PopularCombinations(ctx context.Context) ([]*repos.PopularCombination, error)
  Model() string
}

type analogyService struct {
  db             *gorm.DB
  log            *logger.Logger
  professionRepo repos.ProfessionRepo
  topicRepo      repos.TopicRepo
  subtopicRepo   repos.SubtopicRepo
  sessionRepo    repos.LearningSessionRepo
  analogyRepo    repos.GeneratedAnalogyRepo
  generation     GenerationService
}

func NewAnalogyService(
  db *gorm.DB,
  log *logger.Logger,
  professionRepo repos.ProfessionRepo,
  topicRepo repos.TopicRepo,
  subtopicRepo repos.SubtopicRepo,
  sessionRepo repos.LearningSessionRepo,
  analogyRepo repos.GeneratedAnalogyRepo,
  generation GenerationService,
) AnalogyService {
  return &analogyService{
    db:             db,
    log:            log.With("service", "AnalogyService"),
    professionRepo: professionRepo,
    topicRepo:      topicRepo,
    subtopicRepo:   subtopicRepo,
    sessionRepo:    sessionRepo,
    analogyRepo:    analogyRepo,
    generation:     generation,
  }
}

func (as *analogyService) Model() string {
  return as.generation.Model()
}

func (as *analogyService) Generate(ctx context.Context, in GenerateAnalogyInput) (*GeneratedAnalogyView, error) {
  in.applyDefaults()

  profession, err := as.professionRepo.GetByID(ctx, nil, in.ProfessionID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, NotFound("Profession", in.ProfessionID.String())
    }
    return nil, err
  }

  topic, err := as.topicRepo.GetByID(ctx, nil, in.TopicID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, NotFound("Topic", in.TopicID.String())
    }
    return nil, err
  }

  var subtopic *types.Subtopic
  if in.SubtopicID != nil {
    subtopic, err = as.subtopicRepo.GetByID(ctx, nil, *in.SubtopicID)
    if err != nil {
      if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, NotFound("Subtopic", in.SubtopicID.String())
      }
      return nil, err
    }
  }

  conceptName := in.ConceptName
  conceptDescription := in.ConceptDescription
  if conceptName == "" {
    if subtopic != nil {
      conceptName = subtopic.Name
    } else {
      conceptName = topic.Name
    }
  }
  if conceptDescription == "" {
    if subtopic != nil {
      conceptDescription = subtopic.Description
    } else {
      conceptDescription = topic.Description
    }
  }

  // The session row is committed before the (potentially multi-second)
  // external call so a stable session id exists even if generation fails.
  session, err := as.resolveSession(ctx, in)
  if err != nil {
    return nil, err
  }

  as.log.Info("Generating analogy",
    "profession", profession.Name,
    "concept", conceptName,
    "max_tokens", in.MaxTokens,
    "response_format", in.ResponseFormat,
  )

  result := as.generation.GenerateAnalogy(ctx, PromptInput{
    Profession:         profession.Name,
    ConceptName:        conceptName,
    ConceptDescription: conceptDescription,
    TopicContext:       topic.Name,
    DifficultyLevel:    in.DifficultyPreference,
    CreativityLevel:    in.CreativeLevel,
    MaxTokens:          in.MaxTokens,
    ResponseFormat:     in.ResponseFormat,
  })

  examplesJSON, err := json.Marshal(result.Examples)
  if err != nil {
    return nil, err
  }
  if result.Examples == nil {
    examplesJSON = []byte("[]")
  }

  record := &types.GeneratedAnalogy{
    SessionID:             session.ID,
    ConceptName:           conceptName,
    ConceptDescription:    conceptDescription,
    AnalogyTitle:          result.Title,
    AnalogyExplanation:    result.Explanation,
    AnalogyExamples:       examplesJSON,
    AIModelUsed:           as.generation.Model(),
    GenerationTimeSeconds: result.ElapsedSeconds,
    PromptTemplateVersion: PromptTemplateVersion,
  }
  if _, err := as.analogyRepo.Create(ctx, nil, record); err != nil {
    return nil, err
  }

  as.log.Info("Stored generated analogy", "analogy_id", record.ID, "session_id", session.ID, "fallback", result.Fallback)

  return &GeneratedAnalogyView{
    AnalogyID:             record.ID,
    SessionID:             session.ID,
    ConceptName:           conceptName,
    ConceptDescription:    conceptDescription,
    AnalogyTitle:          result.Title,
    AnalogyExplanation:    result.Explanation,
    Examples:              result.Examples,
    ProfessionContext:     profession.Name,
    TopicContext:          topic.Name,
    DifficultyLevel:       in.DifficultyPreference,
    AIModelUsed:           record.AIModelUsed,
    GenerationTimeSeconds: result.ElapsedSeconds,
    FallbackUsed:          result.Fallback,
    CreatedAt:             record.CreatedAt,
  }, nil
}

// resolveSession finds the active session for (user, profession, topic) or
// creates one. The find-or-create is not transactionally atomic: two
// concurrent requests for the same tuple can each create an "active"
// session. Known gap, kept as-is.
func (as *analogyService) resolveSession(ctx context.Context, in GenerateAnalogyInput) (*types.LearningSession, error) {
  session, err := as.sessionRepo.GetActive(ctx, nil, in.UserIdentifier, in.ProfessionID, in.TopicID)
  if err == nil {
    return session, nil
  }
  if !errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, err
  }

  session = &types.LearningSession{
    UserIdentifier: in.UserIdentifier,
    ProfessionID:   in.ProfessionID,
    TopicID:        in.TopicID,
    SubtopicID:     in.SubtopicID,
    IsActive:       true,
  }
  if _, err := as.sessionRepo.Create(ctx, nil, session); err != nil {
    return nil, err
  }
  as.log.Info("Created learning session", "session_id", session.ID, "user_identifier", in.UserIdentifier)
  return session, nil
}

// UnderstandingScore computes the feedback score: rating scaled to [0,1]
// plus a flat 0.2 bonus when the user reports improved understanding,
// capped at 1.0.
func UnderstandingScore(rating int, understandingImproved bool) float64 {
  score := float64(rating) / 5.0
  if understandingImproved {
    score += 0.2
  }
  if score > 1.0 {
    score = 1.0
  }
  return score
}

func (as *analogyService) SubmitFeedback(ctx context.Context, analogyID uuid.UUID, rating int, understandingImproved bool) (*FeedbackOutcome, error) {
  if _, err := as.analogyRepo.GetByID(ctx, nil, analogyID); err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, NotFound("Analogy", analogyID.String())
    }
    return nil, err
  }

  score := UnderstandingScore(rating, understandingImproved)
  if err := as.analogyRepo.UpdateFeedback(ctx, nil, analogyID, rating, score); err != nil {
    return nil, err
  }

  as.log.Info("Received analogy feedback", "analogy_id", analogyID, "rating", rating, "understanding_score", score)
  return &FeedbackOutcome{
    AnalogyID:          analogyID,
    Rating:             rating,
    UnderstandingScore: score,
  }, nil
}

// QuickExplain never touches the database.
func (as *analogyService) QuickExplain(ctx context.Context, profession, concept, contextText string, creativityLevel, maxTokens int, responseLength string) *QuickAnalogyResult {
  if creativityLevel == 0 {
    creativityLevel = 3
  }
  return as.generation.GenerateQuickAnalogy(ctx, profession, concept, contextText, creativityLevel, maxTokens, responseLength)
}

func (as *analogyService) UserSessions(ctx context.Context, userIdentifier string) ([]*SessionView, error) {
  sessions, err := as.sessionRepo.ListByUser(ctx, nil, userIdentifier)
  if err != nil {
    return nil, err
  }

  views := make([]*SessionView, 0, len(sessions))
  for _, session := range sessions {
    count, err := as.analogyRepo.CountBySession(ctx, nil, session.ID)
    if err != nil {
      return nil, err
    }
    view := &SessionView{
      SessionID:      session.ID,
      UserIdentifier: session.UserIdentifier,
      SessionStart:   session.SessionStart,
      IsActive:       session.IsActive,
      AnalogiesCount: count,
    }
    if session.Profession != nil {
      view.ProfessionName = session.Profession.Name
    }
    if session.Topic != nil {
      view.TopicName = session.Topic.Name
    }
    if session.Subtopic != nil {
      name := session.Subtopic.Name
      view.SubtopicName = &name
    }
    views = append(views, view)
  }
  return views, nil
}

func (as *analogyService) SessionAnalogies(ctx context.Context, sessionID uuid.UUID) ([]*GeneratedAnalogyView, error) {
  session, err := as.sessionRepo.GetByID(ctx, nil, sessionID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, NotFound("Learning session", sessionID.String())
    }
    return nil, err
  }

  analogies, err := as.analogyRepo.ListBySession(ctx, nil, sessionID)
  if err != nil {
    return nil, err
  }

  professionName := ""
  topicName := ""
  if session.Profession != nil {
    professionName = session.Profession.Name
  }
  if session.Topic != nil {
    topicName = session.Topic.Name
  }

  views := make([]*GeneratedAnalogyView, 0, len(analogies))
  for _, analogy := range analogies {
    var examples []AnalogyExample
    if len(analogy.AnalogyExamples) > 0 {
      if err := json.Unmarshal(analogy.AnalogyExamples, &examples); err != nil {
        as.log.Warn("Stored analogy examples failed to decode", "analogy_id", analogy.ID, "error", err)
      }
    }
    views = append(views, &GeneratedAnalogyView{
      AnalogyID:             analogy.ID,
      SessionID:             analogy.SessionID,
      ConceptName:           analogy.ConceptName,
      ConceptDescription:    analogy.ConceptDescription,
      AnalogyTitle:          analogy.AnalogyTitle,
      AnalogyExplanation:    analogy.AnalogyExplanation,
      Examples:              examples,
      ProfessionContext:     professionName,
      TopicContext:          topicName,
      DifficultyLevel:       types.DifficultyIntermediate,
      AIModelUsed:           analogy.AIModelUsed,
      GenerationTimeSeconds: analogy.GenerationTimeSeconds,
      CreatedAt:             analogy.CreatedAt,
    })
  }
  return views, nil
}

func (as *analogyService) PopularCombinations(ctx context.Context) ([]*repos.PopularCombination, error) {
  return as.analogyRepo.PopularCombinations(ctx, nil, 20)
}
