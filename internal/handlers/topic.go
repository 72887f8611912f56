package handlers

import (
  "fmt"
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/conceptbridge-backend/internal/services"
  "github.com/yungbote/conceptbridge-backend/internal/types"
)

type TopicHandler struct {
  catalogService services.CatalogService
}

func NewTopicHandler(catalogService services.CatalogService) *TopicHandler {
  return &TopicHandler{catalogService: catalogService}
}

func (th *TopicHandler) List(c *gin.Context) {
  topics, err := th.catalogService.ListTopics(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, topics)
}

func (th *TopicHandler) Get(c *gin.Context) {
  topicID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid topic id: %s", c.Param("id")))
    return
  }
  topic, err := th.catalogService.GetTopic(c.Request.Context(), topicID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, topic)
}

func (th *TopicHandler) ListSubtopics(c *gin.Context) {
  topicID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid topic id: %s", c.Param("id")))
    return
  }

  difficulty := c.Query("difficulty")
  if difficulty != "" && !types.ValidDifficulty(difficulty) {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid difficulty: %s", difficulty))
    return
  }

  limit := 0
  if raw := c.Query("limit"); raw != "" {
    parsed, err := strconv.Atoi(raw)
    if err != nil || parsed < 1 || parsed > 50 {
      RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("limit must be between 1 and 50"))
      return
    }
    limit = parsed
  }

  subtopics, err := th.catalogService.ListSubtopics(c.Request.Context(), topicID, difficulty, limit)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, subtopics)
}

func (th *TopicHandler) GetWithSubtopics(c *gin.Context) {
  topicID, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid topic id: %s", c.Param("id")))
    return
  }

  difficulty := c.Query("difficulty")
  if difficulty != "" && !types.ValidDifficulty(difficulty) {
    RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("invalid difficulty: %s", difficulty))
    return
  }

  topic, err := th.catalogService.GetTopicWithSubtopics(c.Request.Context(), topicID, difficulty)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, topic)
}
