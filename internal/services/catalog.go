package services

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/repos"
  "github.com/yungbote/conceptbridge-backend/internal/types"
)

// CatalogService serves the read-mostly profession/topic/subtopic reference
// data.
type CatalogService interface {
  ListProfessions(ctx context.Context) ([]*types.Profession, error)
  GetProfession(ctx context.Context, professionID uuid.UUID) (*types.Profession, error)
  ListTopics(ctx context.Context) ([]*types.Topic, error)
  GetTopic(ctx context.Context, topicID uuid.UUID) (*types.Topic, error)
  ListSubtopics(ctx context.Context, topicID uuid.UUID, difficulty string, limit int) ([]*types.Subtopic, error)
  GetTopicWithSubtopics(ctx context.Context, topicID uuid.UUID, difficulty string) (*types.Topic, error)
}

type catalogService struct {
  db             *gorm.DB
  log            *logger.Logger
  professionRepo repos.ProfessionRepo
  topicRepo      repos.TopicRepo
  subtopicRepo   repos.SubtopicRepo
}

func NewCatalogService(db *gorm.DB, log *logger.Logger, professionRepo repos.ProfessionRepo, topicRepo repos.TopicRepo, subtopicRepo repos.SubtopicRepo) CatalogService {
  return &catalogService{
    db:             db,
    log:            log.With("service", "CatalogService"),
    professionRepo: professionRepo,
    topicRepo:      topicRepo,
    subtopicRepo:   subtopicRepo,
  }
}

func (cs *catalogService) ListProfessions(ctx context.Context) ([]*types.Profession, error) {
  return cs.professionRepo.GetAll(ctx, nil)
}

func (cs *catalogService) GetProfession(ctx context.Context, professionID uuid.UUID) (*types.Profession, error) {
  profession, err := cs.professionRepo.GetByID(ctx, nil, professionID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, NotFound("Profession", professionID.String())
    }
    return nil, err
  }
  return profession, nil
}

func (cs *catalogService) ListTopics(ctx context.Context) ([]*types.Topic, error) {
  return cs.topicRepo.GetAll(ctx, nil)
}

func (cs *catalogService) GetTopic(ctx context.Context, topicID uuid.UUID) (*types.Topic, error) {
  topic, err := cs.topicRepo.GetByID(ctx, nil, topicID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, NotFound("Topic", topicID.String())
    }
    return nil, err
  }
  return topic, nil
}

func (cs *catalogService) ListSubtopics(ctx context.Context, topicID uuid.UUID, difficulty string, limit int) ([]*types.Subtopic, error) {
  // Verify the topic exists first so an unknown id is a 404, not an empty list.
  if _, err := cs.GetTopic(ctx, topicID); err != nil {
    return nil, err
  }
  return cs.subtopicRepo.ListByTopic(ctx, nil, topicID, difficulty, limit)
}

func (cs *catalogService) GetTopicWithSubtopics(ctx context.Context, topicID uuid.UUID, difficulty string) (*types.Topic, error) {
  topic, err := cs.topicRepo.GetByIDWithSubtopics(ctx, nil, topicID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, NotFound("Topic", topicID.String())
    }
    return nil, err
  }
  if difficulty != "" {
    filtered := topic.Subtopics[:0]
    for _, st := range topic.Subtopics {
      if st.DifficultyLevel == difficulty {
        filtered = append(filtered, st)
      }
    }
    topic.Subtopics = filtered
  }
  return topic, nil
}
