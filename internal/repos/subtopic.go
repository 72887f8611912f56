package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/types"
)

type SubtopicRepo interface {
  GetByID(ctx context.Context, tx *gorm.DB, subtopicID uuid.UUID) (*types.Subtopic, error)
  ListByTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, difficulty string, limit int) ([]*types.Subtopic, error)
  Create(ctx context.Context, tx *gorm.DB, subtopics []*types.Subtopic) ([]*types.Subtopic, error)
}

type subtopicRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSubtopicRepo(db *gorm.DB, baseLog *logger.Logger) SubtopicRepo {
  repoLog := baseLog.With("repo", "SubtopicRepo")
  return &subtopicRepo{db: db, log: repoLog}
}

func (sr *subtopicRepo) GetByID(ctx context.Context, tx *gorm.DB, subtopicID uuid.UUID) (*types.Subtopic, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var result types.Subtopic
  if err := transaction.WithContext(ctx).
    Where("id = ?", subtopicID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (sr *subtopicRepo) ListByTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID, difficulty string, limit int) ([]*types.Subtopic, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  query := transaction.WithContext(ctx).
    Where("topic_id = ?", topicID)
  if difficulty != "" {
    query = query.Where("difficulty_level = ?", difficulty)
  }
  if limit > 0 {
    query = query.Limit(limit)
  }

  var results []*types.Subtopic
  if err := query.
    Order("difficulty_level, name").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *subtopicRepo) Create(ctx context.Context, tx *gorm.DB, subtopics []*types.Subtopic) ([]*types.Subtopic, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  if len(subtopics) == 0 {
    return []*types.Subtopic{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&subtopics).Error; err != nil {
    return nil, err
  }
  return subtopics, nil
}
