package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/types"
)

type TopicRepo interface {
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
  GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error)
  GetByIDWithSubtopics(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error)
  Create(ctx context.Context, tx *gorm.DB, topics []*types.Topic) ([]*types.Topic, error)
}

type topicRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
  repoLog := baseLog.With("repo", "TopicRepo")
  return &topicRepo{db: db, log: repoLog}
}

func (tr *topicRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var results []*types.Topic
  if err := transaction.WithContext(ctx).
    Order("name").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (tr *topicRepo) GetByID(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var result types.Topic
  if err := transaction.WithContext(ctx).
    Where("id = ?", topicID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (tr *topicRepo) GetByIDWithSubtopics(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (*types.Topic, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  var result types.Topic
  if err := transaction.WithContext(ctx).
    Preload("Subtopics", func(db *gorm.DB) *gorm.DB {
      return db.Order("difficulty_level, name")
    }).
    Where("id = ?", topicID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (tr *topicRepo) Create(ctx context.Context, tx *gorm.DB, topics []*types.Topic) ([]*types.Topic, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }

  if len(topics) == 0 {
    return []*types.Topic{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&topics).Error; err != nil {
    return nil, err
  }
  return topics, nil
}
