package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/types"
)

type LearningSessionRepo interface {
  GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.LearningSession, error)
  // GetActive returns the open session for the (user, profession, topic)
  // tuple, or gorm.ErrRecordNotFound when none exists.
  GetActive(ctx context.Context, tx *gorm.DB, userIdentifier string, professionID, topicID uuid.UUID) (*types.LearningSession, error)
  Create(ctx context.Context, tx *gorm.DB, session *types.LearningSession) (*types.LearningSession, error)
  ListByUser(ctx context.Context, tx *gorm.DB, userIdentifier string) ([]*types.LearningSession, error)
}

type learningSessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLearningSessionRepo(db *gorm.DB, baseLog *logger.Logger) LearningSessionRepo {
  repoLog := baseLog.With("repo", "LearningSessionRepo")
  return &learningSessionRepo{db: db, log: repoLog}
}

func (lr *learningSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.LearningSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var result types.LearningSession
  if err := transaction.WithContext(ctx).
    Preload("Profession").
    Preload("Topic").
    Preload("Subtopic").
    Where("id = ?", sessionID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (lr *learningSessionRepo) GetActive(ctx context.Context, tx *gorm.DB, userIdentifier string, professionID, topicID uuid.UUID) (*types.LearningSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var result types.LearningSession
  if err := transaction.WithContext(ctx).
    Where("user_identifier = ? AND profession_id = ? AND topic_id = ? AND is_active = ?", userIdentifier, professionID, topicID, true).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (lr *learningSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *types.LearningSession) (*types.LearningSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if err := transaction.WithContext(ctx).Create(session).Error; err != nil {
    return nil, err
  }
  return session, nil
}

func (lr *learningSessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userIdentifier string) ([]*types.LearningSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.LearningSession
  if err := transaction.WithContext(ctx).
    Preload("Profession").
    Preload("Topic").
    Preload("Subtopic").
    Where("user_identifier = ?", userIdentifier).
    Order("session_start DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
