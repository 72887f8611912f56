package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/types"
)

// PopularCombination is one row of the profession x topic analytics query.
type PopularCombination struct {
  Profession       string  `json:"profession"`
  Topic            string  `json:"topic"`
  AnalogyCount     int64   `json:"analogy_count"`
  AvgRating        float64 `json:"average_rating"`
  AvgUnderstanding float64 `json:"average_understanding_score"`
}

type GeneratedAnalogyRepo interface {
  Create(ctx context.Context, tx *gorm.DB, analogy *types.GeneratedAnalogy) (*types.GeneratedAnalogy, error)
  GetByID(ctx context.Context, tx *gorm.DB, analogyID uuid.UUID) (*types.GeneratedAnalogy, error)
  UpdateFeedback(ctx context.Context, tx *gorm.DB, analogyID uuid.UUID, rating int, understandingScore float64) error
  ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.GeneratedAnalogy, error)
  CountBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (int64, error)
  CountAll(ctx context.Context, tx *gorm.DB) (int64, error)
  PopularCombinations(ctx context.Context, tx *gorm.DB, limit int) ([]*PopularCombination, error)
}

type generatedAnalogyRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGeneratedAnalogyRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedAnalogyRepo {
  repoLog := baseLog.With("repo", "GeneratedAnalogyRepo")
  return &generatedAnalogyRepo{db: db, log: repoLog}
}

func (ar *generatedAnalogyRepo) Create(ctx context.Context, tx *gorm.DB, analogy *types.GeneratedAnalogy) (*types.GeneratedAnalogy, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  if err := transaction.WithContext(ctx).Create(analogy).Error; err != nil {
    return nil, err
  }
  return analogy, nil
}

func (ar *generatedAnalogyRepo) GetByID(ctx context.Context, tx *gorm.DB, analogyID uuid.UUID) (*types.GeneratedAnalogy, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var result types.GeneratedAnalogy
  if err := transaction.WithContext(ctx).
    Where("id = ?", analogyID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ar *generatedAnalogyRepo) UpdateFeedback(ctx context.Context, tx *gorm.DB, analogyID uuid.UUID, rating int, understandingScore float64) error {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  return transaction.WithContext(ctx).
    Model(&types.GeneratedAnalogy{}).
    Where("id = ?", analogyID).
    Updates(map[string]interface{}{
      "user_rating":         rating,
      "understanding_score": understandingScore,
    }).Error
}

func (ar *generatedAnalogyRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.GeneratedAnalogy, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var results []*types.GeneratedAnalogy
  if err := transaction.WithContext(ctx).
    Where("session_id = ?", sessionID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (ar *generatedAnalogyRepo) CountBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.GeneratedAnalogy{}).
    Where("session_id = ?", sessionID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (ar *generatedAnalogyRepo) CountAll(ctx context.Context, tx *gorm.DB) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.GeneratedAnalogy{}).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (ar *generatedAnalogyRepo) PopularCombinations(ctx context.Context, tx *gorm.DB, limit int) ([]*PopularCombination, error) {
  transaction := tx
  if transaction == nil {
    transaction = ar.db
  }
  if limit <= 0 {
    limit = 20
  }

  var results []*PopularCombination
  if err := transaction.WithContext(ctx).
    Model(&types.GeneratedAnalogy{}).
    Select(`profession.name AS profession,
            topic.name AS topic,
            COUNT(generated_analogy.id) AS analogy_count,
            COALESCE(AVG(generated_analogy.user_rating), 0) AS avg_rating,
            COALESCE(AVG(generated_analogy.understanding_score), 0) AS avg_understanding`).
    Joins("JOIN learning_session ON generated_analogy.session_id = learning_session.id").
    Joins("JOIN profession ON learning_session.profession_id = profession.id").
    Joins("JOIN topic ON learning_session.topic_id = topic.id").
    Group("profession.name, topic.name").
    Order("analogy_count DESC").
    Limit(limit).
    Scan(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
