package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/conceptbridge-backend/internal/logger"
  "github.com/yungbote/conceptbridge-backend/internal/types"
)

type ProfessionRepo interface {
  GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Profession, error)
  GetByID(ctx context.Context, tx *gorm.DB, professionID uuid.UUID) (*types.Profession, error)
  Create(ctx context.Context, tx *gorm.DB, professions []*types.Profession) ([]*types.Profession, error)
}

type professionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProfessionRepo(db *gorm.DB, baseLog *logger.Logger) ProfessionRepo {
  repoLog := baseLog.With("repo", "ProfessionRepo")
  return &professionRepo{db: db, log: repoLog}
}

func (pr *professionRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Profession, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Profession
  if err := transaction.WithContext(ctx).
    Order("name").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *professionRepo) GetByID(ctx context.Context, tx *gorm.DB, professionID uuid.UUID) (*types.Profession, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Profession
  if err := transaction.WithContext(ctx).
    Where("id = ?", professionID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (pr *professionRepo) Create(ctx context.Context, tx *gorm.DB, professions []*types.Profession) ([]*types.Profession, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(professions) == 0 {
    return []*types.Profession{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&professions).Error; err != nil {
    return nil, err
  }
  return professions, nil
}
