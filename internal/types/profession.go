package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

type Profession struct {
  ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
  Description string    `gorm:"column:description" json:"description"`
  CreatedAt   time.Time `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (Profession) TableName() string { return "profession" }

func (p *Profession) BeforeCreate(tx *gorm.DB) error {
  if p.ID == uuid.Nil {
    p.ID = uuid.New()
  }
  return nil
}
