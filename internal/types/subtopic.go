package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

const (
  DifficultyBeginner     = "beginner"
  DifficultyIntermediate = "intermediate"
  DifficultyAdvanced     = "advanced"
)

func ValidDifficulty(level string) bool {
  switch level {
  case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
    return true
  default:
    return false
  }
}

type Subtopic struct {
  ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
  TopicID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"topic_id"`
  Topic            *Topic         `gorm:"constraint:OnDelete:CASCADE;foreignKey:TopicID;references:ID" json:"topic,omitempty"`
  Name             string         `gorm:"not null;column:name" json:"name"`
  Description      string         `gorm:"column:description" json:"description"`
  DifficultyLevel  string         `gorm:"not null;default:intermediate;column:difficulty_level" json:"difficulty_level"`
  EstimatedMinutes int            `gorm:"column:estimated_minutes" json:"estimated_minutes"`
  Prerequisites    datatypes.JSON `gorm:"column:prerequisites" json:"prerequisites,omitempty"`
  CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
  UpdatedAt        time.Time      `gorm:"not null" json:"updated_at"`
}

func (Subtopic) TableName() string { return "subtopic" }

func (s *Subtopic) BeforeCreate(tx *gorm.DB) error {
  if s.ID == uuid.Nil {
    s.ID = uuid.New()
  }
  return nil
}
