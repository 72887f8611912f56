package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"
)

// GeneratedAnalogy is append-only; only the feedback fields (UserRating,
// UnderstandingScore) mutate after creation.
type GeneratedAnalogy struct {
  ID                    uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
  SessionID             uuid.UUID        `gorm:"type:uuid;not null;index" json:"session_id"`
  Session               *LearningSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
  ConceptName           string           `gorm:"not null;column:concept_name" json:"concept_name"`
  ConceptDescription    string           `gorm:"column:concept_description" json:"concept_description"`
  AnalogyTitle          string           `gorm:"not null;column:analogy_title" json:"analogy_title"`
  AnalogyExplanation    string           `gorm:"not null;column:analogy_explanation" json:"analogy_explanation"`
  AnalogyExamples       datatypes.JSON   `gorm:"column:analogy_examples" json:"analogy_examples,omitempty"`
  AIModelUsed           string           `gorm:"column:ai_model_used" json:"ai_model_used"`
  GenerationTimeSeconds float64          `gorm:"column:generation_time_seconds" json:"generation_time_seconds"`
  PromptTemplateVersion string           `gorm:"column:prompt_template_version" json:"prompt_template_version"`
  UserRating            *int             `gorm:"column:user_rating" json:"user_rating,omitempty"`
  UnderstandingScore    *float64         `gorm:"column:understanding_score" json:"understanding_score,omitempty"`
  CreatedAt             time.Time        `gorm:"not null" json:"created_at"`
}

func (GeneratedAnalogy) TableName() string { return "generated_analogy" }

func (ga *GeneratedAnalogy) BeforeCreate(tx *gorm.DB) error {
  if ga.ID == uuid.Nil {
    ga.ID = uuid.New()
  }
  return nil
}
