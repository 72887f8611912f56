package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

// LearningSession groups analogy requests under one (user, profession, topic)
// context. At most one active session per tuple is the intended invariant;
// nothing enforces it atomically, so concurrent creates can race.
type LearningSession struct {
  ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  UserIdentifier string     `gorm:"not null;index;column:user_identifier" json:"user_identifier"`
  ProfessionID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"profession_id"`
  Profession     *Profession `gorm:"foreignKey:ProfessionID;references:ID" json:"profession,omitempty"`
  TopicID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"topic_id"`
  Topic          *Topic     `gorm:"foreignKey:TopicID;references:ID" json:"topic,omitempty"`
  SubtopicID     *uuid.UUID `gorm:"type:uuid" json:"subtopic_id,omitempty"`
  Subtopic       *Subtopic  `gorm:"foreignKey:SubtopicID;references:ID" json:"subtopic,omitempty"`
  SessionStart   time.Time  `gorm:"not null;column:session_start" json:"session_start"`
  SessionEnd     *time.Time `gorm:"column:session_end" json:"session_end,omitempty"`
  IsActive       bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
}

func (LearningSession) TableName() string { return "learning_session" }

func (ls *LearningSession) BeforeCreate(tx *gorm.DB) error {
  if ls.ID == uuid.Nil {
    ls.ID = uuid.New()
  }
  if ls.SessionStart.IsZero() {
    ls.SessionStart = time.Now().UTC()
  }
  return nil
}
