package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

type Topic struct {
  ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  Name        string     `gorm:"uniqueIndex;not null;column:name" json:"name"`
  Description string     `gorm:"column:description" json:"description"`
  Icon        string     `gorm:"column:icon" json:"icon"`
  Color       string     `gorm:"column:color" json:"color"`
  Subtopics   []Subtopic `gorm:"foreignKey:TopicID;references:ID" json:"subtopics,omitempty"`
  CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
  UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

func (Topic) TableName() string { return "topic" }

func (t *Topic) BeforeCreate(tx *gorm.DB) error {
  if t.ID == uuid.Nil {
    t.ID = uuid.New()
  }
  return nil
}
