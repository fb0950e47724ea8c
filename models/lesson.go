package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Lesson struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Slug           string    `gorm:"size:255;index" json:"slug"`
	TargetLanguage string    `gorm:"size:10;not null;index" json:"target_language"`
	Published      bool      `gorm:"not null;default:false" json:"published"` // false = draft
	CreatedBy      uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	Creator        User      `gorm:"foreignKey:CreatedBy;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Exercises []Exercise `gorm:"foreignKey:LessonID" json:"exercises,omitempty"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
