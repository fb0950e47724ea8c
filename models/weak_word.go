package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeakWord tracks images a learner keeps getting wrong in one language.
// Data shape only; review scheduling lives outside this service.
type WeakWord struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_weak_words_key" json:"user_id"`
	User         User      `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	ImageID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_weak_words_key" json:"image_id"`
	Image        Image     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	LanguageCode string    `gorm:"size:10;not null;uniqueIndex:ux_weak_words_key" json:"language_code"`
	WrongCount   int       `gorm:"not null;default:0" json:"wrong_count"`
	LastSeenAt   time.Time `json:"last_seen_at"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (w *WeakWord) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
