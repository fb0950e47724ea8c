package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageText is one versioned text for an image in one language. Rows are
// append-only: an update inserts the next version, existing rows are never
// touched. The latest text for an (image, language) key is the row with the
// highest version.
type ImageText struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ImageID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_image_texts_key_version;index" json:"image_id"`
	Image        Image     `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	LanguageCode string    `gorm:"size:10;not null;uniqueIndex:ux_image_texts_key_version" json:"language_code"`
	Text         string    `gorm:"type:text;not null" json:"text"`
	Version      int       `gorm:"not null;uniqueIndex:ux_image_texts_key_version" json:"version"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *ImageText) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// AudioClip caches synthesized speech for one ImageText row. Kept in its own
// table so the translation history itself stays immutable.
type AudioClip struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ImageTextID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"image_text_id"`
	ImageText   ImageText `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	AudioURL    string    `gorm:"type:text;not null" json:"audio_url"`
	DurationSec float64   `json:"duration_sec"`
	Voice       string    `gorm:"size:100" json:"voice"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (a *AudioClip) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
