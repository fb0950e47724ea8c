package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image is the identity record for a picture; the bytes live in external
// storage and only the public URL is kept here.
type Image struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OriginalName string    `gorm:"size:255;not null" json:"original_name"`
	URL          string    `gorm:"type:text;not null" json:"url"`
	FileSize     int64     `json:"file_size"` // bytes
	UploadedBy   uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by"`
	Uploader     User      `gorm:"foreignKey:UploadedBy;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`

	Texts []ImageText `gorm:"foreignKey:ImageID" json:"texts,omitempty"`
}

func (i *Image) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
