package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
)

// ImageRegistry is the existence lookup the content services need. The gorm
// implementation below is the real one; tests can substitute their own.
type ImageRegistry interface {
	Exists(imageID uuid.UUID) (bool, error)
	Find(imageID uuid.UUID) (*models.Image, error)
}

type GormImageRegistry struct {
	db *gorm.DB
}

func NewImageRegistry(db *gorm.DB) *GormImageRegistry {
	return &GormImageRegistry{db: db}
}

func (r *GormImageRegistry) Exists(imageID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Image{}).Where("id = ?", imageID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Find returns nil without an error when the image does not exist.
func (r *GormImageRegistry) Find(imageID uuid.UUID) (*models.Image, error) {
	var image models.Image
	if err := r.db.First(&image, "id = ?", imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}
