package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
)

// LessonVisibilityService controls which lessons learners can see: only
// published lessons in the requested target language.
type LessonVisibilityService struct {
	db *gorm.DB
}

func NewLessonVisibilityService(db *gorm.DB) *LessonVisibilityService {
	return &LessonVisibilityService{db: db}
}

// Publish flips a lesson to published. Publishing an already-published
// lesson is a no-op success.
func (s *LessonVisibilityService) Publish(lessonID uuid.UUID) (*models.Lesson, error) {
	var lesson models.Lesson
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&lesson, "id = ?", lessonID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "lesson", ID: lessonID.String()}
			}
			return err
		}
		if lesson.Published {
			return nil
		}
		lesson.Published = true
		return tx.Model(&lesson).Update("published", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// VisibleLessons returns every published lesson whose target language
// matches. No ordering is promised.
func (s *LessonVisibilityService) VisibleLessons(languageCode string) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := s.db.Where("target_language = ? AND published = ?", languageCode, true).
		Find(&lessons).Error
	return lessons, err
}

// VisibleLesson returns one lesson only if a learner may see it.
func (s *LessonVisibilityService) VisibleLesson(lessonID uuid.UUID) (*models.Lesson, error) {
	var lesson models.Lesson
	err := s.db.Preload("Exercises", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&lesson, "id = ? AND published = ?", lessonID, true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "lesson", ID: lessonID.String()}
		}
		return nil, err
	}
	return &lesson, nil
}
