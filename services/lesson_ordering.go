package services

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
)

// LessonOrderingService keeps exercise order indexes within a lesson dense
// and unique: always exactly 0..N-1.
type LessonOrderingService struct {
	db *gorm.DB
}

func NewLessonOrderingService(db *gorm.DB) *LessonOrderingService {
	return &LessonOrderingService{db: db}
}

// Reorder assigns orderIndex = position for each id in the given order. The
// ids must be exactly a permutation of the lesson's current exercise ids;
// otherwise nothing is written and InvalidOrderSetError is returned. All
// index updates happen in one transaction so readers never see a partial
// ordering.
func (s *LessonOrderingService) Reorder(lessonID uuid.UUID, orderedIDs []uuid.UUID) ([]models.Exercise, error) {
	var result []models.Exercise
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var current []models.Exercise
		if err := tx.Where("lesson_id = ?", lessonID).Find(&current).Error; err != nil {
			return err
		}

		if len(orderedIDs) != len(current) {
			return &InvalidOrderSetError{LessonID: lessonID}
		}
		existing := make(map[uuid.UUID]bool, len(current))
		for _, ex := range current {
			existing[ex.ID] = true
		}
		seen := make(map[uuid.UUID]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if !existing[id] || seen[id] {
				return &InvalidOrderSetError{LessonID: lessonID}
			}
			seen[id] = true
		}

		for position, id := range orderedIDs {
			if err := tx.Model(&models.Exercise{}).
				Where("id = ?", id).
				Update("order_index", position).Error; err != nil {
				return err
			}
		}

		return tx.Where("lesson_id = ?", lessonID).
			Order("order_index ASC").
			Find(&result).Error
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Compact renumbers a lesson's exercises 0..N-1 in their current order,
// closing the gap an exercise delete leaves behind. Run it inside the same
// transaction as the delete.
func (s *LessonOrderingService) Compact(tx *gorm.DB, lessonID uuid.UUID) error {
	var current []models.Exercise
	if err := tx.Where("lesson_id = ?", lessonID).
		Order("order_index ASC").
		Find(&current).Error; err != nil {
		return err
	}
	for position, ex := range current {
		if ex.OrderIndex == position {
			continue
		}
		if err := tx.Model(&models.Exercise{}).
			Where("id = ?", ex.ID).
			Update("order_index", position).Error; err != nil {
			return err
		}
	}
	return nil
}
