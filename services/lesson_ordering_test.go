package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
)

func seedOrderedExercises(t *testing.T, db *gorm.DB, n int) (models.Lesson, []models.Exercise) {
	t.Helper()
	user := createTestUser(t, db)
	image := createTestImage(t, db, user.ID)
	lesson := createTestLesson(t, db, user.ID, "es", false)

	exercises := make([]models.Exercise, 0, n)
	for i := 0; i < n; i++ {
		exercises = append(exercises, createTestExercise(t, db, lesson.ID, image.ID, i))
	}
	return lesson, exercises
}

func currentOrder(t *testing.T, db *gorm.DB, lessonID uuid.UUID) []models.Exercise {
	t.Helper()
	var rows []models.Exercise
	require.NoError(t, db.Where("lesson_id = ?", lessonID).Order("order_index ASC").Find(&rows).Error)
	return rows
}

func TestReorderSwap(t *testing.T) {
	db := newTestDB(t)
	lesson, exercises := seedOrderedExercises(t, db, 3)
	svc := NewLessonOrderingService(db)

	reordered, err := svc.Reorder(lesson.ID, []uuid.UUID{exercises[2].ID, exercises[1].ID, exercises[0].ID})
	require.NoError(t, err)
	require.Len(t, reordered, 3)

	assert.Equal(t, exercises[2].ID, reordered[0].ID)
	assert.Equal(t, exercises[1].ID, reordered[1].ID)
	assert.Equal(t, exercises[0].ID, reordered[2].ID)
	for i, ex := range reordered {
		assert.Equal(t, i, ex.OrderIndex)
	}
}

func TestReorderRejectsMissingID(t *testing.T) {
	db := newTestDB(t)
	lesson, exercises := seedOrderedExercises(t, db, 3)
	svc := NewLessonOrderingService(db)

	_, err := svc.Reorder(lesson.ID, []uuid.UUID{exercises[0].ID, exercises[1].ID})
	var invalid *InvalidOrderSetError
	require.ErrorAs(t, err, &invalid)

	rows := currentOrder(t, db, lesson.ID)
	for i, ex := range rows {
		assert.Equal(t, exercises[i].ID, ex.ID, "original order must survive a rejected reorder")
	}
}

func TestReorderRejectsForeignID(t *testing.T) {
	db := newTestDB(t)
	lesson, exercises := seedOrderedExercises(t, db, 2)
	svc := NewLessonOrderingService(db)

	_, err := svc.Reorder(lesson.ID, []uuid.UUID{exercises[0].ID, uuid.New()})
	var invalid *InvalidOrderSetError
	require.ErrorAs(t, err, &invalid)
}

func TestReorderRejectsDuplicateID(t *testing.T) {
	db := newTestDB(t)
	lesson, exercises := seedOrderedExercises(t, db, 3)
	svc := NewLessonOrderingService(db)

	_, err := svc.Reorder(lesson.ID, []uuid.UUID{exercises[0].ID, exercises[0].ID, exercises[1].ID})
	var invalid *InvalidOrderSetError
	require.ErrorAs(t, err, &invalid)

	rows := currentOrder(t, db, lesson.ID)
	for i, ex := range rows {
		assert.Equal(t, exercises[i].ID, ex.ID)
		assert.Equal(t, i, ex.OrderIndex)
	}
}

func TestReorderEmptyLesson(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	lesson := createTestLesson(t, db, user.ID, "es", false)
	svc := NewLessonOrderingService(db)

	reordered, err := svc.Reorder(lesson.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, reordered)
}

func TestCompactClosesGapAfterDelete(t *testing.T) {
	db := newTestDB(t)
	lesson, exercises := seedOrderedExercises(t, db, 4)
	svc := NewLessonOrderingService(db)

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Exercise{}, "id = ?", exercises[1].ID).Error; err != nil {
			return err
		}
		return svc.Compact(tx, lesson.ID)
	})
	require.NoError(t, err)

	rows := currentOrder(t, db, lesson.ID)
	require.Len(t, rows, 3)
	want := []uuid.UUID{exercises[0].ID, exercises[2].ID, exercises[3].ID}
	for i, ex := range rows {
		assert.Equal(t, want[i], ex.ID)
		assert.Equal(t, i, ex.OrderIndex)
	}
}
