package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
)

func TestPublishMakesLessonVisible(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	lesson := createTestLesson(t, db, user.ID, "es", false)
	svc := NewLessonVisibilityService(db)

	visible, err := svc.VisibleLessons("es")
	require.NoError(t, err)
	assert.Empty(t, visible, "draft lessons stay hidden")

	published, err := svc.Publish(lesson.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)

	visible, err = svc.VisibleLessons("es")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, lesson.ID, visible[0].ID)
}

func TestPublishUnknownLesson(t *testing.T) {
	db := newTestDB(t)
	svc := NewLessonVisibilityService(db)

	_, err := svc.Publish(uuid.New())
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "lesson", notFound.Entity)
}

func TestPublishIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	lesson := createTestLesson(t, db, user.ID, "es", true)
	svc := NewLessonVisibilityService(db)

	published, err := svc.Publish(lesson.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)

	visible, err := svc.VisibleLessons("es")
	require.NoError(t, err)
	assert.Len(t, visible, 1)
}

func TestVisibleLessonsFiltersByLanguage(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	spanish := createTestLesson(t, db, user.ID, "es", true)
	createTestLesson(t, db, user.ID, "fr", true)
	createTestLesson(t, db, user.ID, "es", false)

	svc := NewLessonVisibilityService(db)

	visible, err := svc.VisibleLessons("es")
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, spanish.ID, visible[0].ID)
}

func TestVisibleLessonHidesDrafts(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	draft := createTestLesson(t, db, user.ID, "es", false)
	svc := NewLessonVisibilityService(db)

	_, err := svc.VisibleLesson(draft.ID)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestVisibleLessonLoadsExercisesInOrder(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	image := createTestImage(t, db, user.ID)
	lesson := createTestLesson(t, db, user.ID, "es", true)
	second := createTestExercise(t, db, lesson.ID, image.ID, 1)
	first := createTestExercise(t, db, lesson.ID, image.ID, 0)

	svc := NewLessonVisibilityService(db)

	loaded, err := svc.VisibleLesson(lesson.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Exercises, 2)
	assert.Equal(t, first.ID, loaded.Exercises[0].ID)
	assert.Equal(t, second.ID, loaded.Exercises[1].ID)
}

// A generic update can take a published lesson back to draft; that is the
// unpublish path, not an error.
func TestUnpublishViaUpdateHidesLesson(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	lesson := createTestLesson(t, db, user.ID, "es", true)
	svc := NewLessonVisibilityService(db)

	require.NoError(t, db.Model(&models.Lesson{}).
		Where("id = ?", lesson.ID).
		Update("published", false).Error)

	visible, err := svc.VisibleLessons("es")
	require.NoError(t, err)
	assert.Empty(t, visible)
}
