package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One connection: every in-memory sqlite connection is its own database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.Image{},
		&models.ImageText{},
		&models.AudioClip{},
		&models.Lesson{},
		&models.Exercise{},
		&models.ExerciseAttempt{},
		&models.WeakWord{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{
		FullName: "Test Teacher",
		Email:    uuid.NewString() + "@example.com",
		Password: "hashed",
		Role:     models.RoleTeacher,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestImage(t *testing.T, db *gorm.DB, uploadedBy uuid.UUID) models.Image {
	t.Helper()
	image := models.Image{
		OriginalName: "photo.jpg",
		URL:          "https://storage.example.com/images/" + uuid.NewString() + ".jpg",
		FileSize:     2048,
		UploadedBy:   uploadedBy,
	}
	require.NoError(t, db.Create(&image).Error)
	return image
}

func createTestLesson(t *testing.T, db *gorm.DB, createdBy uuid.UUID, targetLanguage string, published bool) models.Lesson {
	t.Helper()
	lesson := models.Lesson{
		Title:          "Food Vocabulary",
		Slug:           "food-vocabulary-" + uuid.NewString()[:8],
		TargetLanguage: targetLanguage,
		Published:      published,
		CreatedBy:      createdBy,
	}
	require.NoError(t, db.Create(&lesson).Error)
	return lesson
}

func createTestExercise(t *testing.T, db *gorm.DB, lessonID, imageID uuid.UUID, orderIndex int) models.Exercise {
	t.Helper()
	exercise := models.Exercise{
		LessonID:     lessonID,
		ImageID:      imageID,
		ExerciseType: models.ExerciseImageText,
		OrderIndex:   orderIndex,
		Metadata:     []byte(`{}`),
	}
	require.NoError(t, db.Create(&exercise).Error)
	return exercise
}
