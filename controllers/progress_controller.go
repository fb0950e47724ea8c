package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
)

type SubmitAttemptInput struct {
	Correct *bool `json:"correct" binding:"required"`
}

// POST /progress/exercises/:id/attempts — records the answer; wrong answers
// also bump the learner's weak-word entry for the exercise's image.
func SubmitExerciseAttempt(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input SubmitAttemptInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "correct is required"})
		return
	}

	var exercise models.Exercise
	if err := db.Preload("Lesson").First(&exercise, "id = ?", exerciseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "exercise not found"})
		return
	}
	if !exercise.Lesson.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "exercise not found"})
		return
	}

	attempt := models.ExerciseAttempt{
		UserID:     userUUID,
		ExerciseID: exerciseID,
		Correct:    *input.Correct,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attempt).Error; err != nil {
			return err
		}
		if *input.Correct {
			return nil
		}

		var weak models.WeakWord
		findErr := tx.Where(
			"user_id = ? AND image_id = ? AND language_code = ?",
			userUUID, exercise.ImageID, exercise.Lesson.TargetLanguage,
		).First(&weak).Error
		if errors.Is(findErr, gorm.ErrRecordNotFound) {
			weak = models.WeakWord{
				UserID:       userUUID,
				ImageID:      exercise.ImageID,
				LanguageCode: exercise.Lesson.TargetLanguage,
				WrongCount:   1,
				LastSeenAt:   time.Now(),
			}
			return tx.Create(&weak).Error
		}
		if findErr != nil {
			return findErr
		}

		return tx.Model(&weak).Updates(map[string]any{
			"wrong_count":  weak.WrongCount + 1,
			"last_seen_at": time.Now(),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot record attempt"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "attempt recorded",
		"attempt": attempt,
	})
}

// GET /progress/weak-words?language=xx
func GetWeakWords(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	query := db.Where("user_id = ?", userUUID)
	if language := c.Query("language"); language != "" {
		query = query.Where("language_code = ?", language)
	}

	var weakWords []models.WeakWord
	if err := query.
		Preload("Image").
		Order("wrong_count DESC").
		Find(&weakWords).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list weak words"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weak_words": weakWords,
		"total":      len(weakWords),
	})
}
