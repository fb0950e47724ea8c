package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
	"github.com/mosh-dvd/language-learning-platform-sub002/services"
)

type CreateExerciseInput struct {
	ImageID      uuid.UUID       `json:"image_id" binding:"required"`
	ExerciseType string          `json:"exercise_type" binding:"required"`
	Metadata     json.RawMessage `json:"metadata"`
}

func exerciseValidator(db *gorm.DB) *services.ExerciseValidator {
	registry := services.NewImageRegistry(db)
	return services.NewExerciseValidator(registry, services.NewTranslationService(db, registry))
}

// POST /admin/lessons/:id/exercises — validated first, then appended at the
// end of the lesson's order.
func CreateExercise(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input CreateExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var lesson models.Lesson
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}

	exerciseType := models.ExerciseType(input.ExerciseType)
	if _, err := exerciseValidator(db).Validate(exerciseType, input.ImageID, input.Metadata); err != nil {
		respondServiceError(c, err)
		return
	}

	var exercise models.Exercise
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Exercise{}).Where("lesson_id = ?", lessonID).Count(&count).Error; err != nil {
			return err
		}

		exercise = models.Exercise{
			LessonID:     lessonID,
			ImageID:      input.ImageID,
			ExerciseType: exerciseType,
			OrderIndex:   int(count),
			Metadata:     datatypes.JSON(input.Metadata),
		}
		return tx.Create(&exercise).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create exercise"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "exercise created",
		"exercise": exercise,
	})
}

type UpdateExerciseInput struct {
	ImageID      *uuid.UUID      `json:"image_id"`
	ExerciseType *string         `json:"exercise_type"`
	Metadata     json.RawMessage `json:"metadata"`
}

// PUT /admin/exercises/:id — re-validates whenever type, image or metadata
// change.
func UpdateExercise(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateExerciseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exercise models.Exercise
	if err := db.First(&exercise, "id = ?", exerciseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "exercise not found"})
		return
	}

	changed := false
	if input.ImageID != nil {
		exercise.ImageID = *input.ImageID
		changed = true
	}
	if input.ExerciseType != nil {
		exercise.ExerciseType = models.ExerciseType(*input.ExerciseType)
		changed = true
	}
	if input.Metadata != nil {
		exercise.Metadata = datatypes.JSON(input.Metadata)
		changed = true
	}

	if changed {
		if _, err := exerciseValidator(db).Validate(exercise.ExerciseType, exercise.ImageID, exercise.Metadata); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	if err := db.Save(&exercise).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update exercise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "exercise updated",
		"exercise": exercise,
	})
}

// DELETE /admin/exercises/:id — the remaining exercises are renumbered so
// order indexes stay dense.
func DeleteExercise(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	exerciseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var exercise models.Exercise
	if err := db.First(&exercise, "id = ?", exerciseID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "exercise not found"})
		return
	}

	ordering := services.NewLessonOrderingService(db)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&exercise).Error; err != nil {
			return err
		}
		return ordering.Compact(tx, exercise.LessonID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete exercise"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "exercise deleted"})
}

type ReorderExercisesInput struct {
	ExerciseIDs []uuid.UUID `json:"exercise_ids" binding:"required"`
}

// PUT /admin/lessons/:id/exercises/reorder
func ReorderExercises(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input ReorderExercisesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exercise_ids is required"})
		return
	}

	exercises, err := services.NewLessonOrderingService(db).Reorder(lessonID, input.ExerciseIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "exercises reordered",
		"exercises": exercises,
	})
}

type SuggestDistractorsInput struct {
	Sentence      string `json:"sentence" binding:"required"`
	CorrectAnswer string `json:"correct_answer" binding:"required"`
	LanguageCode  string `json:"language_code" binding:"required"`
	Count         int    `json:"count"`
}

// POST /admin/exercises/suggest-distractors — Gemini-backed helper for
// authoring fill-in-the-blank exercises.
func SuggestDistractors(c *gin.Context) {
	var input SuggestDistractorsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	distractors, err := services.SuggestDistractors(input.Sentence, input.CorrectAnswer, input.LanguageCode, input.Count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"distractors": distractors,
		"total":       len(distractors),
	})
}
