package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/services"
)

// GET /catalog/lessons?language=xx — the learner-facing list: published
// lessons in the requested language, nothing else.
func GetVisibleLessons(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	language := c.Query("language")
	if language == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language query parameter is required"})
		return
	}

	lessons, err := services.NewLessonVisibilityService(db).VisibleLessons(language)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lessons": lessons,
		"total":   len(lessons),
	})
}

// GET /catalog/lessons/:id — one published lesson with its exercises in
// order. Draft lessons 404 here regardless of who asks.
func GetCatalogLessonDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	lesson, err := services.NewLessonVisibilityService(db).VisibleLesson(lessonID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lesson":    lesson,
		"exercises": lesson.Exercises,
	})
}
