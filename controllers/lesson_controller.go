package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
	"github.com/mosh-dvd/language-learning-platform-sub002/services"
	"github.com/mosh-dvd/language-learning-platform-sub002/ws"
)

type CreateLessonInput struct {
	Title          string `json:"title" binding:"required"`
	TargetLanguage string `json:"target_language" binding:"required"`
}

// POST /admin/lessons — lessons start as drafts.
func CreateLesson(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	var input CreateLessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and target_language are required"})
		return
	}

	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
		return
	}

	lesson := models.Lesson{
		Title:          title,
		Slug:           slug.Make(title),
		TargetLanguage: input.TargetLanguage,
		Published:      false,
		CreatedBy:      userUUID,
	}

	if err := db.Create(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create lesson"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "lesson created",
		"lesson":  lesson,
	})
}

// GET /admin/lessons
func GetLessons(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	role := c.GetString("role")
	userIDStr := c.GetString("user_id")

	query := db.Model(&models.Lesson{}).
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email")
		})

	// Teachers manage only their own lessons.
	if role == string(models.RoleTeacher) {
		query = query.Where("lessons.created_by = ?", userIDStr)
	}

	if language := c.Query("language"); language != "" {
		query = query.Where("lessons.target_language = ?", language)
	}
	if published := c.Query("published"); published != "" {
		switch published {
		case "true":
			query = query.Where("lessons.published = ?", true)
		case "false":
			query = query.Where("lessons.published = ?", false)
		}
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("lessons.title ILIKE ?", "%"+search+"%")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot count lessons"})
		return
	}

	var lessons []models.Lesson
	if err := query.
		Order("lessons.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&lessons).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list lessons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  lessons,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GET /admin/lessons/:id
func GetLessonDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var lesson models.Lesson
	if err := db.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Preload("Creator", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, full_name, email")
		}).
		First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"lesson":    lesson,
		"exercises": lesson.Exercises,
	})
}

type UpdateLessonInput struct {
	Title          *string `json:"title"`
	TargetLanguage *string `json:"target_language"`
	Published      *bool   `json:"published"`
}

// PUT /admin/lessons/:id — writes `published` literally, so this path can
// also pull a lesson back to draft.
func UpdateLesson(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input UpdateLessonInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var lesson models.Lesson
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}

	wasPublished := lesson.Published

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
			return
		}
		lesson.Title = title
		lesson.Slug = slug.Make(title)
	}
	if input.TargetLanguage != nil {
		lesson.TargetLanguage = *input.TargetLanguage
	}
	if input.Published != nil {
		lesson.Published = *input.Published
	}

	if err := db.Save(&lesson).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot update lesson"})
		return
	}

	if wasPublished != lesson.Published {
		ws.SendLessonStatus(lesson.ID.String(), lesson.Published, "publish state changed")
		ws.BroadcastCatalogChanged()
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "lesson updated",
		"lesson":  lesson,
	})
}

// POST /admin/lessons/:id/publish
func PublishLesson(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	lesson, err := services.NewLessonVisibilityService(db).Publish(lessonID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	ws.SendLessonStatus(lesson.ID.String(), true, "lesson published")
	ws.BroadcastCatalogChanged()

	c.JSON(http.StatusOK, gin.H{
		"message": "lesson published",
		"lesson":  lesson,
	})
}

// DELETE /admin/lessons/:id
func DeleteLesson(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	lessonID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var lesson models.Lesson
	if err := db.First(&lesson, "id = ?", lessonID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&models.Exercise{}).Error; err != nil {
			return err
		}
		return tx.Delete(&lesson).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot delete lesson"})
		return
	}

	if lesson.Published {
		ws.BroadcastCatalogChanged()
	}

	c.JSON(http.StatusOK, gin.H{"message": "lesson deleted"})
}
