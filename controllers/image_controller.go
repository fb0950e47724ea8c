package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
	"github.com/mosh-dvd/language-learning-platform-sub002/utils"
)

// POST /admin/images (multipart, field "file")
func UploadImage(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	imageID := uuid.New()
	url, err := utils.UploadImageToSupabase(fileHeader, imageID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upload image"})
		return
	}

	image := models.Image{
		ID:           imageID,
		OriginalName: fileHeader.Filename,
		URL:          url,
		FileSize:     fileHeader.Size,
		UploadedBy:   userUUID,
	}
	if err := db.Create(&image).Error; err != nil {
		// storage and DB would disagree otherwise
		_ = utils.DeleteFileFromSupabase(url)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "image uploaded",
		"image":   image,
	})
}

// GET /admin/images
func GetImages(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := db.Model(&models.Image{})
	if search := c.Query("search"); search != "" {
		query = query.Where("original_name ILIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot count images"})
		return
	}

	var images []models.Image
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&images).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot list images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  images,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// GET /admin/images/:id
func GetImageDetail(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var image models.Image
	if err := db.
		Preload("Texts", func(db *gorm.DB) *gorm.DB {
			return db.Order("language_code ASC, version ASC")
		}).
		First(&image, "id = ?", imageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": image})
}

// DELETE /admin/images/:id
func DeleteImage(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var image models.Image
	if err := db.First(&image, "id = ?", imageID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	var exerciseCount int64
	if err := db.Model(&models.Exercise{}).Where("image_id = ?", imageID).Count(&exerciseCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot check exercises for this image"})
		return
	}
	if exerciseCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image is used by exercises and cannot be deleted"})
		return
	}

	if err := db.Delete(&image).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := utils.DeleteFileFromSupabase(image.URL); err != nil {
		// DB row is gone; report but do not fail the request
		c.JSON(http.StatusOK, gin.H{
			"message": "image deleted, storage cleanup failed",
			"warning": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
