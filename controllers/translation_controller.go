package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/services"
)

type CreateTranslationInput struct {
	LanguageCode string `json:"language_code" binding:"required"`
	Text         string `json:"text" binding:"required"`
}

type UpdateTranslationInput struct {
	Text string `json:"text" binding:"required"`
}

func translationService(c *gin.Context) *services.TranslationService {
	db := c.MustGet("db").(*gorm.DB)
	return services.NewTranslationService(db, services.NewImageRegistry(db))
}

// POST /admin/images/:id/texts
func AddImageText(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input CreateTranslationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := translationService(c).AddText(imageID, input.LanguageCode, input.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "text added",
		"text":    text,
	})
}

// PUT /admin/images/:id/texts/:lang
func UpdateImageText(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	languageCode := c.Param("lang")

	var input UpdateTranslationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := translationService(c).UpdateText(imageID, languageCode, input.Text)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "new text version added",
		"text":    text,
	})
}

// GET /admin/images/:id/texts/:lang
func GetLatestImageText(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	languageCode := c.Param("lang")

	text, err := translationService(c).GetLatest(imageID, languageCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if text == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no text for this image and language"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"text": text})
}

// GET /admin/images/:id/texts/:lang/history
func GetImageTextHistory(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	languageCode := c.Param("lang")

	history, err := translationService(c).GetHistory(imageID, languageCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"total":   len(history),
	})
}

// GET /admin/images/:id/languages
func GetImageLanguages(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	languages, err := translationService(c).GetLanguages(imageID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"languages": languages})
}

// GET /admin/images/:id/texts
func GetImageTexts(c *gin.Context) {
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	texts, err := translationService(c).GetAllLatest(imageID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"texts": texts,
		"total": len(texts),
	})
}
