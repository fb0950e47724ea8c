package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/models"
	"github.com/mosh-dvd/language-learning-platform-sub002/services"
	"github.com/mosh-dvd/language-learning-platform-sub002/utils"
)

type GenerateAudioInput struct {
	Voice        string  `json:"voice"`
	SpeakingRate float64 `json:"speaking_rate"`
}

// bcp47 maps the short language codes stored on translations to the codes
// Google TTS expects.
var bcp47 = map[string]string{
	"en": "en-US",
	"es": "es-ES",
	"fr": "fr-FR",
	"de": "de-DE",
	"vi": "vi-VN",
	"ja": "ja-JP",
}

// POST /admin/texts/:id/audio — synthesizes the translation text to MP3,
// uploads it and caches the clip. A second call returns the cached clip.
func GenerateTextAudio(c *gin.Context) {
	db := c.MustGet("db").(*gorm.DB)

	textID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input GenerateAudioInput
	if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	var text models.ImageText
	if err := db.First(&text, "id = ?", textID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "text not found"})
		return
	}

	var existing models.AudioClip
	if err := db.First(&existing, "image_text_id = ?", textID).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{
			"message": "audio already generated",
			"clip":    existing,
			"cached":  true,
		})
		return
	}

	languageCode := bcp47[text.LanguageCode]
	if languageCode == "" {
		languageCode = text.LanguageCode
	}

	audio, err := services.SynthesizeText(text.Text, languageCode, input.Voice, input.SpeakingRate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	duration, err := services.GetMP3Duration(audio)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot read generated audio"})
		return
	}

	url, err := utils.UploadAudioToSupabase(audio, fmt.Sprintf("%s.mp3", text.ID), "audio/mpeg")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot upload audio"})
		return
	}

	clip := models.AudioClip{
		ImageTextID: text.ID,
		AudioURL:    url,
		DurationSec: duration,
		Voice:       input.Voice,
	}
	if err := db.Create(&clip).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot save audio clip"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "audio generated",
		"clip":    clip,
	})
}
