package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mosh-dvd/language-learning-platform-sub002/controllers"
	"github.com/mosh-dvd/language-learning-platform-sub002/middleware"
	"github.com/mosh-dvd/language-learning-platform-sub002/models"
	"github.com/mosh-dvd/language-learning-platform-sub002/ws"
)

func SetupRouter(r *gin.Engine, db *gorm.DB) *gin.Engine {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
	r.GET("/health", controllers.HealthCheck)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/logingoogle", controllers.GoogleLogin)
		auth.POST("/change-password", middleware.AuthMiddleware(), middleware.DBMiddleware(db), controllers.ChangePassword)
	}

	// Learner-facing catalog: published lessons only.
	catalog := api.Group("/catalog")
	{
		catalog.Use(middleware.OptionalAuthMiddleware(), middleware.DBMiddleware(db))
		catalog.GET("/lessons", controllers.GetVisibleLessons)
		catalog.GET("/lessons/:id", controllers.GetCatalogLessonDetail)
	}

	progress := api.Group("/progress")
	{
		progress.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db))
		progress.POST("/exercises/:id/attempts", controllers.SubmitExerciseAttempt)
		progress.GET("/weak-words", controllers.GetWeakWords)
	}

	admin := api.Group("/admin")
	{
		admin.Use(middleware.AuthMiddleware(), middleware.DBMiddleware(db),
			middleware.RequireRoles(string(models.RoleAdmin), string(models.RoleTeacher)))

		// Accounts
		admin.POST("/teachers", controllers.AdminCreateTeacher)

		// Images
		admin.POST("/images", controllers.UploadImage)
		admin.GET("/images", controllers.GetImages)
		admin.GET("/images/:id", controllers.GetImageDetail)
		admin.DELETE("/images/:id", controllers.DeleteImage)

		// Image texts (versioned translations)
		admin.POST("/images/:id/texts", controllers.AddImageText)
		admin.GET("/images/:id/texts", controllers.GetImageTexts)
		admin.GET("/images/:id/texts/:lang", controllers.GetLatestImageText)
		admin.PUT("/images/:id/texts/:lang", controllers.UpdateImageText)
		admin.GET("/images/:id/texts/:lang/history", controllers.GetImageTextHistory)
		admin.GET("/images/:id/languages", controllers.GetImageLanguages)

		// Lessons
		admin.POST("/lessons", controllers.CreateLesson)
		admin.GET("/lessons", controllers.GetLessons)
		admin.GET("/lessons/:id", controllers.GetLessonDetail)
		admin.PUT("/lessons/:id", controllers.UpdateLesson)
		admin.DELETE("/lessons/:id", controllers.DeleteLesson)
		admin.POST("/lessons/:id/publish", controllers.PublishLesson)

		// Exercises
		admin.POST("/lessons/:id/exercises", controllers.CreateExercise)
		admin.PUT("/lessons/:id/exercises/reorder", controllers.ReorderExercises)
		admin.PUT("/exercises/:id", controllers.UpdateExercise)
		admin.DELETE("/exercises/:id", controllers.DeleteExercise)
		admin.POST("/exercises/suggest-distractors", controllers.SuggestDistractors)

		// Audio
		admin.POST("/texts/:id/audio", controllers.GenerateTextAudio)
	}

	r.GET("/ws/lesson/:id", ws.HandleLessonWebSocket)
	r.GET("/ws/catalog", ws.HandleCatalogWebSocket)

	return r
}
