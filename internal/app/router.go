package app

import (
	"artlearn_backend/internal/util"
	"artlearn_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.HandleMethodNotAllowed = true
	router.NoMethod(util.MethodNotAllowed)
	router.NoRoute(func(ctx *gin.Context) {
		util.NotFound(ctx, "Resource not found")
	})

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		api.GET("/lessons", c.lesson.GetLessons)

		api.GET("/exercises", c.exercise.GetExercises)
		api.POST("/exercises/complete", c.exercise.CompleteExercise)

		api.GET("/progress", c.progress.GetProgress)
		api.POST("/progress", c.progress.CompleteLesson)

		api.POST("/users", c.user.CreateUser)
		api.GET("/users", c.user.GetUser)

		api.GET("/gallery", c.gallery.GetGallery)
		api.POST("/gallery", c.gallery.UploadArtwork)

		api.GET("/achievements/leaderboard", c.achievement.GetLeaderboard)
	}
}
