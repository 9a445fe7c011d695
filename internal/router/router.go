package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/teacher-feedback-api/internal/handler"
	"github.com/noah-isme/teacher-feedback-api/pkg/config"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler      *handler.AuthHandler
	FeedbackHandler  *handler.FeedbackHandler
	TrainingHandler  *handler.TrainingHandler
	DashboardHandler *handler.DashboardHandler
	MetricsHandler   *handler.MetricsHandler
}

// Register wires the HTTP routes into the gin engine.
func Register(r *gin.Engine, cfg *config.Config, deps Dependencies) {
	if deps.MetricsHandler != nil {
		r.GET("/health", deps.MetricsHandler.Health)
		r.GET("/ready", deps.MetricsHandler.Ready)
		if cfg.Metrics.Enabled {
			r.GET("/metrics", deps.MetricsHandler.Prometheus)
		}
	}

	if cfg.Docs.Enabled {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api")

	// Teacher app
	teacher := api.Group("/teacher")
	if deps.AuthHandler != nil {
		auth := teacher.Group("/auth")
		auth.POST("/login", deps.AuthHandler.Login)
		auth.POST("/register", deps.AuthHandler.Register)
	}
	if deps.FeedbackHandler != nil {
		feedback := teacher.Group("/feedback")
		feedback.POST("", deps.FeedbackHandler.Submit)
		feedback.GET("/teacher/:teacherId", deps.FeedbackHandler.ListByTeacher)
		feedback.GET("/:id", deps.FeedbackHandler.Get)
		feedback.GET("/:id/ai-response", deps.FeedbackHandler.AIResponse)
	}
	if deps.TrainingHandler != nil {
		training := teacher.Group("/training")
		training.GET("/teacher/:teacherId", deps.TrainingHandler.ListByTeacher)
		training.PATCH("/:id/status", deps.TrainingHandler.UpdateStatus)
	}

	// Admin dashboard
	if deps.DashboardHandler != nil {
		dashboard := api.Group("/dashboard")
		dashboard.GET("/feedback/all", deps.DashboardHandler.ListFeedback)
		dashboard.GET("/feedback/export", deps.DashboardHandler.Export)
		dashboard.PATCH("/feedback/:id/status", deps.DashboardHandler.UpdateStatus)
		dashboard.POST("/feedback/:id/assign-training", deps.DashboardHandler.AssignTraining)
		dashboard.GET("/stats", deps.DashboardHandler.Stats)
		dashboard.GET("/teachers", deps.DashboardHandler.Teachers)
	}
}
