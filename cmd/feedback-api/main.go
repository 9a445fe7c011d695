package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	_ "github.com/noah-isme/teacher-feedback-api/api/swagger"
	"github.com/noah-isme/teacher-feedback-api/internal/handler"
	"github.com/noah-isme/teacher-feedback-api/internal/middleware"
	"github.com/noah-isme/teacher-feedback-api/internal/repository"
	"github.com/noah-isme/teacher-feedback-api/internal/router"
	"github.com/noah-isme/teacher-feedback-api/internal/service"
	"github.com/noah-isme/teacher-feedback-api/pkg/analysis"
	"github.com/noah-isme/teacher-feedback-api/pkg/config"
	"github.com/noah-isme/teacher-feedback-api/pkg/database"
	"github.com/noah-isme/teacher-feedback-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/teacher-feedback-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/teacher-feedback-api/pkg/middleware/requestid"
)

// @title Teacher Feedback API
// @version 1.0.0
// @description Teacher issue reporting and admin triage backend
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		logr.Sugar().Fatalw("invalid configuration", "error", err)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	analysisClient := analysis.NewClient(analysis.Config{
		BaseURL:  cfg.AI.BaseURL,
		Timeout:  cfg.AI.Timeout,
		Recorder: metrics,
	})
	if !cfg.AIEnabled() {
		logr.Warn("AI_SERVICE_URL not set, feedback will not be annotated")
	}

	teacherRepo := repository.NewTeacherRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	annotationRepo := repository.NewAnnotationRepository(db)
	trainingRepo := repository.NewTrainingRepository(db)

	validate := validator.New()
	authService := service.NewAuthService(teacherRepo, validate, logr)
	annotationService := service.NewAnnotationService(analysisClient, annotationRepo, metrics, logr)
	feedbackService := service.NewFeedbackService(service.FeedbackServiceParams{
		Repo:        feedbackRepo,
		Annotations: annotationRepo,
		Annotator:   annotationService,
		Trainer:     analysisClient,
		Metrics:     metrics,
		Validator:   validate,
		Logger:      logr,
	})
	trainingService := service.NewTrainingService(trainingRepo, logr)
	dashboardService := service.NewDashboardService(service.DashboardServiceParams{
		Feedback: feedbackRepo,
		Teachers: teacherRepo,
		Logger:   logr,
	})
	exportService := service.NewExportService(feedbackRepo, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics, "/metrics", "/health"))
	}

	router.Register(r, cfg, router.Dependencies{
		AuthHandler:      handler.NewAuthHandler(authService),
		FeedbackHandler:  handler.NewFeedbackHandler(feedbackService),
		TrainingHandler:  handler.NewTrainingHandler(trainingService),
		DashboardHandler: handler.NewDashboardHandler(dashboardService, exportService, feedbackService),
		MetricsHandler:   handler.NewMetricsHandler(metrics, db),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "ai_enabled", cfg.AIEnabled())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
