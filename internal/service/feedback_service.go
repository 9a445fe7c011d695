package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-feedback-api/internal/dto"
	"github.com/noah-isme/teacher-feedback-api/internal/models"
	"github.com/noah-isme/teacher-feedback-api/pkg/analysis"
	"github.com/noah-isme/teacher-feedback-api/pkg/database"
	appErrors "github.com/noah-isme/teacher-feedback-api/pkg/errors"
)

type feedbackStore interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	FindByID(ctx context.Context, id string) (*models.Feedback, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Feedback, error)
}

type annotationReader interface {
	FindByFeedbackID(ctx context.Context, feedbackID string) (*models.AIAnnotation, error)
}

type feedbackAnnotator interface {
	Annotate(ctx context.Context, feedback *models.Feedback) (*models.AIResponse, error)
}

type trainingAssigner interface {
	Enabled() bool
	AssignTraining(ctx context.Context, req analysis.TrainingRequest) (*analysis.TrainingResult, error)
}

// FeedbackService handles teacher issue reports.
type FeedbackService struct {
	repo        feedbackStore
	annotations annotationReader
	annotator   feedbackAnnotator
	trainer     trainingAssigner
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// FeedbackServiceParams groups the collaborators of FeedbackService.
type FeedbackServiceParams struct {
	Repo        feedbackStore
	Annotations annotationReader
	Annotator   feedbackAnnotator
	Trainer     trainingAssigner
	Metrics     *MetricsService
	Validator   *validator.Validate
	Logger      *zap.Logger
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(params FeedbackServiceParams) *FeedbackService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Validator == nil {
		params.Validator = validator.New()
	}
	return &FeedbackService{
		repo:        params.Repo,
		annotations: params.Annotations,
		annotator:   params.Annotator,
		trainer:     params.Trainer,
		metrics:     params.Metrics,
		validator:   params.Validator,
		logger:      params.Logger,
	}
}

// Submit stores a new report as pending and attaches an AI suggestion when one
// can be produced. Analysis failures never fail the submission.
func (s *FeedbackService) Submit(ctx context.Context, req models.SubmitFeedbackRequest) (*dto.SubmitFeedbackResult, error) {
	req.TeacherID = strings.TrimSpace(req.TeacherID)
	req.Cluster = strings.TrimSpace(req.Cluster)
	req.Category = strings.TrimSpace(req.Category)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "teacherId, cluster, category and description are required")
	}
	category := models.FeedbackCategory(req.Category)
	if !category.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid category")
	}

	feedback := &models.Feedback{
		TeacherID:   req.TeacherID,
		Cluster:     req.Cluster,
		Category:    category,
		Description: req.Description,
		Status:      models.StatusPending,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, appErrors.Storage(err, "failed to save feedback")
	}
	s.metrics.RecordSubmission(string(category))

	return &dto.SubmitFeedbackResult{
		Feedback:   feedback,
		AIResponse: s.tryAnnotate(ctx, feedback),
	}, nil
}

// tryAnnotate collapses any annotation failure into a nil response.
func (s *FeedbackService) tryAnnotate(ctx context.Context, feedback *models.Feedback) *models.AIResponse {
	if s.annotator == nil {
		return nil
	}
	resp, err := s.annotator.Annotate(ctx, feedback)
	if err != nil {
		if !errors.Is(err, analysis.ErrDisabled) {
			s.logger.Warn("ai analysis failed",
				zap.String("feedback_id", feedback.ID),
				zap.String("teacher_id", feedback.TeacherID),
				zap.Error(err),
			)
		}
		return nil
	}
	return resp
}

// Get returns a single report.
func (s *FeedbackService) Get(ctx context.Context, id string) (*models.Feedback, error) {
	feedback, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isMissing(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "feedback not found")
		}
		return nil, appErrors.Storage(err, "failed to fetch feedback")
	}
	return feedback, nil
}

// ListByTeacher returns a teacher's reports, newest first.
func (s *FeedbackService) ListByTeacher(ctx context.Context, teacherID string) ([]models.Feedback, error) {
	items, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to fetch feedback")
	}
	if items == nil {
		items = []models.Feedback{}
	}
	return items, nil
}

// GetAIResponse returns the stored annotation for a report.
func (s *FeedbackService) GetAIResponse(ctx context.Context, feedbackID string) (*models.AIResponse, error) {
	annotation, err := s.annotations.FindByFeedbackID(ctx, feedbackID)
	if err != nil {
		if isMissing(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "ai response not found")
		}
		return nil, appErrors.Storage(err, "failed to fetch ai response")
	}
	resp := annotation.Response()
	return &resp, nil
}

// isMissing reports whether a lookup by id found nothing. Ids the store cannot
// parse as a uuid are treated as absent.
func isMissing(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || database.IsInvalidText(err)
}

// AssignTraining asks the analysis service to build a personalised training
// from a report. Unlike submission, failures are returned to the caller.
func (s *FeedbackService) AssignTraining(ctx context.Context, feedbackID string, req models.AssignTrainingRequest) (*models.TrainingAssignment, error) {
	feedback, err := s.Get(ctx, feedbackID)
	if err != nil {
		return nil, err
	}
	if s.trainer == nil || !s.trainer.Enabled() {
		return nil, appErrors.Clone(appErrors.ErrUnavailable, "analysis service not configured")
	}

	result, err := s.trainer.AssignTraining(ctx, analysis.TrainingRequest{
		TeacherID:  feedback.TeacherID,
		FeedbackID: feedback.ID,
		AdminID:    strings.TrimSpace(req.AdminID),
	})
	if err != nil {
		s.logger.Error("training assignment failed", zap.String("feedback_id", feedback.ID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrExternalService.Code, appErrors.ErrExternalService.Status, "failed to assign training")
	}

	gaps := result.InferredGaps
	if gaps == nil {
		gaps = []string{}
	}
	return &models.TrainingAssignment{
		FeedbackID:     feedback.ID,
		TeacherID:      feedback.TeacherID,
		InferredGaps:   gaps,
		AssignedModule: result.AssignedModule,
		ContentPreview: result.ContentPreview,
	}, nil
}
