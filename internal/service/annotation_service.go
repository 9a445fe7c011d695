package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/teacher-feedback-api/internal/models"
	"github.com/noah-isme/teacher-feedback-api/pkg/analysis"
)

var gapLabels = map[string]string{
	"classroom_management": "classroom management",
	"content_knowledge":    "subject content knowledge",
	"pedagogy":             "teaching methods",
	"technology_usage":     "use of classroom technology",
	"student_engagement":   "student engagement",
}

const (
	acknowledgementTemplate = "Thank you for reporting this issue. Your feedback has been recorded and will be reviewed by the administration: %q"
	highPriorityTemplate    = "High priority: based on your recent reports we recommend focusing first on %s. A targeted training module can be assigned by your administrator."
	mediumPriorityTemplate  = "Based on your recent reports, consider strengthening %s. Relevant training material is available in the training section."
	lowPriorityTemplate     = "Your reports suggest some room to grow in %s. No immediate action is needed, but the related training resources may help."
)

// GenerateSuggestion turns an analysis result into advice shown to the teacher.
// The output depends only on its inputs.
func GenerateSuggestion(result analysis.FeedbackAnalysis, description string) string {
	if len(result.InferredGaps) == 0 {
		return fmt.Sprintf(acknowledgementTemplate, description)
	}

	labels := make([]string, 0, len(result.InferredGaps))
	for _, gap := range result.InferredGaps {
		if label, ok := gapLabels[gap]; ok {
			labels = append(labels, label)
			continue
		}
		labels = append(labels, gap)
	}
	joined := strings.Join(labels, ", ")

	switch result.Priority {
	case "high":
		return fmt.Sprintf(highPriorityTemplate, joined)
	case "low":
		return fmt.Sprintf(lowPriorityTemplate, joined)
	default:
		return fmt.Sprintf(mediumPriorityTemplate, joined)
	}
}

type feedbackAnalyzer interface {
	Enabled() bool
	AnalyzeFeedback(ctx context.Context, teacherID string) (*analysis.FeedbackAnalysis, error)
}

type annotationWriter interface {
	Create(ctx context.Context, annotation *models.AIAnnotation) error
}

// AnnotationService asks the analysis service about a submission and stores the outcome.
type AnnotationService struct {
	analyzer feedbackAnalyzer
	repo     annotationWriter
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewAnnotationService constructs an AnnotationService.
func NewAnnotationService(analyzer feedbackAnalyzer, repo annotationWriter, metrics *MetricsService, logger *zap.Logger) *AnnotationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnotationService{analyzer: analyzer, repo: repo, metrics: metrics, logger: logger}
}

// Enabled reports whether an analysis service is configured.
func (s *AnnotationService) Enabled() bool {
	return s != nil && s.analyzer != nil && s.analyzer.Enabled()
}

// Annotate runs the analysis for a stored feedback. An error means no
// response could be produced; a failed save is only logged.
func (s *AnnotationService) Annotate(ctx context.Context, feedback *models.Feedback) (*models.AIResponse, error) {
	if !s.Enabled() {
		if s != nil {
			s.metrics.RecordAnnotation(AnnotationSkipped)
		}
		return nil, analysis.ErrDisabled
	}

	result, err := s.analyzer.AnalyzeFeedback(ctx, feedback.TeacherID)
	if err != nil {
		s.metrics.RecordAnnotation(AnnotationFailed)
		return nil, err
	}

	resp := &models.AIResponse{
		Suggestion:      GenerateSuggestion(*result, feedback.Description),
		InferredGaps:    result.InferredGaps,
		Priority:        result.Priority,
		ConfidenceScore: models.AnnotationConfidence,
	}

	annotation := &models.AIAnnotation{
		FeedbackID:      feedback.ID,
		TeacherID:       feedback.TeacherID,
		Suggestion:      resp.Suggestion,
		InferredGaps:    pq.StringArray(resp.InferredGaps),
		Priority:        resp.Priority,
		ConfidenceScore: resp.ConfidenceScore,
	}
	if err := s.repo.Create(ctx, annotation); err != nil {
		s.metrics.RecordAnnotation(AnnotationUnsaved)
		s.logger.Warn("failed to save ai annotation",
			zap.String("feedback_id", feedback.ID),
			zap.Error(err),
		)
		return resp, nil
	}

	s.metrics.RecordAnnotation(AnnotationSaved)
	return resp, nil
}
