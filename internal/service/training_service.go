package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/teacher-feedback-api/internal/models"
	appErrors "github.com/noah-isme/teacher-feedback-api/pkg/errors"
)

type trainingRepository interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.PersonalizedTraining, error)
	UpdateStatus(ctx context.Context, id string, status models.TrainingStatus, completedAt *time.Time) (*models.PersonalizedTraining, error)
}

// TrainingService exposes trainings assigned to teachers.
type TrainingService struct {
	repo   trainingRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewTrainingService constructs a TrainingService.
func NewTrainingService(repo trainingRepository, logger *zap.Logger) *TrainingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrainingService{repo: repo, logger: logger, now: time.Now}
}

// ListByTeacher returns a teacher's trainings.
func (s *TrainingService) ListByTeacher(ctx context.Context, teacherID string) ([]models.PersonalizedTraining, error) {
	items, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to fetch trainings")
	}
	if items == nil {
		items = []models.PersonalizedTraining{}
	}
	return items, nil
}

// UpdateStatus records a teacher's progress. Moving to completed stamps
// completed_at; any other status clears it.
func (s *TrainingService) UpdateStatus(ctx context.Context, id string, req models.UpdateTrainingStatusRequest) (*models.PersonalizedTraining, error) {
	status := models.TrainingStatus(req.Status)
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid training status")
	}

	var completedAt *time.Time
	if status == models.TrainingCompleted {
		ts := s.now().UTC()
		completedAt = &ts
	}

	training, err := s.repo.UpdateStatus(ctx, id, status, completedAt)
	if err != nil {
		if isMissing(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "training not found")
		}
		return nil, appErrors.Storage(err, "failed to update training")
	}
	s.logger.Info("training status updated", zap.String("training_id", id), zap.String("status", string(status)))
	return training, nil
}
