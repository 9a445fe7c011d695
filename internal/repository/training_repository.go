package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teacher-feedback-api/internal/models"
)

const trainingColumns = "id, teacher_id, module_id, title, personalized_content, metadata, status, assigned_at, completed_at"

// TrainingRepository reads personalized trainings written by the analysis service.
type TrainingRepository struct {
	db *sqlx.DB
}

// NewTrainingRepository constructs a TrainingRepository.
func NewTrainingRepository(db *sqlx.DB) *TrainingRepository {
	return &TrainingRepository{db: db}
}

// ListByTeacher returns a teacher's trainings, most recently assigned first.
func (r *TrainingRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.PersonalizedTraining, error) {
	query := "SELECT " + trainingColumns + " FROM personalized_trainings WHERE teacher_id = $1 ORDER BY assigned_at DESC"
	items := []models.PersonalizedTraining{}
	if err := r.db.SelectContext(ctx, &items, query, teacherID); err != nil {
		return nil, fmt.Errorf("list trainings: %w", err)
	}
	return items, nil
}

// UpdateStatus records progress. completedAt is nil unless the training was completed.
func (r *TrainingRepository) UpdateStatus(ctx context.Context, id string, status models.TrainingStatus, completedAt *time.Time) (*models.PersonalizedTraining, error) {
	query := "UPDATE personalized_trainings SET status = $1, completed_at = $2 WHERE id = $3 RETURNING " + trainingColumns
	var training models.PersonalizedTraining
	if err := r.db.GetContext(ctx, &training, query, status, completedAt, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update training status: %w", err)
	}
	return &training, nil
}
