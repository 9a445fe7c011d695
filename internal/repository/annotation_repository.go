package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teacher-feedback-api/internal/models"
)

// AnnotationRepository stores AI analysis results per feedback.
type AnnotationRepository struct {
	db *sqlx.DB
}

// NewAnnotationRepository constructs an AnnotationRepository.
func NewAnnotationRepository(db *sqlx.DB) *AnnotationRepository {
	return &AnnotationRepository{db: db}
}

// Create inserts an annotation.
func (r *AnnotationRepository) Create(ctx context.Context, annotation *models.AIAnnotation) error {
	if annotation.ID == "" {
		annotation.ID = uuid.NewString()
	}
	if annotation.CreatedAt.IsZero() {
		annotation.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO ai_annotations (id, feedback_id, teacher_id, suggestion, inferred_gaps, priority, confidence_score, created_at)
		VALUES (:id, :feedback_id, :teacher_id, :suggestion, :inferred_gaps, :priority, :confidence_score, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, annotation); err != nil {
		return fmt.Errorf("create ai annotation: %w", err)
	}
	return nil
}

// FindByFeedbackID returns the annotation recorded for a feedback.
func (r *AnnotationRepository) FindByFeedbackID(ctx context.Context, feedbackID string) (*models.AIAnnotation, error) {
	const query = `SELECT id, feedback_id, teacher_id, suggestion, inferred_gaps, priority, confidence_score, created_at
		FROM ai_annotations WHERE feedback_id = $1 ORDER BY created_at DESC LIMIT 1`
	var annotation models.AIAnnotation
	if err := r.db.GetContext(ctx, &annotation, query, feedbackID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find ai annotation: %w", err)
	}
	return &annotation, nil
}
