package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/teacher-feedback-api/internal/models"
)

const feedbackColumns = "id, teacher_id, cluster, category, description, status, created_at, updated_at, admin_remarks"

const joinedFeedbackColumns = `f.id, f.teacher_id, f.cluster, f.category, f.description, f.status, f.created_at, f.updated_at, f.admin_remarks,
	t.name AS teacher_name, t.email AS teacher_email, t.employee_id AS teacher_employee_id`

// FeedbackRepository manages persistence for feedback reports.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository constructs a FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts a feedback row. created_at and updated_at share one timestamp.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	const query = `INSERT INTO feedback (id, teacher_id, cluster, category, description, status, created_at, updated_at, admin_remarks)
		VALUES (:id, :teacher_id, :cluster, :category, :description, :status, :created_at, :updated_at, :admin_remarks)`
	if _, err := r.db.NamedExecContext(ctx, query, feedback); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// FindByID fetches a feedback row by ID.
func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*models.Feedback, error) {
	query := "SELECT " + feedbackColumns + " FROM feedback WHERE id = $1"
	var feedback models.Feedback
	if err := r.db.GetContext(ctx, &feedback, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return &feedback, nil
}

// ListByTeacher returns a teacher's feedback, newest first.
func (r *FeedbackRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Feedback, error) {
	query := "SELECT " + feedbackColumns + " FROM feedback WHERE teacher_id = $1 ORDER BY created_at DESC"
	items := []models.Feedback{}
	if err := r.db.SelectContext(ctx, &items, query, teacherID); err != nil {
		return nil, fmt.Errorf("list feedback by teacher: %w", err)
	}
	return items, nil
}

// List returns one page of feedback joined with teachers plus the total count
// of matching rows. Feedback without a teacher row is excluded.
func (r *FeedbackRepository) List(ctx context.Context, filter models.FeedbackFilter) ([]models.FeedbackWithTeacher, int, error) {
	base, args := feedbackListBase(filter)

	query := fmt.Sprintf("SELECT %s %s ORDER BY f.created_at DESC LIMIT %d OFFSET %d", joinedFeedbackColumns, base, filter.Limit, filter.Offset)
	items := []models.FeedbackWithTeacher{}
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}

	return items, total, nil
}

// ListAll returns every matching joined row, newest first, for exports.
func (r *FeedbackRepository) ListAll(ctx context.Context, filter models.FeedbackFilter) ([]models.FeedbackWithTeacher, error) {
	base, args := feedbackListBase(filter)
	items := []models.FeedbackWithTeacher{}
	if err := r.db.SelectContext(ctx, &items, "SELECT "+joinedFeedbackColumns+" "+base+" ORDER BY f.created_at DESC", args...); err != nil {
		return nil, fmt.Errorf("export feedback: %w", err)
	}
	return items, nil
}

func feedbackListBase(filter models.FeedbackFilter) (string, []interface{}) {
	base := "FROM feedback f INNER JOIN teachers t ON t.id = f.teacher_id WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("f.status = $%d", len(args)))
	}
	if filter.Cluster != "" {
		args = append(args, filter.Cluster)
		conditions = append(conditions, fmt.Sprintf("f.cluster = $%d", len(args)))
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}
	return base, args
}

// UpdateStatus sets status and updated_at, and admin_remarks only when the
// caller supplied it. Returns sql.ErrNoRows when the ID does not exist.
func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id string, status models.FeedbackStatus, remarks models.OptionalString, updatedAt time.Time) (*models.Feedback, error) {
	sets := []string{"status = $1", "updated_at = $2"}
	args := []interface{}{status, updatedAt}
	if remarks.Set {
		args = append(args, remarks.Value)
		sets = append(sets, fmt.Sprintf("admin_remarks = $%d", len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE feedback SET %s WHERE id = $%d RETURNING %s", strings.Join(sets, ", "), len(args), feedbackColumns)
	var feedback models.Feedback
	if err := r.db.GetContext(ctx, &feedback, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update feedback status: %w", err)
	}
	return &feedback, nil
}

// StatsRows loads the status, category and cluster of every feedback row.
func (r *FeedbackRepository) StatsRows(ctx context.Context) ([]models.FeedbackStatsRow, error) {
	rows := []models.FeedbackStatsRow{}
	if err := r.db.SelectContext(ctx, &rows, "SELECT status, category, cluster FROM feedback"); err != nil {
		return nil, fmt.Errorf("load feedback stats: %w", err)
	}
	return rows, nil
}
