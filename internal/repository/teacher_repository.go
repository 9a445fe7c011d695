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

const teacherColumns = "id, name, email, password_hash, cluster, employee_id, created_at"

// TeacherRepository manages persistence for teachers.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// FindByEmail fetches a teacher, including the password hash, by exact email.
func (r *TeacherRepository) FindByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	query := "SELECT " + teacherColumns + " FROM teachers WHERE email = $1 LIMIT 1"
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher by email: %w", err)
	}
	return &teacher, nil
}

// ListByName returns every teacher ordered by name without password hashes.
func (r *TeacherRepository) ListByName(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, name, email, cluster, employee_id, created_at FROM teachers ORDER BY name ASC`
	teachers := []models.Teacher{}
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// Create inserts a new teacher record. Unique violations on email or
// employee_id are returned wrapped so callers can detect them.
func (r *TeacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	if teacher.CreatedAt.IsZero() {
		teacher.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO teachers (id, name, email, password_hash, cluster, employee_id, created_at)
		VALUES (:id, :name, :email, :password_hash, :cluster, :employee_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}
