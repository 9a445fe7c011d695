package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/teacher-feedback-api/internal/models"
	"github.com/noah-isme/teacher-feedback-api/pkg/database"
	appErrors "github.com/noah-isme/teacher-feedback-api/pkg/errors"
)

// PasswordCost is the bcrypt work factor for new teacher accounts.
const PasswordCost = 10

type teacherAccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
}

// AuthService authenticates and registers teachers. It issues no tokens;
// clients resend identifying fields on later requests.
type AuthService struct {
	repo      teacherAccountRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(repo teacherAccountRepository, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{repo: repo, validator: validate, logger: logger}
}

// Login checks credentials and returns the teacher profile.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.TeacherProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "email and password are required")
	}

	teacher, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid credentials")
		}
		return nil, appErrors.Storage(err, "failed to fetch teacher")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(teacher.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid credentials")
	}

	profile := teacher.Profile()
	return &profile, nil
}

// Register creates a teacher account with a bcrypt password hash.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.TeacherProfile, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Cluster = strings.TrimSpace(req.Cluster)
	req.EmployeeID = strings.TrimSpace(req.EmployeeID)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "all fields are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), PasswordCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, appErrors.Validation(err, "password must be at most 72 bytes")
		}
		return nil, appErrors.Storage(err, "failed to hash password")
	}

	teacher := &models.Teacher{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Cluster:      req.Cluster,
		EmployeeID:   req.EmployeeID,
	}
	if err := s.repo.Create(ctx, teacher); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email or employee ID already exists")
		}
		return nil, appErrors.Storage(err, "failed to create teacher")
	}

	s.logger.Info("teacher registered", zap.String("teacher_id", teacher.ID), zap.String("cluster", teacher.Cluster))
	profile := teacher.Profile()
	return &profile, nil
}
