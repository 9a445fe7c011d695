package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TrainingStatus tracks a teacher's progress through an assigned module.
type TrainingStatus string

const (
	TrainingNotStarted TrainingStatus = "not_started"
	TrainingInProgress TrainingStatus = "in_progress"
	TrainingCompleted  TrainingStatus = "completed"
)

// Valid reports whether s is a known training status.
func (s TrainingStatus) Valid() bool {
	switch s {
	case TrainingNotStarted, TrainingInProgress, TrainingCompleted:
		return true
	}
	return false
}

// PersonalizedTraining is a training module tailored to a teacher by the
// analysis service.
type PersonalizedTraining struct {
	ID                  string         `db:"id" json:"id"`
	TeacherID           string         `db:"teacher_id" json:"teacherId"`
	ModuleID            string         `db:"module_id" json:"moduleId"`
	Title               string         `db:"title" json:"title"`
	PersonalizedContent string         `db:"personalized_content" json:"personalizedContent"`
	Metadata            types.JSONText `db:"metadata" json:"metadata"`
	Status              TrainingStatus `db:"status" json:"status"`
	AssignedAt          time.Time      `db:"assigned_at" json:"assignedAt"`
	CompletedAt         *time.Time     `db:"completed_at" json:"completedAt"`
}

// UpdateTrainingStatusRequest changes progress on an assigned training.
type UpdateTrainingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignTrainingRequest asks the analysis service to build a training from feedback.
type AssignTrainingRequest struct {
	AdminID string `json:"adminId"`
}

// TrainingAssignment is the analysis service's answer to an assignment request.
type TrainingAssignment struct {
	FeedbackID     string   `json:"feedbackId"`
	TeacherID      string   `json:"teacherId"`
	InferredGaps   []string `json:"inferredGaps"`
	AssignedModule string   `json:"assignedModule"`
	ContentPreview string   `json:"contentPreview"`
}
