package models

import (
	"bytes"
	"encoding/json"
	"slices"
	"time"
)

// FeedbackCategory classifies an issue report.
type FeedbackCategory string

const (
	CategoryAcademic       FeedbackCategory = "academic"
	CategoryInfrastructure FeedbackCategory = "infrastructure"
	CategoryAdministrative FeedbackCategory = "administrative"
	CategorySafety         FeedbackCategory = "safety"
	CategoryTechnology     FeedbackCategory = "technology"
	CategoryOther          FeedbackCategory = "other"
)

// FeedbackCategories lists every accepted category in display order.
var FeedbackCategories = []FeedbackCategory{
	CategoryAcademic,
	CategoryInfrastructure,
	CategoryAdministrative,
	CategorySafety,
	CategoryTechnology,
	CategoryOther,
}

// Valid reports whether c is a known category.
func (c FeedbackCategory) Valid() bool {
	return slices.Contains(FeedbackCategories, c)
}

// FeedbackStatus tracks admin triage progress. Any status may follow any other.
type FeedbackStatus string

const (
	StatusPending  FeedbackStatus = "pending"
	StatusInReview FeedbackStatus = "in_review"
	StatusResolved FeedbackStatus = "resolved"
	StatusRejected FeedbackStatus = "rejected"
)

// FeedbackStatuses lists every accepted status.
var FeedbackStatuses = []FeedbackStatus{StatusPending, StatusInReview, StatusResolved, StatusRejected}

// Valid reports whether s is a known status.
func (s FeedbackStatus) Valid() bool {
	return slices.Contains(FeedbackStatuses, s)
}

// Feedback is a single issue report submitted by a teacher.
type Feedback struct {
	ID           string           `db:"id" json:"id"`
	TeacherID    string           `db:"teacher_id" json:"teacherId"`
	Cluster      string           `db:"cluster" json:"cluster"`
	Category     FeedbackCategory `db:"category" json:"category"`
	Description  string           `db:"description" json:"description"`
	Status       FeedbackStatus   `db:"status" json:"status"`
	CreatedAt    time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updatedAt"`
	AdminRemarks *string          `db:"admin_remarks" json:"adminRemarks"`
}

// FeedbackWithTeacher is a dashboard row joined with its owning teacher.
type FeedbackWithTeacher struct {
	Feedback
	TeacherName       string `db:"teacher_name" json:"teacherName"`
	TeacherEmail      string `db:"teacher_email" json:"teacherEmail"`
	TeacherEmployeeID string `db:"teacher_employee_id" json:"teacherEmployeeId"`
}

// SubmitFeedbackRequest is the teacher app payload for a new report.
type SubmitFeedbackRequest struct {
	TeacherID   string `json:"teacherId" validate:"required"`
	Cluster     string `json:"cluster" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// FeedbackFilter narrows the dashboard listing.
type FeedbackFilter struct {
	Status  FeedbackStatus
	Cluster string
	Limit   int
	Offset  int
}

// FeedbackStatsRow holds the columns tallied by the stats endpoint.
type FeedbackStatsRow struct {
	Status   FeedbackStatus   `db:"status"`
	Category FeedbackCategory `db:"category"`
	Cluster  string           `db:"cluster"`
}

// OptionalString distinguishes an absent JSON key from an explicit null.
// Set is true whenever the key was present; Value is nil for null.
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON records presence and decodes the value.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// UpdateStatusRequest is the dashboard payload for triaging feedback.
type UpdateStatusRequest struct {
	Status       string         `json:"status"`
	AdminRemarks OptionalString `json:"adminRemarks"`
}
