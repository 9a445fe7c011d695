package dto

import "github.com/noah-isme/teacher-feedback-api/internal/models"

// StatusCounts buckets feedback by triage status.
type StatusCounts struct {
	Pending  int `json:"pending"`
	InReview int `json:"inReview"`
	Resolved int `json:"resolved"`
	Rejected int `json:"rejected"`
}

// CategoryCounts buckets feedback by category.
type CategoryCounts struct {
	Academic       int `json:"academic"`
	Infrastructure int `json:"infrastructure"`
	Administrative int `json:"administrative"`
	Safety         int `json:"safety"`
	Technology     int `json:"technology"`
	Other          int `json:"other"`
}

// FeedbackStats is the dashboard overview payload.
type FeedbackStats struct {
	Total      int            `json:"total"`
	ByStatus   StatusCounts   `json:"byStatus"`
	ByCategory CategoryCounts `json:"byCategory"`
	ByCluster  map[string]int `json:"byCluster"`
}

// FeedbackPage is one page of the dashboard feedback listing.
type FeedbackPage struct {
	Feedbacks []models.FeedbackWithTeacher `json:"feedbacks"`
	Total     int                          `json:"total"`
	Limit     int                          `json:"limit"`
	Offset    int                          `json:"offset"`
}

// SubmitFeedbackResult is returned to the teacher app after a submission.
// AIResponse is nil when analysis was skipped or failed.
type SubmitFeedbackResult struct {
	Feedback   *models.Feedback   `json:"feedback"`
	AIResponse *models.AIResponse `json:"aiResponse,omitempty"`
}
