package models

import (
	"time"

	"github.com/lib/pq"
)

// AnnotationConfidence is stored on every annotation; the analysis service
// does not return a score of its own.
const AnnotationConfidence = 0.75

// AIAnnotation is the stored result of analysing one feedback submission.
type AIAnnotation struct {
	ID              string         `db:"id" json:"id"`
	FeedbackID      string         `db:"feedback_id" json:"feedbackId"`
	TeacherID       string         `db:"teacher_id" json:"teacherId"`
	Suggestion      string         `db:"suggestion" json:"suggestion"`
	InferredGaps    pq.StringArray `db:"inferred_gaps" json:"inferredGaps"`
	Priority        string         `db:"priority" json:"priority"`
	ConfidenceScore float64        `db:"confidence_score" json:"confidenceScore"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
}

// AIResponse is what the teacher app shows after a submission.
type AIResponse struct {
	Suggestion      string   `json:"suggestion"`
	InferredGaps    []string `json:"inferredGaps"`
	Priority        string   `json:"priority"`
	ConfidenceScore float64  `json:"confidenceScore"`
}

// Response converts a stored annotation into the client view.
func (a AIAnnotation) Response() AIResponse {
	gaps := []string(a.InferredGaps)
	if gaps == nil {
		gaps = []string{}
	}
	return AIResponse{
		Suggestion:      a.Suggestion,
		InferredGaps:    gaps,
		Priority:        a.Priority,
		ConfidenceScore: a.ConfidenceScore,
	}
}
