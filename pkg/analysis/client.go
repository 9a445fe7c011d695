// Package analysis talks to the external feedback analysis (personalization) service.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout  = 8 * time.Second
	maxErrorBodyLen = 512
)

// ErrDisabled is returned when no base URL was configured.
var ErrDisabled = errors.New("analysis service not configured")

// StatusError reports a non-2xx answer from the service.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("analysis service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("analysis service returned status %d: %s", e.StatusCode, e.Message)
}

// Recorder observes outbound calls. Implemented by the metrics service.
type Recorder interface {
	ObserveExternalCall(operation, outcome string, duration time.Duration)
}

// Config configures the client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Recorder   Recorder
}

// FeedbackAnalysis is the service's view of a teacher's competency gaps.
type FeedbackAnalysis struct {
	TeacherID    string   `json:"teacher_id"`
	TotalIssues  int      `json:"total_issues"`
	InferredGaps []string `json:"inferred_gaps"`
	Priority     string   `json:"priority"`
}

// TrainingRequest asks the service to turn feedback into an assigned training.
type TrainingRequest struct {
	TeacherID  string `json:"teacher_id"`
	FeedbackID string `json:"feedback_id"`
	AdminID    string `json:"admin_id,omitempty"`
}

// TrainingResult is returned after a training was generated and stored.
type TrainingResult struct {
	Success        bool     `json:"success"`
	FeedbackID     string   `json:"feedback_id"`
	TeacherID      string   `json:"teacher_id"`
	InferredGaps   []string `json:"inferred_gaps"`
	AssignedModule string   `json:"assigned_module"`
	ContentPreview string   `json:"personalized_content_preview"`
}

// Client performs single, unretried HTTP calls against the analysis service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	recorder   Recorder
}

// NewClient builds a client. The timeout bounds each call end to end.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: cfg.BaseURL, httpClient: httpClient, recorder: cfg.Recorder}
}

// Enabled reports whether a base URL was configured.
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// AnalyzeFeedback asks the service to infer competency gaps from a teacher's feedback.
func (c *Client) AnalyzeFeedback(ctx context.Context, teacherID string) (*FeedbackAnalysis, error) {
	var out FeedbackAnalysis
	path := "/api/analyze-feedback/" + url.PathEscape(teacherID)
	if err := c.post(ctx, "analyze_feedback", path, nil, &out); err != nil {
		return nil, err
	}
	if out.InferredGaps == nil {
		out.InferredGaps = []string{}
	}
	return &out, nil
}

// AssignTraining asks the service to personalise a training module for the
// teacher behind a feedback.
func (c *Client) AssignTraining(ctx context.Context, req TrainingRequest) (*TrainingResult, error) {
	var out TrainingResult
	if err := c.post(ctx, "feedback_to_training", "/api/feedback-to-training", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, operation, path string, payload interface{}, out interface{}) (err error) {
	if !c.Enabled() {
		return ErrDisabled
	}

	start := time.Now()
	defer func() {
		if c.recorder == nil {
			return
		}
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		c.recorder.ObserveExternalCall(operation, outcome, time.Since(start))
	}()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", operation, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

func errorMessage(r io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(r, maxErrorBodyLen))
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		return payload.Error
	}
	return string(bytes.TrimSpace(raw))
}
