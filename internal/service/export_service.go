package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/teacher-feedback-api/internal/models"
	"github.com/noah-isme/teacher-feedback-api/pkg/export"
	appErrors "github.com/noah-isme/teacher-feedback-api/pkg/errors"
)

// Export formats accepted by the dashboard.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

type feedbackExportSource interface {
	ListAll(ctx context.Context, filter models.FeedbackFilter) ([]models.FeedbackWithTeacher, error)
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
	ContentType() string
	Extension() string
}

// ExportFile is a rendered document ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
}

var feedbackColumns = []export.Column{
	{Key: "created_at", Title: "Submitted", Weight: 1.4},
	{Key: "teacher", Title: "Teacher", Weight: 1.4},
	{Key: "employee_id", Title: "Employee ID"},
	{Key: "cluster", Title: "Cluster"},
	{Key: "category", Title: "Category"},
	{Key: "status", Title: "Status"},
	{Key: "description", Title: "Description", Weight: 3},
	{Key: "admin_remarks", Title: "Admin Remarks", Weight: 2},
}

// ExportService renders the filtered dashboard listing as a document.
type ExportService struct {
	source    feedbackExportSource
	renderers map[string]tableRenderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(source feedbackExportSource, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		source: source,
		renderers: map[string]tableRenderer{
			FormatCSV: export.NewCSVExporter(),
			FormatPDF: export.NewPDFExporter("Teacher feedback report"),
		},
		logger: logger,
		now:    time.Now,
	}
}

// ExportFeedback renders every report matching the filter, ignoring paging.
func (s *ExportService) ExportFeedback(ctx context.Context, req DashboardListRequest, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	filter, err := BuildFilter(req)
	if err != nil {
		return nil, err
	}
	items, err := s.source.ListAll(ctx, filter)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to fetch feedback")
	}

	now := s.now().UTC()
	table := export.Table{
		Title:   fmt.Sprintf("Teacher Feedback (%s)", now.Format("2006-01-02")),
		Columns: feedbackColumns,
		Rows:    make([]map[string]string, 0, len(items)),
	}
	for _, item := range items {
		table.Rows = append(table.Rows, feedbackRow(item))
	}

	data, err := renderer.Render(table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.logger.Info("feedback exported", zap.String("format", format), zap.Int("rows", len(items)))

	return &ExportFile{
		Filename:    fmt.Sprintf("feedback-%s.%s", now.Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Data:        data,
		Rows:        len(items),
	}, nil
}

func feedbackRow(item models.FeedbackWithTeacher) map[string]string {
	remarks := ""
	if item.AdminRemarks != nil {
		remarks = *item.AdminRemarks
	}
	return map[string]string{
		"created_at":    item.CreatedAt.UTC().Format("2006-01-02 15:04"),
		"teacher":       item.TeacherName,
		"employee_id":   item.TeacherEmployeeID,
		"cluster":       item.Cluster,
		"category":      string(item.Category),
		"status":        string(item.Status),
		"description":   item.Description,
		"admin_remarks": remarks,
	}
}
