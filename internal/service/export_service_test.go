package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-feedback-api/internal/models"
)

type mockExportSource struct {
	rows       []models.FeedbackWithTeacher
	lastFilter models.FeedbackFilter
	calls      int
}

func (m *mockExportSource) ListAll(_ context.Context, filter models.FeedbackFilter) ([]models.FeedbackWithTeacher, error) {
	m.calls++
	m.lastFilter = filter
	return m.rows, nil
}

func exportRows() []models.FeedbackWithTeacher {
	remarks := "ticket raised"
	return []models.FeedbackWithTeacher{{
		Feedback: models.Feedback{
			ID:           "fb-1",
			Cluster:      "north",
			Category:     models.CategoryInfrastructure,
			Description:  "Leaking roof",
			Status:       models.StatusInReview,
			CreatedAt:    time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
			AdminRemarks: &remarks,
		},
		TeacherName:       "Ana",
		TeacherEmployeeID: "EMP-1",
	}}
}

func TestExportFeedbackCSV(t *testing.T) {
	source := &mockExportSource{rows: exportRows()}
	svc := NewExportService(source, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 2, 15, 4, 5, 0, time.UTC) }

	file, err := svc.ExportFeedback(context.Background(), DashboardListRequest{Status: "in_review", Cluster: "north"}, "")
	require.NoError(t, err)
	assert.Equal(t, "feedback-20240602-150405.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, 1, file.Rows)
	assert.Equal(t, models.StatusInReview, source.lastFilter.Status)

	lines := strings.Split(strings.TrimSpace(string(file.Data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Submitted,Teacher,Employee ID"))
	assert.Equal(t, "2024-05-01 08:30,Ana,EMP-1,north,infrastructure,in_review,Leaking roof,ticket raised", lines[1])
}

func TestExportFeedbackPDF(t *testing.T) {
	svc := NewExportService(&mockExportSource{rows: exportRows()}, nil)

	file, err := svc.ExportFeedback(context.Background(), DashboardListRequest{}, "PDF")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".pdf"))
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
}

func TestExportFeedbackRejectsBadInput(t *testing.T) {
	source := &mockExportSource{}
	svc := NewExportService(source, nil)

	_, err := svc.ExportFeedback(context.Background(), DashboardListRequest{}, "xlsx")
	assertStatus(t, err, 400)

	_, err = svc.ExportFeedback(context.Background(), DashboardListRequest{Status: "unknown"}, "csv")
	assertStatus(t, err, 400)
	assert.Zero(t, source.calls)
}
