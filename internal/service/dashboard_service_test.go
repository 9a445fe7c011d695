package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-feedback-api/internal/models"
)

type mockDashboardFeedback struct {
	rows        []models.FeedbackWithTeacher
	stats       []models.FeedbackStatsRow
	stored      map[string]*models.Feedback
	lastFilter  models.FeedbackFilter
	updateCalls int
	listErr     error
	updateErr   error
}

func (m *mockDashboardFeedback) List(_ context.Context, filter models.FeedbackFilter) ([]models.FeedbackWithTeacher, int, error) {
	m.lastFilter = filter
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	var matched []models.FeedbackWithTeacher
	for _, row := range m.rows {
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		if filter.Cluster != "" && row.Cluster != filter.Cluster {
			continue
		}
		matched = append(matched, row)
	}
	total := len(matched)
	if filter.Offset >= len(matched) {
		return []models.FeedbackWithTeacher{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (m *mockDashboardFeedback) UpdateStatus(_ context.Context, id string, status models.FeedbackStatus, remarks models.OptionalString, updatedAt time.Time) (*models.Feedback, error) {
	m.updateCalls++
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	item, ok := m.stored[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	item.Status = status
	item.UpdatedAt = updatedAt
	if remarks.Set {
		item.AdminRemarks = remarks.Value
	}
	cp := *item
	return &cp, nil
}

func (m *mockDashboardFeedback) StatsRows(context.Context) ([]models.FeedbackStatsRow, error) {
	return m.stats, nil
}

type mockTeacherDirectory struct {
	teachers []models.Teacher
}

func (m *mockTeacherDirectory) ListByName(context.Context) ([]models.Teacher, error) {
	return m.teachers, nil
}

func pendingRows(n int) []models.FeedbackWithTeacher {
	rows := make([]models.FeedbackWithTeacher, 0, n+2)
	for i := 0; i < n; i++ {
		rows = append(rows, models.FeedbackWithTeacher{Feedback: models.Feedback{Status: models.StatusPending, Cluster: "north"}})
	}
	rows = append(rows,
		models.FeedbackWithTeacher{Feedback: models.Feedback{Status: models.StatusResolved, Cluster: "north"}},
		models.FeedbackWithTeacher{Feedback: models.Feedback{Status: models.StatusPending, Cluster: "south"}},
	)
	return rows
}

func TestDashboardListFeedbackTotalIndependentOfLimit(t *testing.T) {
	repo := &mockDashboardFeedback{rows: pendingRows(4)}
	svc := NewDashboardService(DashboardServiceParams{Feedback: repo})

	page, err := svc.ListFeedback(context.Background(), DashboardListRequest{Status: "pending", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, page.Feedbacks, 1)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 1, page.Limit)
	assert.Equal(t, 0, page.Offset)

	page, err = svc.ListFeedback(context.Background(), DashboardListRequest{Status: "pending", Cluster: "south"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestDashboardListFeedbackDefaults(t *testing.T) {
	repo := &mockDashboardFeedback{}
	svc := NewDashboardService(DashboardServiceParams{Feedback: repo})

	page, err := svc.ListFeedback(context.Background(), DashboardListRequest{Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, 50, page.Limit)
	assert.Equal(t, 0, page.Offset)
	assert.NotNil(t, page.Feedbacks)

	_, err = svc.ListFeedback(context.Background(), DashboardListRequest{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 200, repo.lastFilter.Limit)
}

func TestDashboardListFeedbackInvalidStatus(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{Feedback: &mockDashboardFeedback{}})
	_, err := svc.ListFeedback(context.Background(), DashboardListRequest{Status: "closed"})
	assertStatus(t, err, 400)
}

func TestDashboardListFeedbackStorageFailure(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{Feedback: &mockDashboardFeedback{listErr: errors.New("boom")}})
	_, err := svc.ListFeedback(context.Background(), DashboardListRequest{})
	assertStatus(t, err, 500)
}

func storedFeedback() map[string]*models.Feedback {
	remarks := "checked by facilities"
	updated := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	return map[string]*models.Feedback{
		"fb-1": {ID: "fb-1", Status: models.StatusInReview, UpdatedAt: updated, AdminRemarks: &remarks},
	}
}

func TestDashboardUpdateStatusInvalidNeverWrites(t *testing.T) {
	repo := &mockDashboardFeedback{stored: storedFeedback()}
	svc := NewDashboardService(DashboardServiceParams{Feedback: repo})
	before := *repo.stored["fb-1"]

	_, err := svc.UpdateStatus(context.Background(), "fb-1", models.UpdateStatusRequest{Status: "done"})
	assertStatus(t, err, 400)
	assert.Zero(t, repo.updateCalls)
	assert.Equal(t, before.UpdatedAt, repo.stored["fb-1"].UpdatedAt)
}

func TestDashboardUpdateStatusPreservesRemarksWhenOmitted(t *testing.T) {
	repo := &mockDashboardFeedback{stored: storedFeedback()}
	svc := NewDashboardService(DashboardServiceParams{Feedback: repo})
	fixed := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	updated, err := svc.UpdateStatus(context.Background(), "fb-1", models.UpdateStatusRequest{Status: "resolved"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, updated.Status)
	assert.Equal(t, fixed, updated.UpdatedAt)
	require.NotNil(t, updated.AdminRemarks)
	assert.Equal(t, "checked by facilities", *updated.AdminRemarks)
}

func TestDashboardUpdateStatusOverwritesRemarks(t *testing.T) {
	repo := &mockDashboardFeedback{stored: storedFeedback()}
	svc := NewDashboardService(DashboardServiceParams{Feedback: repo})

	text := "duplicate report"
	updated, err := svc.UpdateStatus(context.Background(), "fb-1", models.UpdateStatusRequest{
		Status:       "rejected",
		AdminRemarks: models.OptionalString{Set: true, Value: &text},
	})
	require.NoError(t, err)
	assert.Equal(t, "duplicate report", *updated.AdminRemarks)

	updated, err = svc.UpdateStatus(context.Background(), "fb-1", models.UpdateStatusRequest{
		Status:       "pending",
		AdminRemarks: models.OptionalString{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AdminRemarks)
}

// Any status may follow any other, including resolved back to pending.
func TestDashboardUpdateStatusAllowsAnyTransition(t *testing.T) {
	repo := &mockDashboardFeedback{stored: storedFeedback()}
	svc := NewDashboardService(DashboardServiceParams{Feedback: repo})

	for _, status := range []string{"resolved", "pending", "rejected", "in_review"} {
		updated, err := svc.UpdateStatus(context.Background(), "fb-1", models.UpdateStatusRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, models.FeedbackStatus(status), updated.Status)
	}
}

func TestDashboardUpdateStatusNotFound(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{Feedback: &mockDashboardFeedback{stored: map[string]*models.Feedback{}}})
	_, err := svc.UpdateStatus(context.Background(), "missing", models.UpdateStatusRequest{Status: "resolved"})
	assertStatus(t, err, 404)
}

func TestDashboardUpdateStatusMalformedID(t *testing.T) {
	repo := &mockDashboardFeedback{updateErr: fmt.Errorf("update feedback status: %w", &pq.Error{Code: "22P02"})}
	svc := NewDashboardService(DashboardServiceParams{Feedback: repo})
	_, err := svc.UpdateStatus(context.Background(), "not-a-uuid", models.UpdateStatusRequest{Status: "resolved"})
	assertStatus(t, err, 404)
}

func TestDashboardGetStats(t *testing.T) {
	repo := &mockDashboardFeedback{stats: []models.FeedbackStatsRow{
		{Status: models.StatusPending, Category: models.CategorySafety, Cluster: "north"},
		{Status: models.StatusPending, Category: models.CategoryAcademic, Cluster: "north"},
		{Status: models.StatusInReview, Category: models.CategoryOther, Cluster: "south"},
		{Status: models.StatusRejected, Category: models.CategorySafety, Cluster: "east"},
	}}
	svc := NewDashboardService(DashboardServiceParams{Feedback: repo})

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 2, stats.ByStatus.Pending)
	assert.Equal(t, 1, stats.ByStatus.InReview)
	assert.Equal(t, 0, stats.ByStatus.Resolved)
	assert.Equal(t, 2, stats.ByCategory.Safety)
	assert.Equal(t, map[string]int{"north": 2, "south": 1, "east": 1}, stats.ByCluster)
}

func TestDashboardGetStatsCountsEveryCluster(t *testing.T) {
	repo := &mockDashboardFeedback{stats: []models.FeedbackStatsRow{
		{Status: models.StatusPending, Category: models.CategorySafety, Cluster: "north"},
		{Status: models.StatusResolved, Category: models.CategoryOther, Cluster: ""},
	}}
	svc := NewDashboardService(DashboardServiceParams{Feedback: repo})

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"north": 1, "": 1}, stats.ByCluster)
	sum := 0
	for _, n := range stats.ByCluster {
		sum += n
	}
	assert.Equal(t, stats.Total, sum)
}

func TestDashboardGetStatsEmpty(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{Feedback: &mockDashboardFeedback{}})
	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.NotNil(t, stats.ByCluster)
}

func TestDashboardListTeachers(t *testing.T) {
	teachers := &mockTeacherDirectory{teachers: []models.Teacher{
		{ID: "t1", Name: "Ana", PasswordHash: "hash"},
		{ID: "t2", Name: "Budi", PasswordHash: "hash"},
	}}
	svc := NewDashboardService(DashboardServiceParams{Teachers: teachers})

	profiles, err := svc.ListTeachers(context.Background())
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "Ana", profiles[0].Name)
}
