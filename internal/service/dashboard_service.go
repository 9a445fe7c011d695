package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/teacher-feedback-api/internal/dto"
	"github.com/noah-isme/teacher-feedback-api/internal/models"
	appErrors "github.com/noah-isme/teacher-feedback-api/pkg/errors"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

type dashboardFeedbackRepository interface {
	List(ctx context.Context, filter models.FeedbackFilter) ([]models.FeedbackWithTeacher, int, error)
	UpdateStatus(ctx context.Context, id string, status models.FeedbackStatus, remarks models.OptionalString, updatedAt time.Time) (*models.Feedback, error)
	StatsRows(ctx context.Context) ([]models.FeedbackStatsRow, error)
}

type teacherDirectory interface {
	ListByName(ctx context.Context) ([]models.Teacher, error)
}

// DashboardListRequest carries raw listing query parameters.
type DashboardListRequest struct {
	Status  string
	Cluster string
	Limit   int
	Offset  int
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Feedback dashboardFeedbackRepository
	Teachers teacherDirectory
	Logger   *zap.Logger
}

// DashboardService serves the administrator views.
type DashboardService struct {
	feedback dashboardFeedbackRepository
	teachers teacherDirectory
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		feedback: params.Feedback,
		teachers: params.Teachers,
		logger:   logger,
		now:      time.Now,
	}
}

// BuildFilter validates listing parameters and applies paging defaults.
func BuildFilter(req DashboardListRequest) (models.FeedbackFilter, error) {
	filter := models.FeedbackFilter{
		Cluster: strings.TrimSpace(req.Cluster),
		Limit:   req.Limit,
		Offset:  req.Offset,
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		filter.Status = models.FeedbackStatus(status)
		if !filter.Status.Valid() {
			return filter, appErrors.Clone(appErrors.ErrValidation, "invalid status filter")
		}
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter, nil
}

// ListFeedback returns one page of reports joined with their teachers and
// the total number of matching rows.
func (s *DashboardService) ListFeedback(ctx context.Context, req DashboardListRequest) (*dto.FeedbackPage, error) {
	filter, err := BuildFilter(req)
	if err != nil {
		return nil, err
	}
	items, total, err := s.feedback.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to fetch feedback")
	}
	if items == nil {
		items = []models.FeedbackWithTeacher{}
	}
	return &dto.FeedbackPage{
		Feedbacks: items,
		Total:     total,
		Limit:     filter.Limit,
		Offset:    filter.Offset,
	}, nil
}

// UpdateStatus moves a report to another status. Remarks are only written
// when the request carried the key; an explicit null clears them.
func (s *DashboardService) UpdateStatus(ctx context.Context, id string, req models.UpdateStatusRequest) (*models.Feedback, error) {
	status := models.FeedbackStatus(strings.TrimSpace(req.Status))
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid status")
	}

	feedback, err := s.feedback.UpdateStatus(ctx, id, status, req.AdminRemarks, s.now().UTC())
	if err != nil {
		if isMissing(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "feedback not found")
		}
		return nil, appErrors.Storage(err, "failed to update feedback")
	}
	s.logger.Info("feedback status updated",
		zap.String("feedback_id", id),
		zap.String("status", string(status)),
		zap.Bool("remarks_changed", req.AdminRemarks.Set),
	)
	return feedback, nil
}

// GetStats tallies every report in memory.
func (s *DashboardService) GetStats(ctx context.Context) (*dto.FeedbackStats, error) {
	rows, err := s.feedback.StatsRows(ctx)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to fetch stats")
	}
	return tallyStats(rows), nil
}

func tallyStats(rows []models.FeedbackStatsRow) *dto.FeedbackStats {
	stats := &dto.FeedbackStats{Total: len(rows), ByCluster: map[string]int{}}
	for _, row := range rows {
		switch row.Status {
		case models.StatusPending:
			stats.ByStatus.Pending++
		case models.StatusInReview:
			stats.ByStatus.InReview++
		case models.StatusResolved:
			stats.ByStatus.Resolved++
		case models.StatusRejected:
			stats.ByStatus.Rejected++
		}

		switch row.Category {
		case models.CategoryAcademic:
			stats.ByCategory.Academic++
		case models.CategoryInfrastructure:
			stats.ByCategory.Infrastructure++
		case models.CategoryAdministrative:
			stats.ByCategory.Administrative++
		case models.CategorySafety:
			stats.ByCategory.Safety++
		case models.CategoryTechnology:
			stats.ByCategory.Technology++
		case models.CategoryOther:
			stats.ByCategory.Other++
		}

		stats.ByCluster[row.Cluster]++
	}
	return stats
}

// ListTeachers returns every teacher ordered by name.
func (s *DashboardService) ListTeachers(ctx context.Context) ([]models.TeacherProfile, error) {
	teachers, err := s.teachers.ListByName(ctx)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to fetch teachers")
	}
	profiles := make([]models.TeacherProfile, 0, len(teachers))
	for _, teacher := range teachers {
		profiles = append(profiles, teacher.Profile())
	}
	return profiles, nil
}
