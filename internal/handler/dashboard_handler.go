package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teacher-feedback-api/internal/dto"
	"github.com/noah-isme/teacher-feedback-api/internal/models"
	"github.com/noah-isme/teacher-feedback-api/internal/service"
	appErrors "github.com/noah-isme/teacher-feedback-api/pkg/errors"
	"github.com/noah-isme/teacher-feedback-api/pkg/response"
)

type dashboardService interface {
	ListFeedback(ctx context.Context, req service.DashboardListRequest) (*dto.FeedbackPage, error)
	UpdateStatus(ctx context.Context, id string, req models.UpdateStatusRequest) (*models.Feedback, error)
	GetStats(ctx context.Context) (*dto.FeedbackStats, error)
	ListTeachers(ctx context.Context) ([]models.TeacherProfile, error)
}

type feedbackExporter interface {
	ExportFeedback(ctx context.Context, req service.DashboardListRequest, format string) (*service.ExportFile, error)
}

type trainingAssigner interface {
	AssignTraining(ctx context.Context, feedbackID string, req models.AssignTrainingRequest) (*models.TrainingAssignment, error)
}

// DashboardHandler exposes the administrator dashboard endpoints.
type DashboardHandler struct {
	service  dashboardService
	exporter feedbackExporter
	trainer  trainingAssigner
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc dashboardService, exporter feedbackExporter, trainer trainingAssigner) *DashboardHandler {
	return &DashboardHandler{service: svc, exporter: exporter, trainer: trainer}
}

// ListFeedback godoc
// @Summary List feedback
// @Description Feedback joined with the owning teacher, newest first, with the total matching count.
// @Tags Dashboard
// @Produce json
// @Param status query string false "pending, in_review, resolved or rejected"
// @Param cluster query string false "Cluster"
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} dto.FeedbackPage
// @Failure 400 {object} response.ErrorBody
// @Router /api/dashboard/feedback/all [get]
func (h *DashboardHandler) ListFeedback(c *gin.Context) {
	req, err := listRequestFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, err := h.service.ListFeedback(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{
		"feedbacks": page.Feedbacks,
		"total":     page.Total,
		"limit":     page.Limit,
		"offset":    page.Offset,
	})
}

// UpdateStatus godoc
// @Summary Update feedback status
// @Description Omitting adminRemarks keeps the stored remarks; null clears them.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param payload body models.UpdateStatusRequest true "Status payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /api/dashboard/feedback/{id}/status [patch]
func (h *DashboardHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	feedback, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"feedback": feedback})
}

// Stats godoc
// @Summary Feedback statistics
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.FeedbackStats
// @Router /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"stats": stats})
}

// Teachers godoc
// @Summary List teachers
// @Tags Dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/dashboard/teachers [get]
func (h *DashboardHandler) Teachers(c *gin.Context) {
	teachers, err := h.service.ListTeachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"teachers": teachers})
}

// Export godoc
// @Summary Export feedback
// @Description Download every matching feedback row as CSV or PDF.
// @Tags Dashboard
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Param status query string false "Status filter"
// @Param cluster query string false "Cluster filter"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /api/dashboard/feedback/export [get]
func (h *DashboardHandler) Export(c *gin.Context) {
	req := service.DashboardListRequest{Status: c.Query("status"), Cluster: c.Query("cluster")}
	file, err := h.exporter.ExportFeedback(c.Request.Context(), req, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.ContentType, file.Filename, file.Data)
}

// AssignTraining godoc
// @Summary Assign a personalised training from feedback
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param id path string true "Feedback ID"
// @Param payload body models.AssignTrainingRequest false "Assigning administrator"
// @Success 200 {object} models.TrainingAssignment
// @Failure 404 {object} response.ErrorBody
// @Failure 502 {object} response.ErrorBody
// @Router /api/dashboard/feedback/{id}/assign-training [post]
func (h *DashboardHandler) AssignTraining(c *gin.Context) {
	var req models.AssignTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.trainer.AssignTraining(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"assignment": assignment})
}

func listRequestFromQuery(c *gin.Context) (service.DashboardListRequest, error) {
	req := service.DashboardListRequest{Status: c.Query("status"), Cluster: c.Query("cluster")}
	var err error
	if req.Limit, err = intQuery(c, "limit"); err != nil {
		return req, err
	}
	if req.Offset, err = intQuery(c, "offset"); err != nil {
		return req, err
	}
	return req, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, key+" must be an integer")
	}
	return value, nil
}
