package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teacher-feedback-api/internal/models"
	appErrors "github.com/noah-isme/teacher-feedback-api/pkg/errors"
	"github.com/noah-isme/teacher-feedback-api/pkg/response"
)

type trainingService interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.PersonalizedTraining, error)
	UpdateStatus(ctx context.Context, id string, req models.UpdateTrainingStatusRequest) (*models.PersonalizedTraining, error)
}

// TrainingHandler exposes personalised trainings to teachers.
type TrainingHandler struct {
	service trainingService
}

// NewTrainingHandler constructs a TrainingHandler.
func NewTrainingHandler(svc trainingService) *TrainingHandler {
	return &TrainingHandler{service: svc}
}

// ListByTeacher godoc
// @Summary List a teacher's trainings
// @Tags Teacher Training
// @Produce json
// @Param teacherId path string true "Teacher ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/teacher/training/teacher/{teacherId} [get]
func (h *TrainingHandler) ListByTeacher(c *gin.Context) {
	items, err := h.service.ListByTeacher(c.Request.Context(), c.Param("teacherId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"trainings": items})
}

// UpdateStatus godoc
// @Summary Update training progress
// @Tags Teacher Training
// @Accept json
// @Produce json
// @Param id path string true "Training ID"
// @Param payload body models.UpdateTrainingStatusRequest true "Status payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /api/teacher/training/{id}/status [patch]
func (h *TrainingHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateTrainingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid training payload"))
		return
	}
	training, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"training": training})
}
