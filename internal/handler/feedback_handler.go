package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/teacher-feedback-api/internal/dto"
	"github.com/noah-isme/teacher-feedback-api/internal/models"
	appErrors "github.com/noah-isme/teacher-feedback-api/pkg/errors"
	"github.com/noah-isme/teacher-feedback-api/pkg/response"
)

type feedbackService interface {
	Submit(ctx context.Context, req models.SubmitFeedbackRequest) (*dto.SubmitFeedbackResult, error)
	Get(ctx context.Context, id string) (*models.Feedback, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Feedback, error)
	GetAIResponse(ctx context.Context, feedbackID string) (*models.AIResponse, error)
}

// FeedbackHandler exposes the teacher app feedback endpoints.
type FeedbackHandler struct {
	service feedbackService
}

// NewFeedbackHandler constructs a FeedbackHandler.
func NewFeedbackHandler(svc feedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// Submit godoc
// @Summary Submit feedback
// @Description Store an issue report. The AI suggestion is attached when the analysis service answered.
// @Tags Teacher Feedback
// @Accept json
// @Produce json
// @Param payload body models.SubmitFeedbackRequest true "Feedback payload"
// @Success 201 {object} dto.SubmitFeedbackResult
// @Failure 400 {object} response.ErrorBody
// @Router /api/teacher/feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}

	result, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	fields := gin.H{"feedback": result.Feedback}
	if result.AIResponse != nil {
		fields["aiResponse"] = result.AIResponse
	}
	response.Created(c, fields)
}

// ListByTeacher godoc
// @Summary List a teacher's feedback
// @Tags Teacher Feedback
// @Produce json
// @Param teacherId path string true "Teacher ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/teacher/feedback/teacher/{teacherId} [get]
func (h *FeedbackHandler) ListByTeacher(c *gin.Context) {
	items, err := h.service.ListByTeacher(c.Request.Context(), c.Param("teacherId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"feedbacks": items})
}

// Get godoc
// @Summary Get feedback
// @Tags Teacher Feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /api/teacher/feedback/{id} [get]
func (h *FeedbackHandler) Get(c *gin.Context) {
	feedback, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"feedback": feedback})
}

// AIResponse godoc
// @Summary Get the AI suggestion for a feedback
// @Tags Teacher Feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /api/teacher/feedback/{id}/ai-response [get]
func (h *FeedbackHandler) AIResponse(c *gin.Context) {
	resp, err := h.service.GetAIResponse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"aiResponse": resp})
}
