package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/teacher-feedback-api/internal/dto"
	"github.com/noah-isme/teacher-feedback-api/internal/models"
	"github.com/noah-isme/teacher-feedback-api/internal/service"
	appErrors "github.com/noah-isme/teacher-feedback-api/pkg/errors"
)

type fakeDashboardSrv struct {
	page        *dto.FeedbackPage
	listErr     error
	lastList    service.DashboardListRequest
	updated     *models.Feedback
	updateErr   error
	lastUpdate  models.UpdateStatusRequest
	stats       *dto.FeedbackStats
	teachers    []models.TeacherProfile
	export      *service.ExportFile
	lastFormat  string
	assignment  *models.TrainingAssignment
	assignErr   error
	lastAssign  models.AssignTrainingRequest
	updateCalls int
}

func (f *fakeDashboardSrv) ListFeedback(_ context.Context, req service.DashboardListRequest) (*dto.FeedbackPage, error) {
	f.lastList = req
	return f.page, f.listErr
}

func (f *fakeDashboardSrv) UpdateStatus(_ context.Context, _ string, req models.UpdateStatusRequest) (*models.Feedback, error) {
	f.updateCalls++
	f.lastUpdate = req
	return f.updated, f.updateErr
}

func (f *fakeDashboardSrv) GetStats(context.Context) (*dto.FeedbackStats, error) {
	return f.stats, nil
}

func (f *fakeDashboardSrv) ListTeachers(context.Context) ([]models.TeacherProfile, error) {
	return f.teachers, nil
}

func (f *fakeDashboardSrv) ExportFeedback(_ context.Context, _ service.DashboardListRequest, format string) (*service.ExportFile, error) {
	f.lastFormat = format
	return f.export, nil
}

func (f *fakeDashboardSrv) AssignTraining(_ context.Context, _ string, req models.AssignTrainingRequest) (*models.TrainingAssignment, error) {
	f.lastAssign = req
	return f.assignment, f.assignErr
}

func newDashboardHandler(f *fakeDashboardSrv) *DashboardHandler {
	return NewDashboardHandler(f, f, f)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestDashboardHandlerListFeedback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{page: &dto.FeedbackPage{
		Feedbacks: []models.FeedbackWithTeacher{{Feedback: models.Feedback{ID: "fb-1"}, TeacherName: "Ana"}},
		Total:     7,
		Limit:     1,
	}}
	handler := newDashboardHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard/feedback/all?status=pending&cluster=north&limit=1&offset=0", nil)

	handler.ListFeedback(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.DashboardListRequest{Status: "pending", Cluster: "north", Limit: 1}, srv.lastList)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(7), body["total"])
	assert.Len(t, body["feedbacks"], 1)
}

func TestDashboardHandlerListFeedbackBadLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDashboardHandler(&fakeDashboardSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard/feedback/all?limit=ten", nil)

	handler.ListFeedback(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "limit must be an integer", body["error"])
}

func TestDashboardHandlerUpdateStatusRemarksPresence(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name    string
		payload string
		set     bool
		isNull  bool
	}{
		{"omitted", `{"status":"resolved"}`, false, true},
		{"null", `{"status":"resolved","adminRemarks":null}`, true, true},
		{"value", `{"status":"resolved","adminRemarks":"done"}`, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := &fakeDashboardSrv{updated: &models.Feedback{ID: "fb-1", Status: models.StatusResolved}}
			handler := newDashboardHandler(srv)

			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodPatch, "/api/dashboard/feedback/fb-1/status", strings.NewReader(tc.payload))
			c.Request.Header.Set("Content-Type", "application/json")
			c.Params = gin.Params{{Key: "id", Value: "fb-1"}}

			handler.UpdateStatus(c)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.set, srv.lastUpdate.AdminRemarks.Set)
			assert.Equal(t, tc.isNull, srv.lastUpdate.AdminRemarks.Value == nil)
		})
	}
}

func TestDashboardHandlerUpdateStatusErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{updateErr: appErrors.Clone(appErrors.ErrValidation, "invalid status")}
	handler := newDashboardHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/dashboard/feedback/fb-1/status", strings.NewReader(`{"status":"closed"}`))
	c.Params = gin.Params{{Key: "id", Value: "fb-1"}}

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid status", decodeBody(t, rec)["error"])

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPatch, "/api/dashboard/feedback/fb-1/status", strings.NewReader(`{not json`))

	handler.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 1, srv.updateCalls)
}

func TestDashboardHandlerStatsAndTeachers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{
		stats:    &dto.FeedbackStats{Total: 3, ByCluster: map[string]int{"north": 3}},
		teachers: []models.TeacherProfile{{ID: "t1", Name: "Ana"}},
	}
	handler := newDashboardHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	handler.Stats(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	stats := decodeBody(t, rec)["stats"].(map[string]interface{})
	assert.Equal(t, float64(3), stats["total"])
	assert.Contains(t, stats, "byStatus")

	rec = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard/teachers", nil)
	handler.Teachers(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestDashboardHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{export: &service.ExportFile{Filename: "feedback.csv", ContentType: "text/csv", Data: []byte("a,b\n")}}
	handler := newDashboardHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard/feedback/export?format=csv", nil)

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", srv.lastFormat)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "feedback.csv")
	assert.Equal(t, "a,b\n", rec.Body.String())
}

func TestDashboardHandlerAssignTraining(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{assignment: &models.TrainingAssignment{FeedbackID: "fb-1", AssignedModule: "Active Learning"}}
	handler := newDashboardHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/dashboard/feedback/fb-1/assign-training", nil)
	c.Params = gin.Params{{Key: "id", Value: "fb-1"}}

	handler.AssignTraining(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assignment := decodeBody(t, rec)["assignment"].(map[string]interface{})
	assert.Equal(t, "Active Learning", assignment["assignedModule"])
}

func TestDashboardHandlerAssignTrainingUpstreamFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDashboardSrv{assignErr: appErrors.Clone(appErrors.ErrExternalService, "failed to assign training")}
	handler := newDashboardHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/dashboard/feedback/fb-1/assign-training", strings.NewReader(`{"adminId":"admin-1"}`))

	handler.AssignTraining(c)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "admin-1", srv.lastAssign.AdminID)
}
