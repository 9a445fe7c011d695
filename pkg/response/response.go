package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/teacher-feedback-api/pkg/errors"
)

// ErrorBody is the contract for every failed request.
type ErrorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// JSON sends a success payload. Fields are merged next to "success": true so
// clients read e.g. {"success": true, "feedback": {...}}.
func JSON(c *gin.Context, status int, fields gin.H) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	body := gin.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// OK responds with HTTP 200.
func OK(c *gin.Context, fields gin.H) {
	JSON(c, http.StatusOK, fields)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, fields gin.H) {
	JSON(c, http.StatusCreated, fields)
}

// Error sends an error response converting the error to the common structure.
// Internal causes are attached to the gin context for the request logger and
// never rendered.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.AbortWithStatusJSON(appErr.Status, ErrorBody{Success: false, Error: appErr.Message, Code: appErr.Code})
}

// Attachment streams a generated file download.
func Attachment(c *gin.Context, contentType, filename string, data []byte) {
	c.Header("Cache-Control", "no-store")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
