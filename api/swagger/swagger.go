package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Teacher Feedback API",
        "description": "Teacher issue reporting and admin triage backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Teacher Auth", "description": "Teacher login and registration"},
        {"name": "Teacher Feedback", "description": "Issue reports and AI suggestions"},
        {"name": "Teacher Training", "description": "Personalised training progress"},
        {"name": "Dashboard", "description": "Administrator triage and statistics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check (database ping)",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/api/teacher/auth/login": {
            "post": {
                "tags": ["Teacher Auth"],
                "summary": "Authenticate teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/TeacherResponse"}},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/teacher/auth/register": {
            "post": {
                "tags": ["Teacher Auth"],
                "summary": "Register teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/TeacherResponse"}},
                    "400": {"description": "Missing fields", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "409": {"description": "Email or employee ID already exists", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/teacher/feedback": {
            "post": {
                "tags": ["Teacher Feedback"],
                "summary": "Submit feedback",
                "description": "aiResponse is omitted when the analysis service did not answer.",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitFeedbackRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/SubmitFeedbackResponse"}},
                    "400": {"description": "Missing fields or unknown category", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/teacher/feedback/teacher/{teacherId}": {
            "get": {
                "tags": ["Teacher Feedback"],
                "summary": "List a teacher's feedback, newest first",
                "parameters": [
                    {"name": "teacherId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/teacher/feedback/{id}": {
            "get": {
                "tags": ["Teacher Feedback"],
                "summary": "Get feedback",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/teacher/feedback/{id}/ai-response": {
            "get": {
                "tags": ["Teacher Feedback"],
                "summary": "Get the stored AI suggestion",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No suggestion recorded", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/teacher/training/teacher/{teacherId}": {
            "get": {
                "tags": ["Teacher Training"],
                "summary": "List a teacher's trainings",
                "parameters": [
                    {"name": "teacherId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/teacher/training/{id}/status": {
            "patch": {
                "tags": ["Teacher Training"],
                "summary": "Update training progress",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTrainingStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Unknown status", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/dashboard/feedback/all": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "List feedback with teacher details",
                "parameters": [
                    {"name": "status", "in": "query", "type": "string", "enum": ["pending", "in_review", "resolved", "rejected"]},
                    {"name": "cluster", "in": "query", "type": "string"},
                    {"name": "limit", "in": "query", "type": "integer", "default": 50, "maximum": 200},
                    {"name": "offset", "in": "query", "type": "integer", "default": 0}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/FeedbackPage"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/dashboard/feedback/export": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Export feedback as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "cluster", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File", "schema": {"type": "file"}},
                    "400": {"description": "Invalid filter or format", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/dashboard/feedback/{id}/status": {
            "patch": {
                "tags": ["Dashboard"],
                "summary": "Update feedback status",
                "description": "Omitting adminRemarks keeps the stored value; null clears it.",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Invalid status", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/dashboard/feedback/{id}/assign-training": {
            "post": {
                "tags": ["Dashboard"],
                "summary": "Assign a personalised training built from this feedback",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/AssignTrainingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Feedback not found", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "502": {"description": "Analysis service failed", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "503": {"description": "Analysis service not configured", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/api/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Feedback counts by status, category and cluster",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/StatsResponse"}}}
            }
        },
        "/api/dashboard/teachers": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "List teachers ordered by name",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "password": {"type": "string"},
                "cluster": {"type": "string"},
                "employeeId": {"type": "string"}
            },
            "required": ["name", "email", "password", "cluster", "employeeId"]
        },
        "Teacher": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "cluster": {"type": "string"},
                "employeeId": {"type": "string"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "TeacherResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "teacher": {"$ref": "#/definitions/Teacher"}
            }
        },
        "SubmitFeedbackRequest": {
            "type": "object",
            "properties": {
                "teacherId": {"type": "string"},
                "cluster": {"type": "string"},
                "category": {"type": "string", "enum": ["academic", "infrastructure", "administrative", "safety", "technology", "other"]},
                "description": {"type": "string"}
            },
            "required": ["teacherId", "cluster", "category", "description"]
        },
        "Feedback": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "teacherId": {"type": "string"},
                "cluster": {"type": "string"},
                "category": {"type": "string"},
                "description": {"type": "string"},
                "status": {"type": "string", "enum": ["pending", "in_review", "resolved", "rejected"]},
                "createdAt": {"type": "string", "format": "date-time"},
                "updatedAt": {"type": "string", "format": "date-time"},
                "adminRemarks": {"type": "string"}
            }
        },
        "AIResponse": {
            "type": "object",
            "properties": {
                "suggestion": {"type": "string"},
                "inferredGaps": {"type": "array", "items": {"type": "string"}},
                "priority": {"type": "string", "enum": ["high", "medium", "low"]},
                "confidenceScore": {"type": "number", "format": "double"}
            }
        },
        "SubmitFeedbackResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "feedback": {"$ref": "#/definitions/Feedback"},
                "aiResponse": {"$ref": "#/definitions/AIResponse"}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["pending", "in_review", "resolved", "rejected"]},
                "adminRemarks": {"type": "string"}
            },
            "required": ["status"]
        },
        "UpdateTrainingStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["not_started", "in_progress", "completed"]}
            },
            "required": ["status"]
        },
        "AssignTrainingRequest": {
            "type": "object",
            "properties": {
                "adminId": {"type": "string"}
            }
        },
        "FeedbackPage": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "feedbacks": {"type": "array", "items": {"$ref": "#/definitions/Feedback"}},
                "total": {"type": "integer"},
                "limit": {"type": "integer"},
                "offset": {"type": "integer"}
            }
        },
        "StatsResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "stats": {
                    "type": "object",
                    "properties": {
                        "total": {"type": "integer"},
                        "byStatus": {"type": "object", "additionalProperties": {"type": "integer"}},
                        "byCategory": {"type": "object", "additionalProperties": {"type": "integer"}},
                        "byCluster": {"type": "object", "additionalProperties": {"type": "integer"}}
                    }
                }
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
