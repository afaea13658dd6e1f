package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Akademix Records API",
        "description": "Reporting, dashboard, and export backend for academic records",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Dashboard", "description": "Aggregated dashboard overview"},
        {"name": "Reports", "description": "Enrollment, grade, and teacher workload reports"},
        {"name": "Exports", "description": "Report export as CSV, JSON, or PDF"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard overview",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/v1/reports/enrollments": {
            "get": {
                "tags": ["Reports"],
                "summary": "Enrollment report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string", "description": "YYYY-MM-DD"},
                    {"name": "end_date", "in": "query", "type": "string", "description": "YYYY-MM-DD"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "grade_level", "in": "query", "type": "string"},
                    {"name": "course_category", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "teacher_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter"}
                }
            },
            "post": {
                "tags": ["Reports"],
                "summary": "Enrollment report (filters in body)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "filters", "in": "body", "schema": {"$ref": "#/definitions/ReportFilter"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter"}
                }
            }
        },
        "/api/v1/reports/grades": {
            "get": {
                "tags": ["Reports"],
                "summary": "Grade report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string", "description": "YYYY-MM-DD"},
                    {"name": "end_date", "in": "query", "type": "string", "description": "YYYY-MM-DD"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "grade_level", "in": "query", "type": "string"},
                    {"name": "course_category", "in": "query", "type": "string"},
                    {"name": "semester", "in": "query", "type": "string"},
                    {"name": "teacher_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter"}
                }
            },
            "post": {
                "tags": ["Reports"],
                "summary": "Grade report (filters in body)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "filters", "in": "body", "schema": {"$ref": "#/definitions/ReportFilter"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter"}
                }
            }
        },
        "/api/v1/reports/teachers": {
            "get": {
                "tags": ["Reports"],
                "summary": "Teacher workload report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "start_date", "in": "query", "type": "string", "description": "YYYY-MM-DD"},
                    {"name": "end_date", "in": "query", "type": "string", "description": "YYYY-MM-DD"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "teacher_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter"}
                }
            },
            "post": {
                "tags": ["Reports"],
                "summary": "Teacher workload report (filters in body)",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "filters", "in": "body", "schema": {"$ref": "#/definitions/ReportFilter"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter"}
                }
            }
        },
        "/api/v1/export": {
            "post": {
                "tags": ["Exports"],
                "summary": "Export a report",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "produces": ["text/csv", "application/json", "application/pdf"],
                "responses": {
                    "200": {"description": "Rendered file attachment"},
                    "400": {"description": "Unsupported report type or format"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "definitions": {
        "ReportFilter": {
            "type": "object",
            "properties": {
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "department": {"type": "string"},
                "grade_level": {"type": "string"},
                "course_category": {"type": "string"},
                "semester": {"type": "string"},
                "teacher_id": {"type": "string"}
            }
        },
        "ExportRequest": {
            "type": "object",
            "required": ["report_type", "format"],
            "properties": {
                "report_type": {"type": "string", "enum": ["enrollments", "grades", "teachers"]},
                "format": {"type": "string", "enum": ["csv", "json", "pdf"]},
                "filters": {"$ref": "#/definitions/ReportFilter"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
