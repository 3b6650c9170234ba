package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "NCC Parade API",
        "description": "Parade roll-call and attendance engine",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Parades", "description": "Parade lifecycle"},
        {"name": "Permissions", "description": "Advance excusal ledger"},
        {"name": "Attendance", "description": "Attendance submission"},
        {"name": "Review", "description": "Summaries, pending slots and export"},
        {"name": "Reports", "description": "Per-category parade reports"},
        {"name": "Notifications", "description": "Pending-attendance notices"},
        {"name": "Cadets", "description": "Roster reads"}
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
                    "200": {"description": "Ready"},
                    "503": {"description": "Dependency unavailable"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/cadets": {
            "get": {
                "tags": ["Cadets"],
                "summary": "List active cadets",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "division", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/parades": {
            "post": {
                "tags": ["Parades"],
                "summary": "Create a new parade",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateParadeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "An open parade already exists"}
                }
            }
        },
        "/api/v1/parades/open": {
            "get": {
                "tags": ["Parades"],
                "summary": "Fetch the current open parade",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No open parade"}
                }
            }
        },
        "/api/v1/parades/last-type-map": {
            "get": {
                "tags": ["Parades"],
                "summary": "Parade type map of the last completed parade",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/parades/{id}": {
            "get": {
                "tags": ["Parades"],
                "summary": "Fetch a parade by id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/parades/{id}/remarks": {
            "put": {
                "tags": ["Parades"],
                "summary": "Update reviewing officer remarks",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Remarks are locked"}
                }
            }
        },
        "/api/v1/parades/{id}/close": {
            "post": {
                "tags": ["Parades"],
                "summary": "Close the parade irreversibly",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Closed"},
                    "412": {"description": "Attendance pending or parade not ready"}
                }
            }
        },
        "/api/v1/parades/{id}/permissions": {
            "get": {
                "tags": ["Permissions"],
                "summary": "List permissions for a parade",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/parades/{id}/permissions/{cadetId}": {
            "get": {
                "tags": ["Permissions"],
                "summary": "Fetch a cadet's permission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "cadetId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No permission recorded"}
                }
            },
            "put": {
                "tags": ["Permissions"],
                "summary": "Record or replace a cadet's permission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "cadetId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertPermissionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Mutation window is closed"}
                }
            },
            "delete": {
                "tags": ["Permissions"],
                "summary": "Delete a cadet's permission",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "cadetId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "409": {"description": "Mutation window is closed"}
                }
            }
        },
        "/api/v1/parades/{id}/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Submit or resubmit attendance for one category/division scope",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitAttendanceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Batch mismatch or window closed"}
                }
            },
            "get": {
                "tags": ["Attendance"],
                "summary": "List persisted attendance records",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "division", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/parades/{id}/summary/ranks": {
            "get": {
                "tags": ["Review"],
                "summary": "Per-rank totals and present counts",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "division", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/parades/{id}/summary/status": {
            "get": {
                "tags": ["Review"],
                "summary": "Status counts and percentages for a scope",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "division", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Unsupported status filter"}
                }
            }
        },
        "/api/v1/parades/{id}/pending-slots": {
            "get": {
                "tags": ["Review"],
                "summary": "Category/division groupings still missing attendance",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/parades/{id}/notifications/pending": {
            "post": {
                "tags": ["Review"],
                "summary": "Notify seniors about pending slots",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "No pending attendance to notify"}
                }
            }
        },
        "/api/v1/parades/{id}/export": {
            "get": {
                "tags": ["Review"],
                "summary": "Download the parade summary as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/api/v1/parades/{id}/notifications": {
            "get": {
                "tags": ["Notifications"],
                "summary": "List active notifications addressed to the caller",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/parades/{id}/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "List reports submitted for a parade",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/parades/{id}/reports/{category}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Fetch a category's parade report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "category", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No report submitted"}
                }
            },
            "put": {
                "tags": ["Reports"],
                "summary": "Save or replace a category's parade report",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "category", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertReportRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Reports are locked"}
                }
            }
        },
        "/api/v1/parades/{id}/reports/{category}/template": {
            "get": {
                "tags": ["Reports"],
                "summary": "Prefill skeleton for the category's parade type",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "category", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateParadeRequest": {
            "type": "object",
            "required": ["parade_date", "session", "categories", "parade_type_map"],
            "properties": {
                "parade_date": {"type": "string", "format": "date"},
                "session": {"type": "string", "enum": ["morning", "evening", "after-noon"]},
                "categories": {"type": "array", "items": {"type": "string"}},
                "parade_type_map": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "UpsertPermissionRequest": {
            "type": "object",
            "required": ["reason"],
            "properties": {
                "reason": {"type": "string"},
                "to_date": {"type": "string", "format": "date"}
            }
        },
        "SubmitAttendanceRequest": {
            "type": "object",
            "required": ["category", "division"],
            "properties": {
                "category": {"type": "string"},
                "division": {"type": "string"},
                "marks": {"type": "object", "additionalProperties": {"type": "boolean"}}
            }
        },
        "UpsertReportRequest": {
            "type": "object",
            "required": ["report_text"],
            "properties": {
                "report_text": {"type": "string"}
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
