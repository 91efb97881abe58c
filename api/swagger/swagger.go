package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Exam Notify API",
        "description": "SMS notification service for exam results",
        "version": "0.1.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Exams", "description": "Saved exam catalogue"},
        {"name": "Contacts", "description": "Parent contact directory"},
        {"name": "Messages", "description": "Prepare, preview and send result messages"},
        {"name": "AuditLog", "description": "Send history"},
        {"name": "ProviderConfig", "description": "SMS provider settings"}
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
        "/exams": {
            "get": {
                "tags": ["Exams"],
                "summary": "List saved exams",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exams/{id}/columns": {
            "get": {
                "tags": ["Exams"],
                "summary": "Inspect how the classifier reads an exam's score table",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Exam not found"}
                }
            }
        },
        "/contacts": {
            "get": {
                "tags": ["Contacts"],
                "summary": "List parent contacts",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Contacts"],
                "summary": "Create or update a single contact, keyed by student name",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertContactRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Contacts"],
                "summary": "Replace the whole contact directory",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/ContactRecord"}}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/messages/prepare": {
            "post": {
                "tags": ["Messages"],
                "summary": "Merge exam results with the contact directory into a send pool",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PrepareRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/messages/preview": {
            "get": {
                "tags": ["Messages"],
                "summary": "Compose a single message for one student without sending",
                "parameters": [
                    {"name": "examId", "in": "query", "required": true, "type": "string"},
                    {"name": "student", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/messages/send": {
            "post": {
                "tags": ["Messages"],
                "summary": "Dispatch prepared messages through the configured SMS provider",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SendRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/messages/unmatched/export": {
            "post": {
                "tags": ["Messages"],
                "summary": "Export an unmatched-student list as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "array", "items": {"$ref": "#/definitions/UnmatchedRecord"}}}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/audit-log": {
            "get": {
                "tags": ["AuditLog"],
                "summary": "List every send attempt with its delivery classification",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/audit-log/clear": {
            "post": {
                "tags": ["AuditLog"],
                "summary": "Back up the audit log, then truncate it",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/audit-log/export": {
            "get": {
                "tags": ["AuditLog"],
                "summary": "Export the audit log as CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/provider-config": {
            "get": {
                "tags": ["ProviderConfig"],
                "summary": "Get the active SMS provider settings (secrets masked)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["ProviderConfig"],
                "summary": "Replace the SMS provider settings",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProviderConfigRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "UpsertContactRequest": {
            "type": "object",
            "properties": {
                "student_name": {"type": "string"},
                "parent_name": {"type": "string"},
                "phone": {"type": "string"},
                "class": {"type": "string"},
                "grade": {"type": "string"},
                "stream": {"type": "string"}
            },
            "required": ["student_name", "phone"]
        },
        "ContactRecord": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_name": {"type": "string"},
                "parent_name": {"type": "string"},
                "phone": {"type": "string"},
                "class": {"type": "string"},
                "grade": {"type": "string"},
                "stream": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "PrepareRequest": {
            "type": "object",
            "properties": {
                "exam_ids": {"type": "array", "items": {"type": "string"}},
                "class_filter": {"type": "string"},
                "limit": {"type": "integer"}
            },
            "required": ["exam_ids"]
        },
        "SendRecipient": {
            "type": "object",
            "properties": {
                "phone": {"type": "string"},
                "student_name": {"type": "string"},
                "parent_name": {"type": "string"},
                "exam_id": {"type": "string"},
                "exam_name": {"type": "string"},
                "message": {"type": "string"},
                "total": {"type": "number"}
            },
            "required": ["student_name"]
        },
        "SendRequest": {
            "type": "object",
            "properties": {
                "recipients": {"type": "array", "items": {"$ref": "#/definitions/SendRecipient"}},
                "test_mode": {"type": "boolean"}
            },
            "required": ["recipients"]
        },
        "UnmatchedRecord": {
            "type": "object",
            "properties": {
                "exam_id": {"type": "string"},
                "exam_name": {"type": "string"},
                "student_name": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "UpdateProviderConfigRequest": {
            "type": "object",
            "properties": {
                "api_url": {"type": "string"},
                "username": {"type": "string"},
                "password": {"type": "string"},
                "api_key": {"type": "string"},
                "provider": {"type": "string", "enum": ["hostpinnacle", "mobitech"]},
                "sender": {"type": "string"},
                "http_method": {"type": "string", "enum": ["GET", "POST"]},
                "content_type": {"type": "string"},
                "extra_params": {"type": "object"},
                "test_mode": {"type": "boolean"}
            },
            "required": ["api_url", "provider"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total": {"type": "integer"},
                "total_pages": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
