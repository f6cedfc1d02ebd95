package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Piano Studio API",
        "description": "Scheduling, enrollment and pricing backend for the studio's signup site and teacher console",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Signup", "description": "Public enrollment and waiting list"},
        {"name": "Availability", "description": "Lesson time suggestions"},
        {"name": "Pricing", "description": "Public pricing tiers"},
        {"name": "Auth", "description": "Teacher console sessions"},
        {"name": "Students", "description": "Roster and queue management"},
        {"name": "WorkingHours", "description": "Weekly teaching windows"},
        {"name": "Configuration", "description": "Studio tunables"},
        {"name": "Schedule", "description": "Weekly schedule exports"}
    ],
    "paths": {
        "/piano/signup": {
            "post": {
                "tags": ["Signup"],
                "summary": "Submit a lesson signup",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"},
                    "409": {"description": "Email already registered or no spots available"}
                }
            }
        },
        "/piano/waiting-list": {
            "post": {
                "tags": ["Signup"],
                "summary": "Join the waiting list",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Waiting list full or email already registered"}
                }
            }
        },
        "/piano/waiting-list/position": {
            "post": {
                "tags": ["Signup"],
                "summary": "Check waiting list position",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WaitingListPositionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Email not on the waiting list"}
                }
            }
        },
        "/piano/availability": {
            "get": {
                "tags": ["Signup"],
                "summary": "Current roster and waiting list capacity",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/piano/suggestions": {
            "get": {
                "tags": ["Availability"],
                "summary": "Suggest lesson placements",
                "parameters": [
                    {"name": "duration", "in": "query", "type": "string", "required": true},
                    {"name": "mode", "in": "query", "type": "string", "enum": ["both", "day", "time"]},
                    {"name": "dayOfWeek", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No working hours configured"}
                }
            }
        },
        "/piano/pricing": {
            "get": {
                "tags": ["Pricing"],
                "summary": "Lesson pricing tiers",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/piano/downloads": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Download a rendered schedule",
                "parameters": [
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "401": {"description": "Invalid or expired token"}
                }
            }
        },
        "/teacher/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Teacher console login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/teacher/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Teacher console logout",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current teacher account",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students in a collection",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "collection", "in": "query", "type": "string", "enum": ["roster", "waitingList", "signups"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Add a student straight onto the roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "No spots available or already enrolled"}
                }
            }
        },
        "/teacher/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get one student entry",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Edit a roster entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Remove a student entry",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "collection", "in": "query", "type": "string", "enum": ["roster", "waitingList", "signups"]}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/teacher/students/{id}/promote": {
            "post": {
                "tags": ["Students"],
                "summary": "Promote a queued student onto the roster",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/PromoteRequest"}}
                ],
                "responses": {
                    "204": {"description": "Promoted"},
                    "404": {"description": "Not found in source queue"},
                    "409": {"description": "No spots available"}
                }
            }
        },
        "/teacher/students/{id}/move": {
            "post": {
                "tags": ["Students"],
                "summary": "Move a student between queues",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveRequest"}}
                ],
                "responses": {
                    "204": {"description": "Moved"},
                    "409": {"description": "Waiting list full"}
                }
            }
        },
        "/teacher/suggest-time": {
            "post": {
                "tags": ["Availability"],
                "summary": "First available start time on a day",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SuggestTimeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "No slot fits"}
                }
            }
        },
        "/teacher/working-hours": {
            "get": {
                "tags": ["WorkingHours"],
                "summary": "List working hours",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["WorkingHours"],
                "summary": "Set working hours for a day",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/WorkingHoursPayload"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/working-hours/{id}": {
            "delete": {
                "tags": ["WorkingHours"],
                "summary": "Delete working hours for a day",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/teacher/configuration": {
            "get": {
                "tags": ["Configuration"],
                "summary": "List configuration entries",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Configuration"],
                "summary": "Update one configuration key",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateConfigurationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/schedule/exports": {
            "post": {
                "tags": ["Schedule"],
                "summary": "Request a weekly schedule export",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teacher/schedule/exports/{id}": {
            "get": {
                "tags": ["Schedule"],
                "summary": "Check an export's status",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "id", "in": "path", "type": "string", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "StudentPayload": {
            "type": "object",
            "required": ["studentName", "phoneNumber", "emailAddress", "age", "lessonDay", "lessonTime", "duration", "skillLevel", "startDate"],
            "properties": {
                "studentName": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "emailAddress": {"type": "string"},
                "age": {"type": "integer"},
                "lessonDay": {"type": "string"},
                "lessonTime": {"type": "string"},
                "duration": {"type": "string"},
                "skillLevel": {"type": "string"},
                "startDate": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "studentName": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "age": {"type": "integer"},
                "lessonDay": {"type": "string"},
                "lessonTime": {"type": "string"},
                "duration": {"type": "string"},
                "skillLevel": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "WaitingListPositionRequest": {
            "type": "object",
            "required": ["emailAddress"],
            "properties": {
                "emailAddress": {"type": "string"}
            }
        },
        "PromoteRequest": {
            "type": "object",
            "required": ["from"],
            "properties": {
                "from": {"type": "string", "enum": ["waitingList", "signups"]}
            }
        },
        "MoveRequest": {
            "type": "object",
            "required": ["from", "to"],
            "properties": {
                "from": {"type": "string", "enum": ["waitingList", "signups"]},
                "to": {"type": "string", "enum": ["waitingList", "signups"]}
            }
        },
        "SuggestTimeRequest": {
            "type": "object",
            "required": ["dayOfWeek", "duration"],
            "properties": {
                "dayOfWeek": {"type": "string"},
                "duration": {"type": "string"}
            }
        },
        "WorkingHoursPayload": {
            "type": "object",
            "required": ["dayOfWeek", "startTime", "endTime"],
            "properties": {
                "dayOfWeek": {"type": "string"},
                "startTime": {"type": "string"},
                "endTime": {"type": "string"}
            }
        },
        "UpdateConfigurationRequest": {
            "type": "object",
            "required": ["key", "value", "type"],
            "properties": {
                "key": {"type": "string"},
                "value": {"type": "string"},
                "type": {"type": "string", "enum": ["number", "decimal", "string"]}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "ExportRequest": {
            "type": "object",
            "required": ["format"],
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]}
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
