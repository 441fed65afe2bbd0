// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.authResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.errorBody"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/handler.errorBody"}}
                }
            }
        },
        "/api/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/user": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.userResponse"}}}
            }
        },
        "/api/change-password": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Change password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.changePasswordRequest"}}],
                "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/api/reports": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "List reports",
                "parameters": [
                    {"type": "string", "in": "query", "name": "dateFrom"},
                    {"type": "string", "in": "query", "name": "dateTo"},
                    {"type": "string", "in": "query", "name": "outcome", "enum": ["profit", "loss"]},
                    {"type": "string", "in": "query", "name": "search"},
                    {"type": "string", "in": "query", "name": "sortBy", "enum": ["date", "profit", "revenue"]},
                    {"type": "string", "in": "query", "name": "order", "enum": ["asc", "desc"]}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reportListResponse"}}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Create a report",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.reportRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.reportResponse"}}}
            }
        },
        "/api/reports/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Get a report",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reportResponse"}}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Update a report",
                "parameters": [
                    {"type": "string", "in": "path", "name": "id", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.reportRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reportResponse"}}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "Delete a report",
                "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/reports/date/{date}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["reports"],
                "summary": "List reports of one day",
                "parameters": [{"type": "string", "in": "path", "name": "date", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.reportListResponse"}}}
            }
        },
        "/api/reports/bulk-restore": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["backup"],
                "summary": "Restore reports from a backup",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/reports/export": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["backup"], "summary": "Export readable reports", "responses": {"200": {"description": "OK"}}}
        },
        "/api/backup": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["backup"], "summary": "Full backup", "responses": {"200": {"description": "OK"}}}
        },
        "/api/analytics/summary": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["analytics"], "summary": "Analytics summary", "responses": {"200": {"description": "OK"}}}
        },
        "/api/analytics/compare": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["analytics"],
                "summary": "Compare two reports",
                "parameters": [
                    {"type": "string", "in": "query", "name": "a", "required": true},
                    {"type": "string", "in": "query", "name": "b", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/goals": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "List goals", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Create a goal", "responses": {"201": {"description": "Created"}}}
        },
        "/api/goals/{id}": {
            "delete": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Delete a goal", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/goals/progress": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["goals"], "summary": "Goal progress", "responses": {"200": {"description": "OK"}}}
        },
        "/api/tools/goal-seek": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tools"],
                "summary": "Goal seek",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.goalSeekRequest"}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/users": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Create a user", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/api/users/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update a user", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete a user", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/roles": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["roles"], "summary": "List roles", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["roles"], "summary": "Create a custom role", "responses": {"201": {"description": "Created"}}}
        },
        "/api/roles/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["roles"], "summary": "Get a custom role", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["roles"], "summary": "Update a custom role", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["roles"], "summary": "Delete a custom role", "parameters": [{"type": "string", "in": "path", "name": "id", "required": true}], "responses": {"204": {"description": "No Content"}}}
        },
        "/api/roles/{name}/permissions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["roles"], "summary": "Resolve a role's permissions", "parameters": [{"type": "string", "in": "path", "name": "name", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/activity-logs": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["activity"],
                "summary": "List activity logs",
                "parameters": [
                    {"type": "integer", "in": "query", "name": "limit"},
                    {"type": "string", "in": "query", "name": "userId"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness probe", "responses": {"200": {"description": "OK"}}}
        },
        "/health/ready": {
            "get": {"tags": ["health"], "summary": "Readiness probe", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        }
    },
    "definitions": {
        "handler.errorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "array", "items": {"type": "string"}}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.changePasswordRequest": {
            "type": "object",
            "properties": {"currentPassword": {"type": "string"}, "newPassword": {"type": "string"}}
        },
        "handler.userResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "username": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "roleKind": {"type": "string"},
                "permissions": {"type": "object", "additionalProperties": {"type": "boolean"}},
                "isAdmin": {"type": "boolean"},
                "isManager": {"type": "boolean"}
            }
        },
        "handler.authResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/handler.userResponse"}}
        },
        "handler.lineItemRequest": {
            "type": "object",
            "properties": {"id": {"type": "string"}, "name": {"type": "string"}, "amount": {"type": "string", "example": "150.00"}}
        },
        "handler.reportRequest": {
            "type": "object",
            "properties": {
                "date": {"type": "string", "example": "2024-03-10"},
                "services": {"type": "array", "items": {"$ref": "#/definitions/handler.lineItemRequest"}},
                "expenses": {"type": "array", "items": {"$ref": "#/definitions/handler.lineItemRequest"}},
                "onlinePayment": {"type": "string"},
                "cashPayment": {"type": "string"}
            }
        },
        "handler.reportResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "date": {"type": "string"},
                "services": {"type": "array", "items": {"$ref": "#/definitions/handler.lineItemRequest"}},
                "expenses": {"type": "array", "items": {"$ref": "#/definitions/handler.lineItemRequest"}},
                "totalServices": {"type": "string"},
                "totalExpenses": {"type": "string"},
                "netProfit": {"type": "string"},
                "onlinePayment": {"type": "string"},
                "cashPayment": {"type": "string"},
                "createdBy": {"type": "string"},
                "createdByUsername": {"type": "string"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "handler.reportListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/handler.reportResponse"}},
                "total": {"type": "integer"}
            }
        },
        "handler.goalSeekRequest": {
            "type": "object",
            "properties": {
                "formula": {"type": "string", "example": "x * 25 - 300"},
                "variable": {"type": "string", "example": "x"},
                "target": {"type": "number"},
                "base": {"type": "number"},
                "op": {"type": "string", "example": "*"},
                "goal": {"type": "number"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Daily Report API",
	Description:      "Daily revenue and expense reports with role-based access.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
