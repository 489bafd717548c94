// Package docs registers the OpenAPI description served at /swagger-doc.json.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}}
            }
        },
        "/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"description": "Credentials", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.LoginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            }
        },
        "/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Logout",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            }
        },
        "/tasks": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "List the caller's tasks, newest first",
                "parameters": [{"type": "string", "description": "Pendente, Concluída or Todas", "name": "status", "in": "query"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.TaskResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Create a task",
                "parameters": [{"description": "Task body", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTaskRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.TaskEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            }
        },
        "/tasks/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Update a task",
                "parameters": [
                    {"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true},
                    {"description": "Partial update", "name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTaskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TaskEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Delete a task",
                "parameters": [{"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            }
        },
        "/tasks/{id}/complete": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["tasks"],
                "summary": "Mark a task as completed",
                "parameters": [{"type": "integer", "description": "Task ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TaskEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.MessageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.MessageResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "dto.UserResponse": {
            "type": "object",
            "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "email": {"type": "string"}}
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {"token": {"type": "string"}, "user": {"$ref": "#/definitions/dto.UserResponse"}, "message": {"type": "string"}}
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "dto.CreateTaskRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "dueDate": {"type": "string"}}
        },
        "dto.UpdateTaskRequest": {
            "type": "object",
            "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "dueDate": {"type": "string"}, "status": {"type": "string", "enum": ["Pendente", "Concluída"]}}
        },
        "dto.TaskResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "userId": {"type": "integer"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "dueDate": {"type": "string"},
                "status": {"type": "string"},
                "createdAt": {"type": "string"}
            }
        },
        "dto.TaskEnvelope": {
            "type": "object",
            "properties": {"message": {"type": "string"}, "task": {"$ref": "#/definitions/dto.TaskResponse"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3000",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "TaskManager API",
	Description:      "Personal task tracking with bearer sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
