// Package docs holds the OpenAPI description served at /swagger.
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
        "/todos": {
            "get": {
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "List todos",
                "parameters": [
                    {"type": "integer", "description": "Page number (1-based)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size (default: 10, max: 100)", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}}}
            }
        },
        "/todos/events": {
            "get": {
                "produces": ["text/event-stream"],
                "tags": ["todos"],
                "summary": "Stream collection changes",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/todos.Todo"}}}}
            }
        },
        "/todos/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Get a todo by ID",
                "parameters": [{"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Delete a todo",
                "parameters": [{"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}}}
            }
        },
        "/todos/{id}/image": {
            "get": {
                "produces": ["image/png", "image/jpeg", "image/gif", "image/webp"],
                "tags": ["todos"],
                "summary": "Get a todo's image",
                "parameters": [{"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "file"}}}
            }
        },
        "/todos/{id}/status": {
            "patch": {
                "produces": ["application/json"],
                "tags": ["todos"],
                "summary": "Toggle completion",
                "parameters": [{"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}}}
            }
        },
        "/form": {
            "get": {
                "produces": ["application/json"],
                "tags": ["form"],
                "summary": "Get the form state",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}}}
            },
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["form"],
                "summary": "Submit the form",
                "parameters": [
                    {"type": "string", "description": "Title", "name": "title", "in": "formData", "required": true},
                    {"type": "string", "description": "Description", "name": "description", "in": "formData", "required": true},
                    {"type": "string", "description": "End date (YYYY-MM-DD)", "name": "endDate", "in": "formData", "required": true},
                    {"type": "file", "description": "Image (required when creating)", "name": "image", "in": "formData"}
                ],
                "responses": {
                    "200": {"description": "Updated", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "201": {"description": "Added", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/form/edit": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["form"],
                "summary": "Reset the form",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}}}
            }
        },
        "/form/edit/{id}": {
            "post": {
                "produces": ["application/json"],
                "tags": ["form"],
                "summary": "Edit a todo",
                "parameters": [{"type": "integer", "description": "Todo ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/form/preview": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["form"],
                "summary": "Preview a chosen image",
                "parameters": [{"type": "file", "description": "Image", "name": "image", "in": "formData", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.SuccessResponse"}}}
            }
        }
    },
    "definitions": {
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "VALIDATION_FAILED"},
                "error": {"type": "string", "example": "Validation failed"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "response.SuccessResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "status": {"type": "string", "example": "success"}
            }
        },
        "todos.Todo": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1704067200000},
                "title": {"type": "string", "example": "Buy milk"},
                "description": {"type": "string", "example": "2%"},
                "endDate": {"type": "string", "example": "2024-01-01"},
                "image": {"type": "string", "example": "data:image/png;base64,iVBORw0KGgo="},
                "isCompleted": {"type": "boolean", "example": false}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http"},
	Title:            "Image Todo API",
	Description:      "Single-user todo list with an image per item",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
