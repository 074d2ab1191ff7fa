// Package docs registers the Swagger 2.0 document served under /swagger/.
// The template is maintained by hand next to the swag annotations on the
// content and auth handlers; keep the two in step when a route changes.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/token": {
            "post": {
                "description": "Exchanges the configured username and password for a bearer token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Issue token",
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.loginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.tokenResponse"}},
                    "400": {"description": "invalid request body", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "internal server error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/content": {
            "get": {
                "description": "Returns every item in insertion order. With page or limit the response is a paginated envelope.",
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "List content",
                "parameters": [
                    {"type": "string", "description": "Exact tag filter", "name": "tag", "in": "query"},
                    {"type": "string", "description": "Case-insensitive search in title and content", "name": "q", "in": "query"},
                    {"type": "integer", "description": "Page number (1-based)", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/content.ItemDTO"}}},
                    "400": {"description": "invalid pagination parameters", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "internal server error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Creates an item. body is accepted as an alias of content. author_id defaults to the caller.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "Create content",
                "parameters": [
                    {
                        "description": "Content item",
                        "name": "item",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/content.createRequest"}
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {"$ref": "#/definitions/content.ItemDTO"},
                        "headers": {"Location": {"type": "string", "description": "/content/{id}"}}
                    },
                    "400": {"description": "title or content missing", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "missing or malformed bearer token", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "rate limit exceeded", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "internal server error", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/content/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "Get content",
                "parameters": [
                    {"type": "integer", "description": "Content ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/content.ItemDTO"}},
                    "404": {"description": "content not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "description": "Applies only title, content (or body) and tags. Other keys are ignored.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "Update content",
                "parameters": [
                    {"type": "integer", "description": "Content ID", "name": "id", "in": "path", "required": true},
                    {
                        "description": "Fields to change",
                        "name": "item",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/content.updateRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/content.ItemDTO"}},
                    "400": {"description": "no updatable field", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "missing or malformed bearer token", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "content not found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "rate limit exceeded", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "description": "Hard delete. The id is never reused.",
                "produces": ["application/json"],
                "tags": ["content"],
                "summary": "Delete content",
                "parameters": [
                    {"type": "integer", "description": "Content ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "content deleted", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "401": {"description": "missing or malformed bearer token", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "content not found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Dependency health",
                "responses": {
                    "200": {"description": "healthy or degraded"},
                    "503": {"description": "a required dependency is unhealthy"}
                }
            }
        }
    },
    "definitions": {
        "auth.loginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string", "example": "admin"},
                "password": {"type": "string", "example": "your_password"}
            }
        },
        "auth.tokenResponse": {
            "type": "object",
            "properties": {
                "token": {"type": "string", "example": "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."},
                "expires_at": {"type": "string", "example": "2025-10-26T13:00:00Z"}
            }
        },
        "content.ItemDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer", "example": 1},
                "title": {"type": "string", "example": "Release notes"},
                "content": {"type": "string", "example": "What changed this week"},
                "author": {"type": "integer", "example": 1},
                "publication_date": {"type": "string", "x-nullable": true, "example": "2025-10-26T10:00:00Z"},
                "tags": {"type": "array", "items": {"type": "string"}, "example": ["go", "release"]}
            }
        },
        "content.createRequest": {
            "type": "object",
            "required": ["title"],
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "body": {"type": "string", "description": "alias of content"},
                "author_id": {"type": "integer"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "content.updateRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "content": {"type": "string"},
                "body": {"type": "string", "description": "alias of content"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "errorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "messageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token. Send \"Bearer {token}\" in the Authorization header.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Content Service API",
	Description:      "CRUD REST API for articles (content items).",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
