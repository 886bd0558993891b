// Package docs registers the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Service and database health",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/api/v1/crawls": {
            "get": {
                "tags": ["crawls"],
                "summary": "List crawls (paginated)",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["crawls"],
                "summary": "Queue a crawl",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateCrawlInput"}}
                ],
                "responses": {"202": {"description": "Accepted"}, "400": {"description": "Bad Request"}, "503": {"description": "Queue full"}}
            }
        },
        "/api/v1/crawls/preview": {
            "post": {
                "tags": ["crawls"],
                "summary": "Crawl a site synchronously without storing the result",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.CreateCrawlInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "502": {"description": "Homepage unreachable or rejected"}}
            }
        },
        "/api/v1/crawls/{id}": {
            "get": {
                "tags": ["crawls"],
                "summary": "Get one crawl",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["crawls"],
                "summary": "Delete a crawl",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/crawls/{id}/start": {
            "patch": {
                "tags": ["crawls"],
                "summary": "Re-queue a crawl",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"202": {"description": "Accepted"}, "409": {"description": "Conflict"}}
            }
        },
        "/api/v1/crawls/{id}/results": {
            "get": {
                "tags": ["crawls"],
                "summary": "Crawl result: pages, enterprise signals and corpus",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/api/v1/crawls/{id}/export": {
            "get": {
                "tags": ["crawls"],
                "summary": "Download a crawl result as xlsx",
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        }
    },
    "definitions": {
        "model.CreateCrawlInput": {
            "type": "object",
            "required": ["seed"],
            "properties": {
                "seed": {"type": "string", "example": "example.com"},
                "max_pages": {"type": "integer", "minimum": 1, "maximum": 50}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "SiteInsight Crawler API",
	Description:      "Bounded, priority-driven company website crawler.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
