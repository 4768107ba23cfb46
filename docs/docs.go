// Package docs holds the OpenAPI document served under /swagger.
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
        "/notams": {
            "get": {
                "produces": ["application/json"],
                "tags": ["notams"],
                "summary": "List NOTAMs",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive airport name filter", "name": "airport", "in": "query"},
                    {"type": "integer", "description": "Page number, enables pagination", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size: 5, 10, 20, 50 or 100", "name": "per_page", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/notams/edit": {
            "get": {
                "produces": ["application/json"],
                "tags": ["notams"],
                "summary": "Get a NOTAM for editing",
                "parameters": [{"type": "integer", "description": "NOTAM ID", "name": "id", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "302": {"description": "Found"},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/notams/{id}": {
            "put": {
                "consumes": ["application/json", "application/x-www-form-urlencoded"],
                "produces": ["application/json"],
                "tags": ["notams"],
                "summary": "Update a NOTAM message",
                "parameters": [
                    {"type": "integer", "description": "NOTAM ID", "name": "id", "in": "path", "required": true},
                    {"description": "New message", "name": "notam", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.UpdateNotamRequest"}}
                ],
                "responses": {
                    "303": {"description": "See Other"},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": true}},
                    "422": {"description": "Unprocessable Entity", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/notams/generate-batch": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["notams"],
                "summary": "Generate NOTAMs from weather",
                "parameters": [{"description": "Airports", "name": "airports", "in": "body", "required": true, "schema": {"$ref": "#/definitions/model.GenerateBatchRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.BatchResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/scheduler/start": {
            "post": {
                "produces": ["application/json"],
                "tags": ["scheduler"],
                "summary": "Start the NOTAM scheduler",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "409": {"description": "Conflict", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/scheduler/stop": {
            "post": {
                "produces": ["application/json"],
                "tags": ["scheduler"],
                "summary": "Stop the NOTAM scheduler",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/api/scheduler/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["scheduler"],
                "summary": "Scheduler status",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        }
    },
    "definitions": {
        "model.UpdateNotamRequest": {
            "type": "object",
            "required": ["message"],
            "properties": {"message": {"type": "string", "maxLength": 1000}}
        },
        "model.AirportDescriptor": {
            "type": "object",
            "required": ["city", "iata_code"],
            "properties": {
                "city": {"type": "string"},
                "country_code": {"type": "string"},
                "iata_code": {"type": "string", "minLength": 3, "maxLength": 3}
            }
        },
        "model.GenerateBatchRequest": {
            "type": "object",
            "properties": {"airports": {"type": "array", "items": {"$ref": "#/definitions/model.AirportDescriptor"}}}
        },
        "model.BatchResult": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"type": "string"}},
                "failed": {"type": "integer"},
                "generated": {"type": "integer"},
                "message": {"type": "string"},
                "skipped": {"type": "integer"},
                "success": {"type": "boolean"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "NOTAM Admin API",
	Description:      "API for listing, editing and weather-driven generation of NOTAMs",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
