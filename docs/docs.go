// Package docs registers the swagger document served under /swagger.
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
            "get": {"tags": ["Health"], "summary": "Health check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/api/catalog/questions": {
            "get": {
                "tags": ["Catalog"], "summary": "List algorithm questions", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "easy, medium or hard", "name": "difficulty", "in": "query"},
                    {"type": "string", "description": "fuzzy title search", "name": "q", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/api/catalog/scenarios": {
            "get": {"tags": ["Catalog"], "summary": "List system design scenarios", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/api/catalog/personas": {
            "get": {"tags": ["Catalog"], "summary": "List workplace scenarios", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/api/algorithm/start": {
            "post": {
                "tags": ["Algorithm"], "summary": "Start algorithm interview", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"description": "difficulty", "name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"difficulty": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "502": {"description": "Bad Gateway"}}
            }
        },
        "/v1/api/algorithm/{id}/answer": {
            "post": {
                "tags": ["Algorithm"], "summary": "Submit algorithm answer", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true},
                    {"description": "answer", "name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"content": {"type": "string"}, "code": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/v1/api/algorithm/{id}/end": {
            "post": {
                "tags": ["Algorithm"], "summary": "End algorithm interview", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/api/system-design/start": {
            "post": {
                "tags": ["SystemDesign"], "summary": "Start system design interview", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"description": "scenario", "name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"scenarioId": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/api/system-design/{id}/discuss": {
            "post": {
                "tags": ["SystemDesign"], "summary": "Submit system design discussion", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true},
                    {"description": "message", "name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"content": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/api/system-design/{id}/end": {
            "post": {
                "tags": ["SystemDesign"], "summary": "End system design interview", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/api/workplace/start": {
            "post": {
                "tags": ["Workplace"], "summary": "Start workplace role-play", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"description": "scenario", "name": "body", "in": "body", "required": true, "schema": {"type": "object", "properties": {"scenario": {"type": "string"}}}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/api/workplace/{id}/end": {
            "post": {
                "tags": ["Workplace"], "summary": "End workplace role-play", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/v1/api/sessions/{id}": {
            "get": {
                "tags": ["Sessions"], "summary": "Get live session", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}
            }
        },
        "/v1/api/history": {
            "get": {
                "tags": ["History"], "summary": "List archived sessions", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "algorithm, system_design or workplace", "name": "type", "in": "query"},
                    {"type": "integer", "name": "skip", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}
            }
        },
        "/v1/api/history/{id}": {
            "get": {
                "tags": ["History"], "summary": "Get archived session", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["History"], "summary": "Delete archived session", "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "caller id", "name": "X-User-ID", "in": "header", "required": true},
                    {"type": "string", "description": "session id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/webhook/line": {
            "post": {
                "tags": ["LINE"], "summary": "LINE Webhook", "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "LINE signature", "name": "X-Line-Signature", "in": "header", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:9089",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "TalkPro APIs",
	Description:      "Interview practice backend: algorithm, system design and workplace sessions.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
