// Package docs registers the OpenAPI document served under /v1/swagger.
// Regenerate with: swag init -g cmd/api/main.go
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
            "get": {"tags": ["system"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/auth/register/patient": {
            "post": {"tags": ["auth"], "summary": "Patient sign-up", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/register/dietitian": {
            "post": {"tags": ["auth"], "summary": "Dietitian sign-up", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}
        },
        "/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "403": {"description": "Forbidden"}}}
        },
        "/auth/me": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/auth/logout": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Logout", "responses": {"200": {"description": "OK"}}}
        },
        "/navigation/decide": {
            "get": {"tags": ["navigation"], "summary": "Decide a navigation attempt", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/navigation/screens": {
            "get": {"tags": ["navigation"], "summary": "List client screens", "responses": {"200": {"description": "OK"}}}
        },
        "/session/stream": {
            "get": {"security": [{"BearerAuth": []}], "produces": ["text/event-stream"], "tags": ["navigation"], "summary": "Session stream", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/foods": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["foods"], "summary": "Search the food database", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/foods/categories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["foods"], "summary": "Food categories with counts", "responses": {"200": {"description": "OK"}}}
        },
        "/patient/assessment/classify": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["assessment"], "summary": "Classify constitution answers", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/patient/assessment": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["assessment"], "summary": "Get the stored assessment", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["assessment"], "summary": "Submit the assessment", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["assessment"], "summary": "Retake the assessment", "responses": {"200": {"description": "OK"}}}
        },
        "/patient/plan": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["assessment"], "summary": "Diet plan preview", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/dietitian/onboarding": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["onboarding"], "summary": "Complete onboarding", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/dietitian/onboarding/status": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["onboarding"], "summary": "Get onboarding status", "responses": {"200": {"description": "OK"}}}
        },
        "/dietitian/patients": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["onboarding"], "summary": "List patients", "responses": {"200": {"description": "OK"}}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "AyurDiet Backend API",
	Description:      "Auth proxy, role-gated navigation and the patient and dietitian flows of AyurDiet.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
