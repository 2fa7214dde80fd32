// Package docs registers the OpenAPI description served at /swagger.
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
        "/transactions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "List transactions",
                "parameters": [
                    {"type": "string", "name": "from_date", "in": "query"},
                    {"type": "string", "name": "to_date", "in": "query"},
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "type", "in": "query"},
                    {"type": "integer", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"}
                ],
                "responses": {"200": {"description": "Paginated transactions"}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorResponse"}}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Record a transaction",
                "parameters": [{"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTransactionRequest"}}],
                "responses": {"201": {"description": "Transaction created"}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
        },
        "/transactions/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Get transaction by ID",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Transaction details"}, "404": {"description": "Transaction not found", "schema": {"$ref": "#/definitions/ErrorResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["transactions"], "summary": "Delete transaction",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "Whether a transaction was removed", "schema": {"$ref": "#/definitions/DeletedResponse"}}}}
        },
        "/categories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["categories"], "summary": "List categories",
                "responses": {"200": {"description": "Sorted category names"}}}
        },
        "/budgets": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "List budgets",
                "responses": {"200": {"description": "Budgets ordered by category"}}}
        },
        "/budgets/{category}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Get a category budget",
                "parameters": [{"type": "string", "name": "category", "in": "path", "required": true}],
                "responses": {"200": {"description": "Monthly limit, zero when undefined"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Set a budget",
                "parameters": [
                    {"type": "string", "name": "category", "in": "path", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetBudgetRequest"}}
                ],
                "responses": {"200": {"description": "Budget saved"}, "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/ErrorResponse"}}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Delete budget",
                "parameters": [{"type": "string", "name": "category", "in": "path", "required": true}],
                "responses": {"200": {"description": "Whether a budget was removed", "schema": {"$ref": "#/definitions/DeletedResponse"}}}}
        },
        "/budgets/{category}/status": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["budgets"], "summary": "Check a category budget",
                "parameters": [{"type": "string", "name": "category", "in": "path", "required": true}],
                "responses": {"200": {"description": "Budget status"}}}
        },
        "/reports/months": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Months with activity",
                "responses": {"200": {"description": "YYYY-MM labels, oldest first"}}}
        },
        "/reports/monthly": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Monthly report",
                "parameters": [{"type": "string", "name": "month", "in": "query", "required": true}],
                "responses": {"200": {"description": "Monthly totals"}, "400": {"description": "Invalid month", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
        },
        "/reports/categories": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Category report",
                "parameters": [{"type": "string", "name": "month", "in": "query", "required": true}],
                "responses": {"200": {"description": "Rows ordered by category"}}}
        },
        "/reports/budgets": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Budget report",
                "parameters": [{"type": "string", "name": "month", "in": "query", "required": true}],
                "responses": {"200": {"description": "One row per budget"}}}
        },
        "/reports/trend": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Monthly trend",
                "parameters": [{"type": "string", "name": "year", "in": "query", "required": true}],
                "responses": {"200": {"description": "Months in chronological order"}}}
        },
        "/reports/spending-summary": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Spending summary",
                "responses": {"200": {"description": "Rows ordered by category"}}}
        },
        "/reports/alerts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["reports"], "summary": "Budget alerts",
                "parameters": [{"type": "number", "name": "threshold", "in": "query"}],
                "responses": {"200": {"description": "Alerting budgets"}}}
        },
        "/export/transactions": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["export"], "summary": "Export transactions",
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "parameters": [{"type": "string", "name": "format", "in": "query"}],
                "responses": {"200": {"description": "Export file", "schema": {"type": "file"}}}}
        }
    },
    "definitions": {
        "CreateTransactionRequest": {
            "type": "object",
            "required": ["date", "amount", "type", "category"],
            "properties": {
                "date": {"type": "string", "example": "2023-01-05"},
                "amount": {"type": "string", "example": "150.00"},
                "type": {"type": "string", "enum": ["income", "expense"]},
                "category": {"type": "string", "example": "food"},
                "description": {"type": "string"}
            }
        },
        "SetBudgetRequest": {
            "type": "object",
            "properties": {"monthly_limit": {"type": "string", "example": "500.00"}}
        },
        "DeletedResponse": {
            "type": "object",
            "properties": {"deleted": {"type": "boolean"}}
        },
        "ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Expense Tracker API",
	Description:      "Record income and expenses, set monthly category budgets and read monthly, category, budget and trend reports.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
