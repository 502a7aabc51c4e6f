// Package docs holds the Swagger description of the DriveHub API.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a customer account",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/auth.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "User exists", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign in",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/auth.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "401": {"description": "Invalid Credentials (plain text)"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/api/cars/available": {
            "get": {
                "tags": ["cars"],
                "summary": "List available cars",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}
            }
        },
        "/api/cars/filter": {
            "get": {
                "tags": ["cars"],
                "summary": "Filter available cars",
                "parameters": [
                    {"type": "string", "name": "carType", "in": "query"},
                    {"type": "string", "name": "transmission", "in": "query"},
                    {"type": "string", "name": "fuelType", "in": "query"},
                    {"type": "number", "name": "minPrice", "in": "query"},
                    {"type": "number", "name": "maxPrice", "in": "query"},
                    {"type": "integer", "name": "seatingCapacity", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}}
            }
        },
        "/api/cars/{id}/book": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["cars"],
                "summary": "Reserve an available car",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}, "409": {"description": "Car unavailable"}}
            }
        },
        "/api/forms/book": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Submit a booking",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/bookings.SubmitBookingRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}, "409": {"description": "Car unavailable"}}
            }
        },
        "/api/forms/user/{email}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["bookings"],
                "summary": "Booking history for an email",
                "parameters": [{"type": "string", "name": "email", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}
            }
        },
        "/api/orders/{id}/approve": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Approve a pending order",
                "parameters": [
                    {"type": "integer", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "body", "schema": {"$ref": "#/definitions/orders.DecisionRequest"}}
                ],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Invalid status transition"}}
            }
        },
        "/api/orders/statistics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Order statistics",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "auth.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "auth.RegisterRequest": {
            "type": "object",
            "required": ["username", "email", "password"],
            "properties": {"username": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}
        },
        "bookings.SubmitBookingRequest": {
            "type": "object",
            "required": ["carId", "fullName", "email", "phoneNumber", "pickupLocation", "pickupDateTime", "returnDateTime"],
            "properties": {
                "carId": {"type": "integer"},
                "fullName": {"type": "string"},
                "email": {"type": "string"},
                "phoneNumber": {"type": "string"},
                "pickupLocation": {"type": "string"},
                "dropoffLocation": {"type": "string"},
                "pickupDateTime": {"type": "string", "example": "2024-01-15T10:00:00"},
                "returnDateTime": {"type": "string", "example": "2024-01-17T09:00:00"},
                "carType": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "orders.DecisionRequest": {
            "type": "object",
            "properties": {"adminNotes": {"type": "string"}}
        },
        "response.StandardApiResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "status_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "status_code": {"type": "integer"},
                "message": {"type": "string"},
                "errorCode": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "fieldErrors": {"type": "object", "additionalProperties": {"type": "string"}},
                "timestamp": {"type": "string"}
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
	Title:            "DriveHub API",
	Description:      "Car rental storefront backend: authentication, fleet, bookings and order management.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
