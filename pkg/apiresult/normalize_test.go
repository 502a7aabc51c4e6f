package apiresult

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

const fallback = "default text"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"plain string", "Invalid Credentials", "Invalid Credentials"},
		{"blank string", "   ", fallback},
		{"message", map[string]any{"message": "User not found"}, "User not found"},
		{
			"details joined",
			map[string]any{"details": map[string]any{
				"email":    "Email is required",
				"username": "Username must be at least 3 characters",
			}},
			"Email is required, Username must be at least 3 characters",
		},
		{
			"field errors",
			map[string]any{"fieldErrors": map[string]string{"email": "invalid", "password": "too short"}},
			"email: invalid; password: too short",
		},
		{"error code", map[string]any{"errorCode": "VALIDATION_ERROR"}, "Error: VALIDATION_ERROR"},
		{"empty object", map[string]any{}, fallback},
		{"nil", nil, fallback},
		{"number", 42, fallback},
		{"boolean", true, fallback},
		{"message wins over error code", map[string]any{"message": "Car is booked", "errorCode": "CAR_UNAVAILABLE"}, "Car is booked"},
		{"blank message falls through", map[string]any{"message": " ", "errorCode": "X"}, "Error: X"},
		{"non-string message ignored", map[string]any{"message": map[string]any{"nested": true}}, fallback},
		{
			"non-string details ignored",
			map[string]any{"details": map[string]any{"a": 1, "b": "kept"}},
			"kept",
		},
		{
			"empty details fall through to error code",
			map[string]any{"details": map[string]any{"a": 1}, "errorCode": "BAD"},
			"Error: BAD",
		},
		{"typed body", ErrorBody{ErrorCode: "CAR_NOT_FOUND"}, "Error: CAR_NOT_FOUND"},
		{"typed body pointer", &ErrorBody{Message: "Nope"}, "Nope"},
		{"nil typed body pointer", (*ErrorBody)(nil), fallback},
		{"go error", errors.New("disk full"), "disk full"},
		{"wrapped go error", fmt.Errorf("save: %w", errors.New("disk full")), "save: disk full"},
		{"raw json message", []byte(`{"message":"x"}`), fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input, fallback))
		})
	}
}

func TestNormalizeTransportErrors(t *testing.T) {
	urlErr := &url.Error{Op: "Get", URL: "http://localhost:1", Err: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}

	assert.Equal(t, NetworkErrorMessage, Normalize(urlErr, fallback))
	assert.Equal(t, NetworkErrorMessage, Normalize(NewTransportError("GET", "/api/cars", urlErr), fallback))
	assert.Equal(t, NetworkErrorMessage, Normalize(context.DeadlineExceeded, fallback))
	assert.Equal(t, NetworkErrorMessage, Normalize(fmt.Errorf("list cars: %w", NewTransportError("GET", "/x", nil)), fallback))
}

func TestNormalizeResponseBodies(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		want        string
	}{
		{"bare text", "Invalid Credentials", "text/plain", "Invalid Credentials"},
		{"json string literal", `"Car not found"`, "application/json", "Car not found"},
		{"structured message", `{"status":"error","message":"Booking not found","errorCode":"BOOKING_NOT_FOUND"}`, "application/json", "Booking not found"},
		{"details keep document order", `{"details":{"username":"Username is required","email":"Email is required"}}`, "application/json", "Username is required, Email is required"},
		{"field errors keep document order", `{"errorCode":"VALIDATION_ERROR","fieldErrors":{"pickupLocation":"is required","email":"must be a valid email"}}`, "application/json", "pickupLocation: is required; email: must be a valid email"},
		{"empty body", "", "application/json", fallback},
		{"whitespace body", "  \n", "text/plain", fallback},
		{"json array", `["a","b"]`, "application/json", fallback},
		{"json null", `null`, "application/json", fallback},
		{"html page", "<html><body>Bad Gateway</body></html>", "text/html; charset=utf-8", fallback},
		{"truncated json object", `{"message":"Booking not found","errorCode":"BOOKING_NOT`, "application/json", fallback},
		{"json object with trailing garbage", `{"message":"x"} garbage`, "application/json", fallback},
		{"truncated object without content type", `{"message":"Car not found"`, "", fallback},
		{"truncated array as text", `["a",`, "text/plain", fallback},
		{"garbled problem json", `not json`, "application/problem+json", fallback},
		{"plain text message", "Car is not available", "", "Car is not available"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewResponseError("POST", "/auth/login", 400, tt.contentType, []byte(tt.body))
			assert.Equal(t, tt.want, Normalize(err, fallback))
		})
	}
}

type panickyError struct{}

func (*panickyError) Error() string { panic("boom") }

func TestNormalizeRecoversFromPanics(t *testing.T) {
	assert.Equal(t, fallback, Normalize(&panickyError{}, fallback))
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []any{
		"Invalid Credentials",
		map[string]any{"errorCode": "VALIDATION_ERROR"},
		map[string]any{"fieldErrors": map[string]string{"email": "invalid"}},
		nil,
	}
	for _, in := range inputs {
		once := Normalize(in, fallback)
		assert.Equal(t, once, Normalize(once, fallback))
	}
}

func TestExtract(t *testing.T) {
	msg, ok := Extract(map[string]any{})
	assert.False(t, ok)
	assert.Empty(t, msg)

	msg, ok = Extract("hello")
	assert.True(t, ok)
	assert.Equal(t, "hello", msg)
}

func TestStatusMessage(t *testing.T) {
	assert.Equal(t, BadRequestMessage, StatusMessage(400, fallback))
	assert.Equal(t, UnauthorizedMessage, StatusMessage(401, fallback))
	assert.Equal(t, ForbiddenMessage, StatusMessage(403, fallback))
	assert.Equal(t, NotFoundMessage, StatusMessage(404, fallback))
	assert.Equal(t, ConflictMessage, StatusMessage(409, fallback))
	assert.Equal(t, ServerErrorMessage, StatusMessage(500, fallback))
	assert.Equal(t, fallback, StatusMessage(418, fallback))
	assert.Equal(t, fallback, StatusMessage(0, fallback))
}
