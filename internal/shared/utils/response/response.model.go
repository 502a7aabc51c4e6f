package response

import "time"

type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status code
	Message    string      `json:"message"`          // Human-readable message
	Data       interface{} `json:"data,omitempty"`   // Payload for success
	Errors     interface{} `json:"errors,omitempty"` // Extra error context
}

// ErrorResponse is the body of every failed request. Validation failures
// leave Message empty and report through FieldErrors.
type ErrorResponse struct {
	Status      string            `json:"status"`
	StatusCode  int               `json:"status_code"`
	Message     string            `json:"message,omitempty"`
	ErrorCode   string            `json:"errorCode,omitempty"`
	Details     map[string]string `json:"details,omitempty"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}
