package apiresult

import (
	"errors"
	"fmt"
	"strings"
)

// RequestError is the failure value produced by the HTTP client layer.
// StatusCode is zero when no response was received at all.
type RequestError struct {
	Method      string
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
	Err         error
}

// NewTransportError records a failure that produced no response.
func NewTransportError(method, url string, err error) *RequestError {
	return &RequestError{Method: method, URL: url, Err: err}
}

// NewResponseError records a completed exchange with a non-2xx status.
func NewResponseError(method, url string, status int, contentType string, body []byte) *RequestError {
	return &RequestError{
		Method:      method,
		URL:         url,
		StatusCode:  status,
		ContentType: contentType,
		Body:        body,
	}
}

func (e *RequestError) Error() string {
	if !e.HasResponse() {
		if e.Err != nil {
			return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
		}
		return fmt.Sprintf("%s %s: no response", e.Method, e.URL)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// HasResponse reports whether the server answered.
func (e *RequestError) HasResponse() bool {
	return e != nil && e.StatusCode > 0
}

func (e *RequestError) isHTML() bool {
	return strings.Contains(strings.ToLower(e.ContentType), "text/html")
}

// StatusOf returns the transport status carried by err, or 0.
func StatusOf(err any) int {
	e, ok := err.(error)
	if !ok {
		return 0
	}
	var reqErr *RequestError
	if errors.As(e, &reqErr) && reqErr != nil {
		return reqErr.StatusCode
	}
	return 0
}
