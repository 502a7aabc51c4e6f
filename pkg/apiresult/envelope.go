package apiresult

import (
	"encoding/json"
	"errors"
	"strings"

	"drivehub/pkg/logger"
)

// Envelope is the uniform result of every storefront API call.
// Message is always text and is never empty on failure.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
	Status  *int   `json:"status"`
}

// MarshalJSON writes data as null for failed envelopes.
func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	type wire struct {
		Success bool   `json:"success"`
		Data    any    `json:"data"`
		Message string `json:"message"`
		Status  *int   `json:"status"`
	}
	w := wire{Success: e.Success, Message: e.Message, Status: e.Status}
	if e.Success {
		w.Data = e.Data
	}
	return json.Marshal(w)
}

// StatusCode returns the transport status or 0 when none was available.
func (e Envelope[T]) StatusCode() int {
	if e.Status == nil {
		return 0
	}
	return *e.Status
}

// Err returns nil for successful envelopes and the message as an error otherwise.
func (e Envelope[T]) Err() error {
	if e.Success {
		return nil
	}
	return errors.New(e.Message)
}

// Build packages an outcome. Any message that is not a string is replaced
// by GenericErrorMessage, as is an empty message on failure. A status of
// zero or less means no transport status was available.
func Build[T any](success bool, data T, message any, status int) Envelope[T] {
	text, ok := message.(string)
	if !ok {
		text = GenericErrorMessage
	}
	if !success {
		var zero T
		data = zero
		if strings.TrimSpace(text) == "" {
			text = GenericErrorMessage
		}
	}

	env := Envelope[T]{
		Success: success,
		Data:    data,
		Message: text,
	}
	if status > 0 {
		code := status
		env.Status = &code
	}

	logger.GetDefault().LogEnvelope(env.Success, env.Message, env.Status)
	return env
}

// OK builds a successful envelope.
func OK[T any](data T, message string) Envelope[T] {
	return Build(true, data, message, 0)
}

// OKWithStatus builds a successful envelope carrying the transport status.
func OKWithStatus[T any](data T, message string, status int) Envelope[T] {
	return Build(true, data, message, status)
}

// Fail converts a failure into an envelope. The message is extracted from
// err when possible, otherwise derived from the transport status, otherwise
// fallback.
func Fail[T any](err any, fallback string) Envelope[T] {
	status := StatusOf(err)
	msg, ok := Extract(err)
	if !ok {
		msg = StatusMessage(status, fallback)
	}
	var zero T
	return Build(false, zero, msg, status)
}
