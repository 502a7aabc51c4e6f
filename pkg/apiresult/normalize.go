package apiresult

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Normalize reduces an arbitrary failure value to a human-readable string.
// It never panics and never returns a non-text value; when nothing usable
// can be found the fallback is returned unchanged.
func Normalize(err any, fallback string) (msg string) {
	defer func() {
		if r := recover(); r != nil {
			msg = fallback
		}
	}()
	if s, ok := Extract(err); ok {
		return s
	}
	return fallback
}

// Extract applies the message resolution rules without a fallback.
// The boolean is false when no message could be derived.
func Extract(err any) (msg string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			msg, ok = "", false
		}
	}()
	return extract(err)
}

func extract(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return nonBlank(x)
	case *RequestError:
		if x == nil {
			return "", false
		}
		return fromRequestError(x)
	case ErrorBody:
		return fromObject(x.fields())
	case *ErrorBody:
		if x == nil {
			return "", false
		}
		return fromObject(x.fields())
	case Fields:
		return fromObject(x)
	case map[string]any:
		return fromObject(FieldsFromMap(x))
	case map[string]string:
		return fromObject(FieldsFromMap(x))
	case json.RawMessage:
		return fromBody(x, "")
	case error:
		return fromError(x)
	default:
		return "", false
	}
}

func fromError(err error) (string, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr != nil {
		return fromRequestError(reqErr)
	}
	if isTransportError(err) {
		return NetworkErrorMessage, true
	}
	return nonBlank(err.Error())
}

func fromRequestError(e *RequestError) (string, bool) {
	if !e.HasResponse() {
		return NetworkErrorMessage, true
	}
	if e.isHTML() {
		return "", false
	}
	return fromBody(e.Body, e.ContentType)
}

// fromBody interprets a raw response body. Objects go through the field
// rules; a bare string (JSON literal or plain text) is used verbatim.
// Broken JSON is never shown.
func fromBody(body []byte, contentType string) (string, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return "", false
	}
	decoded, err := decodeOrdered(trimmed)
	if err != nil {
		if looksStructured(trimmed, contentType) {
			return "", false
		}
		return nonBlank(string(trimmed))
	}
	switch d := decoded.(type) {
	case string:
		return nonBlank(d)
	case Fields:
		return fromObject(d)
	default:
		return "", false
	}
}

func looksStructured(body []byte, contentType string) bool {
	if strings.Contains(strings.ToLower(contentType), "json") {
		return true
	}
	return body[0] == '{' || body[0] == '['
}

func fromObject(obj Fields) (string, bool) {
	if s, ok := obj.String("message"); ok {
		if msg, ok := nonBlank(s); ok {
			return msg, true
		}
	}

	if details, ok := objectValue(obj, "details"); ok {
		values := make([]string, 0, len(details))
		for _, d := range details {
			if s, ok := d.Value.(string); ok && strings.TrimSpace(s) != "" {
				values = append(values, s)
			}
		}
		if len(values) > 0 {
			return strings.Join(values, ", "), true
		}
	}

	if fieldErrors, ok := objectValue(obj, "fieldErrors"); ok {
		parts := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			if s, ok := fe.Value.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", fe.Key, s))
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; "), true
		}
	}

	if code, ok := obj.String("errorCode"); ok && strings.TrimSpace(code) != "" {
		return "Error: " + code, true
	}

	return "", false
}

func objectValue(obj Fields, key string) (Fields, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, false
	}
	switch x := v.(type) {
	case Fields:
		return x, true
	case map[string]any:
		return FieldsFromMap(x), true
	case map[string]string:
		return FieldsFromMap(x), true
	default:
		return nil, false
	}
}

func isTransportError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func nonBlank(s string) (string, bool) {
	if strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}
