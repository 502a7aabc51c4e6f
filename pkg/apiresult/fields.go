package apiresult

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Field is a single key/value entry of a JSON object.
type Field struct {
	Key   string
	Value any
}

// Fields is a JSON object that keeps its document order. Error bodies are
// decoded into Fields so that joined details read in the order the server
// sent them.
type Fields []Field

// Get returns the first value stored under key.
func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// String returns the value under key when it is a string.
func (f Fields) String(key string) (string, bool) {
	v, ok := f.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (f *Fields) UnmarshalJSON(b []byte) error {
	v, err := decodeOrdered(b)
	if err != nil {
		return err
	}
	switch obj := v.(type) {
	case nil:
		*f = nil
		return nil
	case Fields:
		*f = obj
		return nil
	default:
		return fmt.Errorf("apiresult: expected JSON object, got %T", v)
	}
}

// MarshalJSON encodes the fields in their stored order.
func (f Fields) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(field.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FieldsFromMap converts a map into Fields sorted by key.
func FieldsFromMap[V any](m map[string]V) Fields {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Fields, 0, len(keys))
	for _, k := range keys {
		out = append(out, Field{Key: k, Value: m[k]})
	}
	return out
}

// ErrorBody is the structured error shape returned by the API.
type ErrorBody struct {
	Message     string `json:"message,omitempty"`
	ErrorCode   string `json:"errorCode,omitempty"`
	Details     Fields `json:"details,omitempty"`
	FieldErrors Fields `json:"fieldErrors,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

func (b ErrorBody) fields() Fields {
	out := Fields{}
	if b.Message != "" {
		out = append(out, Field{Key: "message", Value: b.Message})
	}
	if b.ErrorCode != "" {
		out = append(out, Field{Key: "errorCode", Value: b.ErrorCode})
	}
	if b.Details != nil {
		out = append(out, Field{Key: "details", Value: b.Details})
	}
	if b.FieldErrors != nil {
		out = append(out, Field{Key: "fieldErrors", Value: b.FieldErrors})
	}
	return out
}

var errTrailingData = errors.New("apiresult: trailing data after JSON value")

// decodeOrdered decodes any JSON document, turning every object into Fields.
func decodeOrdered(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errTrailingData
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := Fields{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("apiresult: invalid object key %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, Field{Key: key, Value: val})
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("apiresult: unexpected delimiter %v", delim)
	}
}
