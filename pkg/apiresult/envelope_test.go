package apiresult

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type car struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestBuildCoercesNonStringMessage(t *testing.T) {
	env := Build[any](false, nil, map[string]any{"weird": "object"}, 400)

	assert.False(t, env.Success)
	assert.Equal(t, GenericErrorMessage, env.Message)
	require.NotNil(t, env.Status)
	assert.Equal(t, 400, *env.Status)
}

func TestBuildRejectsStringerAndErrorMessages(t *testing.T) {
	assert.Equal(t, GenericErrorMessage, Build[any](false, nil, errors.New("x"), 500).Message)
	assert.Equal(t, GenericErrorMessage, Build[any](true, nil, nil, 200).Message)
}

func TestBuildEmptyFailureMessage(t *testing.T) {
	env := Build[any](false, nil, "", 0)

	assert.Equal(t, GenericErrorMessage, env.Message)
	assert.Nil(t, env.Status)
}

func TestBuildSuccess(t *testing.T) {
	env := Build(true, car{ID: 1, Name: "Civic"}, "Cars loaded", 200)

	assert.True(t, env.Success)
	assert.Equal(t, "Civic", env.Data.Name)
	assert.Equal(t, "Cars loaded", env.Message)
	assert.Equal(t, 200, env.StatusCode())
	assert.NoError(t, env.Err())
}

func TestBuildFailureDropsData(t *testing.T) {
	env := Build(false, car{ID: 1}, "nope", 409)

	assert.Zero(t, env.Data)
	assert.EqualError(t, env.Err(), "nope")
}

func TestEnvelopeJSON(t *testing.T) {
	b, err := json.Marshal(Build(false, car{ID: 3}, "Car not found", 404))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"data":null,"message":"Car not found","status":404}`, string(b))

	b, err = json.Marshal(OK(car{ID: 3, Name: "Model 3"}, "ok"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":{"id":3,"name":"Model 3"},"message":"ok","status":null}`, string(b))
}

func TestFail(t *testing.T) {
	t.Run("not found with empty body", func(t *testing.T) {
		env := Fail[car](NewResponseError("GET", "/api/cars/9", 404, "application/json", nil), "Failed to load car")
		assert.Equal(t, NotFoundMessage, env.Message)
		assert.Equal(t, 404, env.StatusCode())
	})

	t.Run("network failure", func(t *testing.T) {
		env := Fail[car](NewTransportError("GET", "/api/cars", errors.New("dial tcp: refused")), "Failed to load car")
		assert.Equal(t, NetworkErrorMessage, env.Message)
		assert.Nil(t, env.Status)
	})

	t.Run("structured body", func(t *testing.T) {
		body := []byte(`{"status":"error","status_code":409,"message":"Car is not available","errorCode":"CAR_UNAVAILABLE"}`)
		env := Fail[car](NewResponseError("POST", "/api/cars/1/book", 409, "application/json", body), "Failed to book car")
		assert.Equal(t, "Car is not available", env.Message)
		assert.Equal(t, 409, env.StatusCode())
	})

	t.Run("truncated json body uses status message", func(t *testing.T) {
		body := []byte(`{"message":"Booking not found","errorCode":"BOOKING_NOT`)
		env := Fail[car](NewResponseError("GET", "/x", 500, "application/json", body), "Failed to load booking")
		assert.Equal(t, ServerErrorMessage, env.Message)
		assert.Equal(t, 500, env.StatusCode())
	})

	t.Run("raw message with broken json", func(t *testing.T) {
		assert.Equal(t, fallback, Normalize(json.RawMessage(`{"message":"x"} garbage`), fallback))
	})

	t.Run("unknown status uses fallback", func(t *testing.T) {
		env := Fail[car](NewResponseError("GET", "/x", 502, "text/html", []byte("<html></html>")), "Failed to load cars")
		assert.Equal(t, "Failed to load cars", env.Message)
		assert.Equal(t, 502, env.StatusCode())
	})

	t.Run("empty fallback is still text", func(t *testing.T) {
		env := Fail[car](nil, "")
		assert.Equal(t, GenericErrorMessage, env.Message)
	})
}

func TestText(t *testing.T) {
	assert.Equal(t, "hello", Text("hello", fallback))
	assert.Equal(t, "42", Text(42, fallback))
	assert.Equal(t, "2.5", Text(2.5, fallback))
	assert.Equal(t, "true", Text(true, fallback))
	assert.Equal(t, "", Text(nil, fallback))
	assert.Equal(t, "User not found", Text(map[string]any{"message": "User not found"}, fallback))
	assert.Equal(t, fallback, Text([]int{1, 2}, fallback))
	assert.Equal(t, fallback, Text(struct{ X int }{1}, fallback))
}
