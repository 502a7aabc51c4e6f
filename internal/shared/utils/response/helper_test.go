package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRespondErrorShape(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, float64(404), body["status_code"])
	assert.Equal(t, "Car not found", body["message"])
	assert.Equal(t, "CAR_NOT_FOUND", body["errorCode"])
	assert.NotEmpty(t, body["timestamp"])
	assert.NotContains(t, body, "details")
}

func TestRespondValidationErrorOmitsMessage(t *testing.T) {
	type payload struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}
	err := NewValidator().Struct(payload{Email: "nope", Password: "abc"})
	require.Error(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	RespondValidationError(c, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.NotContains(t, body, "message")
	assert.Equal(t, CodeValidation, body["errorCode"])
	assert.Equal(t, map[string]any{
		"email":    "must be a valid email",
		"password": "must be at least 6 characters",
	}, body["fieldErrors"])
}

func TestRespondValidationErrorMalformedBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondValidationError(c, &json.SyntaxError{})

	body := decode(t, w)
	assert.Equal(t, map[string]any{"body": "Request body is malformed"}, body["details"])
}

func TestRespondText(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondText(c, http.StatusUnauthorized, "Invalid Credentials")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid Credentials", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondJSON(c, "success", http.StatusCreated, "Car created successfully", gin.H{"id": 1}, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Car created successfully", body["message"])
	assert.Equal(t, map[string]any{"id": float64(1)}, body["data"])
	assert.NotContains(t, body, "errors")
}
