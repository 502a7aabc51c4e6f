package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drivehub/pkg/apiresult"
	"drivehub/pkg/logger"
	"drivehub/pkg/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	return New(Config{BaseURL: srv.URL}, store, logger.Discard()), srv
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestLoginStoresSession(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@example.com", body["email"])

		writeJSON(w, http.StatusOK, `{"status":"success","status_code":200,"message":"Login successful",
			"data":{"user":{"id":"u-1","username":"jane","email":"jane@example.com","role":"USER"},
			"access_token":"tok-1","refresh_token":"ref-1","expires_in":900}}`)
	})
	ctx := context.Background()

	env := c.Auth.Login(ctx, "jane@example.com", "secret1")
	require.True(t, env.Success)
	assert.Equal(t, "Login successful", env.Message)
	assert.Equal(t, 200, env.StatusCode())
	assert.Equal(t, "tok-1", env.Data.AccessToken)

	user, ok := c.Auth.CurrentUser(ctx)
	require.True(t, ok)
	assert.Equal(t, "jane", user.Username)
	assert.Equal(t, "tok-1", c.Session().Token(ctx))
}

func TestLoginBareTextFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "Invalid Credentials")
	})

	env := c.Auth.Login(context.Background(), "jane@example.com", "wrong")
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid Credentials", env.Message)
	assert.Equal(t, 401, env.StatusCode())
	assert.False(t, c.Auth.IsAuthenticated(context.Background()))
}

func TestValidationErrorBecomesFieldErrorText(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"status":"error","status_code":400,"errorCode":"VALIDATION_ERROR",
			"fieldErrors":{"email":"must be a valid email","password":"is required"},"timestamp":"2024-01-01T00:00:00Z"}`)
	})

	env := c.Auth.Signup(context.Background(), "jane", "nope", "")
	assert.False(t, env.Success)
	assert.Equal(t, "email: must be a valid email; password: is required", env.Message)
	assert.Equal(t, 400, env.StatusCode())
}

func TestClosedServerGivesNetworkMessage(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	c := New(Config{BaseURL: url}, store, logger.Discard())

	env := c.Cars.ListAvailable(context.Background())
	assert.False(t, env.Success)
	assert.Equal(t, apiresult.NetworkErrorMessage, env.Message)
	assert.Nil(t, env.Status)
	assert.Nil(t, env.Data)
}

func TestEmptyErrorBodyUsesStatusMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	env := c.Cars.Get(context.Background(), 42)
	assert.False(t, env.Success)
	assert.Equal(t, apiresult.NotFoundMessage, env.Message)
	assert.Equal(t, 404, env.StatusCode())
}

func TestUndecodableSuccessKeepsStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"message":"ok","data":[`)
	})

	env := c.Cars.ListAvailable(context.Background())
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to load cars", env.Message)
	require.NotNil(t, env.Status)
	assert.Equal(t, 200, env.StatusCode())
}

func TestMeLogsWhenUserCannotBeStored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"message":"Profile loaded","data":{"id":"u-1","username":"jane","email":"jane@example.com","role":"USER"}}`)
	}))
	t.Cleanup(srv.Close)

	// a regular file where the session directory should be makes every write fail
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))
	store := session.NewFileStore(filepath.Join(blocker, "session.json"))

	var logs bytes.Buffer
	c := New(Config{BaseURL: srv.URL}, store, logger.NewWithWriter(&logs, "warn"))

	env := c.Auth.Me(context.Background())
	require.True(t, env.Success)
	assert.Equal(t, "jane", env.Data.Username)
	assert.Contains(t, logs.String(), "Failed to persist user")
}

func TestUnauthorizedClearsSession(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusUnauthorized, `{"status":"error","status_code":401,"errorCode":"UNAUTHORIZED","message":"Invalid or expired token"}`)
	})
	ctx := context.Background()
	require.NoError(t, c.Session().Save(ctx, session.User{ID: "u-1", Email: "jane@example.com"}, "stale"))

	env := c.Bookings.Recent(ctx)
	assert.False(t, env.Success)
	assert.Equal(t, "Invalid or expired token", env.Message)
	assert.False(t, c.Auth.IsAuthenticated(ctx))
	assert.Equal(t, "", c.Session().Token(ctx))
}

func TestFilterBuildsQuery(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cars/filter", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "SUV", q.Get("carType"))
		assert.Equal(t, "50", q.Get("minPrice"))
		assert.Equal(t, "", q.Get("maxPrice"))
		assert.Equal(t, "5", q.Get("seatingCapacity"))
		writeJSON(w, http.StatusOK, `{"status":"success","status_code":200,"message":"Cars filtered successfully",
			"data":[{"id":2,"make":"Toyota","model":"RAV4","carType":"SUV","pricePerDay":70,"available":true}]}`)
	})
	minPrice := 50.0
	seats := 5

	env := c.Cars.Filter(context.Background(), CarFilter{CarType: "SUV", MinPrice: &minPrice, SeatingCapacity: &seats})
	require.True(t, env.Success)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "RAV4", env.Data[0].Model)
}

func TestOrderDecisionSendsNotes(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/orders/7/reject", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "No licence on file", body["adminNotes"])
		writeJSON(w, http.StatusConflict, `{"status":"error","status_code":409,"errorCode":"INVALID_STATUS_TRANSITION"}`)
	})

	env := c.Admin.RejectOrder(context.Background(), 7, "  No licence on file ")
	assert.False(t, env.Success)
	assert.Equal(t, "Error: INVALID_STATUS_TRANSITION", env.Message)
	assert.Equal(t, 409, env.StatusCode())
}

func TestUploadCarImageSendsMultipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/cars/3/image", r.URL.Path)
		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "png-bytes", string(data))
		assert.Equal(t, "image/png", header.Header.Get("Content-Type"))
		assert.Equal(t, "car.png", header.Filename)
		writeJSON(w, http.StatusOK, `{"status":"success","status_code":200,"message":"Car image uploaded successfully","data":{"id":3,"imageUrl":"http://img/cars/3/x.png"}}`)
	})

	env := c.Admin.UploadCarImage(context.Background(), 3, "/tmp/car.png", strings.NewReader("png-bytes"))
	require.True(t, env.Success)
	assert.Equal(t, "http://img/cars/3/x.png", env.Data.ImageURL)
}

func TestLogoutAlwaysClearsSession(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	ctx := context.Background()
	require.NoError(t, c.Session().Save(ctx, session.User{ID: "u-1", Email: "jane@example.com"}, "tok"))

	env := c.Auth.Logout(ctx)
	assert.True(t, env.Success)
	assert.False(t, c.Auth.IsAuthenticated(ctx))
}

func TestGenericAPIReturnsRawData(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cars/statistics", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"status":"success","status_code":200,"message":"ok","data":{"totalCars":3}}`)
	})

	env := c.API.Get(context.Background(), "api/cars/statistics")
	require.True(t, env.Success)
	assert.JSONEq(t, `{"totalCars":3}`, string(env.Data))
}
