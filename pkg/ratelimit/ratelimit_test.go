package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:         true,
		WindowDuration:  time.Minute,
		DefaultRequests: 100,
		PublicRequests:  3,
		AuthRequests:    2,
		BookingRequests: 5,
		AdminRequests:   10,
		HealthRequests:  50,
	}
}

func TestLocalLimiterBlocksAfterLimit(t *testing.T) {
	limiter := NewLocalLimiter(testConfig())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		res, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	res, err := limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypeAuth)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 2, res.Limit)

	// other clients and other limit types have their own buckets
	res, err = limiter.IsAllowed(ctx, "10.0.0.2", RateLimitTypeAuth)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.IsAllowed(ctx, "10.0.0.1", RateLimitTypePublic)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestLocalLimiterDisabledAndWhitelisted(t *testing.T) {
	cfg := testConfig()
	cfg.AuthRequests = 1
	cfg.WhitelistedIPs = []string{"127.0.0.1"}
	limiter := NewLocalLimiter(cfg)

	for i := 0; i < 5; i++ {
		res, err := limiter.IsAllowed(context.Background(), "127.0.0.1", RateLimitTypeAuth)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}

	cfg.Enabled = false
	for i := 0; i < 5; i++ {
		res, err := limiter.IsAllowed(context.Background(), "10.1.1.1", RateLimitTypeAuth)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	}
}

func TestNewWithoutRedisUsesLocalLimiter(t *testing.T) {
	_, ok := New(nil, testConfig()).(*LocalLimiter)
	assert.True(t, ok)
}

func TestGetRateLimitType(t *testing.T) {
	tests := map[string]RateLimitType{
		"/health":             RateLimitTypeHealth,
		"/auth/login":         RateLimitTypeAuth,
		"/api/cars/available": RateLimitTypePublic,
		"/api/cars/:id/book":  RateLimitTypeBooking,
		"/api/forms/book":     RateLimitTypeBooking,
		"/api/orders/pending": RateLimitTypeAdmin,
		"/api/admin/cars/:id/toggle-availability": RateLimitTypeAdmin,
		"/api/cars/all": RateLimitTypeAdmin,
		"/swagger/*any": RateLimitTypeDefault,
	}
	for path, want := range tests {
		assert.Equal(t, want, getRateLimitType(path), path)
	}
}

func TestMiddlewareRejectsWith429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.PublicRequests = 1

	r := gin.New()
	r.Use(Middleware(NewLocalLimiter(cfg)))
	r.GET("/api/cars/available", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/cars/available", nil))
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/cars/available", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), `"errorCode":"RATE_LIMIT_EXCEEDED"`)
}
