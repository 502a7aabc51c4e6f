package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"

	"drivehub/internal/shared/utils/response"
	"drivehub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Middleware enforces the limit matching each route
func Middleware(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.FullPath())

		result, err := limiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			// Fail open when the limiter store is unavailable
			logger.GetDefault().WarnContext(c.Request.Context(), "rate limit check failed", "error", err)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetTime, 10))

		if !result.Allowed {
			logger.GetDefault().LogRateLimitExceeded(c.Request.Context(), clientIP, c.FullPath())
			response.RespondErrorDetails(c, http.StatusTooManyRequests, response.CodeRateLimited,
				"Rate limit exceeded", map[string]string{
					"limit":      fmt.Sprintf("%d", result.Limit),
					"reset_time": fmt.Sprintf("%d", result.ResetTime),
				})
			return
		}

		c.Next()
	}
}

func getRateLimitType(path string) RateLimitType {
	switch {
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"):
		return RateLimitTypeHealth

	case strings.Contains(path, "/admin/"),
		strings.Contains(path, "/orders"),
		strings.HasSuffix(path, "/cars/all"):
		return RateLimitTypeAdmin

	case strings.HasPrefix(path, "/auth/"):
		return RateLimitTypeAuth

	case strings.Contains(path, "/forms/"),
		strings.HasSuffix(path, "/book"):
		return RateLimitTypeBooking

	case strings.Contains(path, "/cars"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// extracts real client IP
func getClientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		ip := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	if xRealIP := c.GetHeader("X-Real-IP"); xRealIP != "" && net.ParseIP(xRealIP) != nil {
		return xRealIP
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}
