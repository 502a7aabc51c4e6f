package middleware

import (
	"net/http"
	"strings"

	"drivehub/internal/shared/config"
	"drivehub/internal/shared/utils/response"
	"drivehub/internal/users"
	"drivehub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys set by the auth middleware
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

// JWTAuthWithConfig creates a JWT authentication middleware with config
func JWTAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.RespondError(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authorization header is required")
			return
		}

		tokenString, ok := bearerToken(authHeader)
		if !ok {
			response.RespondError(c, http.StatusUnauthorized, response.CodeUnauthorized, "Authorization header format must be Bearer {token}")
			return
		}

		claims, ok := parseAccessToken(cfg, tokenString)
		if !ok {
			logger.GetDefault().LogAuthFailure(c.Request.Context(), "invalid or expired token", c.ClientIP())
			response.RespondError(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid or expired token")
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireRoles middleware checks if user has any of the required roles
func RequireRoles(requiredRoles ...users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextUserRole)
		if !exists {
			response.RespondError(c, http.StatusUnauthorized, response.CodeUnauthorized, "User role not found in context")
			return
		}

		userRole, _ := role.(string)
		for _, required := range requiredRoles {
			if userRole == string(required) {
				c.Next()
				return
			}
		}

		response.RespondError(c, http.StatusForbidden, response.CodeForbidden, "Insufficient permissions")
	}
}

// RequireAdmin middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(users.RoleAdmin)
}

// RequireStaff allows admins and managers
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(users.RoleAdmin, users.RoleManager)
}

// OptionalAuthWithConfig validates a JWT if present but doesn't require it
func OptionalAuthWithConfig(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if claims, ok := parseAccessToken(cfg, tokenString); ok {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// UserID returns the authenticated user's ID
func UserID(c *gin.Context) (string, bool) {
	return contextString(c, ContextUserID)
}

// UserEmail returns the authenticated user's email
func UserEmail(c *gin.Context) (string, bool) {
	return contextString(c, ContextUserEmail)
}

// UserRole returns the authenticated user's role
func UserRole(c *gin.Context) users.Role {
	role, _ := contextString(c, ContextUserRole)
	return users.Role(role)
}

func contextString(c *gin.Context, key string) (string, bool) {
	v, exists := c.Get(key)
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func parseAccessToken(cfg *config.Config, tokenString string) (jwt.MapClaims, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, false
	}
	if tokenType, ok := claims["type"]; !ok || tokenType != "access" {
		return nil, false
	}
	return claims, true
}

func setClaims(c *gin.Context, claims jwt.MapClaims) {
	c.Set(ContextUserID, claims["user_id"])
	c.Set(ContextUserEmail, claims["email"])
	c.Set(ContextUserRole, claims["role"])
}
