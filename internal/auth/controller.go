package auth

import (
	"errors"
	"net/http"

	"drivehub/internal/shared/middleware"
	"drivehub/internal/shared/utils/response"
	"drivehub/internal/users"
	"drivehub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Login failures keep the legacy bare-text body
const invalidCredentialsText = "Invalid Credentials"

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: response.NewValidator(),
	}
}

func (c *Controller) Register(ctx *gin.Context) {
	c.register(ctx, users.RoleUser)
}

func (c *Controller) RegisterAdmin(ctx *gin.Context) {
	c.register(ctx, users.RoleAdmin)
}

func (c *Controller) RegisterManager(ctx *gin.Context) {
	c.register(ctx, users.RoleManager)
}

func (c *Controller) register(ctx *gin.Context, role users.Role) {
	var req RegisterRequest
	if !c.bind(ctx, &req) {
		return
	}

	resp, err := c.service.Register(ctx.Request.Context(), &req, role)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserAlreadyExists):
			response.RespondError(ctx, http.StatusConflict, "USER_EXISTS", "User with this email already exists")
		default:
			logger.GetDefault().LogHTTPError(ctx, err, http.StatusInternalServerError)
			response.RespondError(ctx, http.StatusInternalServerError, response.CodeInternal, "Failed to register user")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "User registered successfully", resp, nil)
}

func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if !c.bind(ctx, &req) {
		return
	}

	resp, err := c.service.Login(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			logger.GetDefault().LogAuthFailure(ctx.Request.Context(), "invalid credentials", ctx.ClientIP())
			response.RespondText(ctx, http.StatusUnauthorized, invalidCredentialsText)
		default:
			logger.GetDefault().LogHTTPError(ctx, err, http.StatusInternalServerError)
			response.RespondError(ctx, http.StatusInternalServerError, response.CodeInternal, "Failed to login")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", resp, nil)
}

func (c *Controller) RefreshToken(ctx *gin.Context) {
	var req RefreshTokenRequest
	if !c.bind(ctx, &req) {
		return
	}

	tokenPair, err := c.service.RefreshToken(ctx.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrTokenExpired):
			response.RespondError(ctx, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid or expired refresh token")
		case errors.Is(err, ErrUserNotFound):
			response.RespondError(ctx, http.StatusUnauthorized, response.CodeUnauthorized, "User not found")
		default:
			response.RespondError(ctx, http.StatusInternalServerError, response.CodeInternal, "Failed to refresh token")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Token refreshed successfully", tokenPair, nil)
}

// Logout is stateless; clients drop their tokens
func (c *Controller) Logout(ctx *gin.Context) {
	var req LogoutRequest
	_ = ctx.ShouldBindJSON(&req) // Optional body

	response.RespondJSON(ctx, "success", http.StatusOK, "Logged out successfully", nil, nil)
}

func (c *Controller) ChangePassword(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, response.CodeUnauthorized, "User not authenticated")
		return
	}

	var req ChangePasswordRequest
	if !c.bind(ctx, &req) {
		return
	}

	err := c.service.ChangePassword(ctx.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.RespondError(ctx, http.StatusUnauthorized, response.CodeUnauthorized, "Current password is incorrect")
		case errors.Is(err, ErrUserNotFound):
			response.RespondError(ctx, http.StatusNotFound, response.CodeNotFound, "User not found")
		default:
			response.RespondError(ctx, http.StatusInternalServerError, response.CodeInternal, "Failed to change password")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Password changed successfully", nil, nil)
}

func (c *Controller) GetMe(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, response.CodeUnauthorized, "User not authenticated")
		return
	}

	user, err := c.service.Me(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.RespondError(ctx, http.StatusNotFound, response.CodeNotFound, "User not found")
			return
		}
		response.RespondError(ctx, http.StatusInternalServerError, response.CodeInternal, "Failed to load user")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "User data retrieved successfully", user, nil)
}

// bind decodes and validates the body, answering with fieldErrors on failure
func (c *Controller) bind(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RespondValidationError(ctx, err)
		return false
	}
	if err := c.validator.Struct(req); err != nil {
		response.RespondValidationError(ctx, err)
		return false
	}
	return true
}
