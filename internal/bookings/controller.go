package bookings

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"drivehub/internal/cars"
	"drivehub/internal/shared/middleware"
	"drivehub/internal/shared/utils/response"
	"drivehub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

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

// SubmitBooking handles POST /api/forms/book
func (ctrl *Controller) SubmitBooking(c *gin.Context) {
	var req SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	userID, _ := middleware.UserID(c)
	booking, err := ctrl.service.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		ctrl.respondError(c, err, "Failed to submit booking")
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Booking submitted successfully", booking, nil)
}

// GetRecentBookings handles GET /api/forms/recent
func (ctrl *Controller) GetRecentBookings(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultRecentLimit)))
	if err != nil || limit <= 0 {
		limit = DefaultRecentLimit
	}

	list, err := ctrl.service.Recent(c.Request.Context(), limit)
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve recent bookings")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Recent bookings retrieved successfully", list, nil)
}

// GetUserBookings handles GET /api/forms/user/:email
func (ctrl *Controller) GetUserBookings(c *gin.Context) {
	email := strings.TrimSpace(c.Param("email"))
	own, _ := middleware.UserEmail(c)
	if !middleware.UserRole(c).IsStaff() && !strings.EqualFold(own, email) {
		response.RespondError(c, http.StatusForbidden, response.CodeForbidden, "You can only view your own bookings")
		return
	}

	list, err := ctrl.service.History(c.Request.Context(), email)
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve bookings")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", list, nil)
}

// CancelBooking handles PUT /api/forms/:id/cancel
func (ctrl *Controller) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	userID, _ := middleware.UserID(c)
	email, _ := middleware.UserEmail(c)
	booking, err := ctrl.service.Cancel(c.Request.Context(), uint(id), userID, email)
	if err != nil {
		ctrl.respondError(c, err, "Failed to cancel booking")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

func (ctrl *Controller) respondError(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.RespondFieldErrors(c, verr.Fields)
	case errors.Is(err, cars.ErrCarNotFound):
		response.RespondError(c, http.StatusNotFound, "CAR_NOT_FOUND", "Car not found")
	case errors.Is(err, cars.ErrCarUnavailable):
		response.RespondError(c, http.StatusConflict, "CAR_UNAVAILABLE", "Car is not available for booking")
	case errors.Is(err, ErrBookingNotFound):
		response.RespondError(c, http.StatusNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrNotBookingOwner):
		response.RespondError(c, http.StatusForbidden, response.CodeForbidden, "You can only manage your own bookings")
	case errors.Is(err, ErrInvalidTransition):
		response.RespondError(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Only pending bookings can be cancelled")
	default:
		logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondError(c, http.StatusInternalServerError, response.CodeInternal, fallback)
	}
}
