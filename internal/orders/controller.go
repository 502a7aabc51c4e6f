package orders

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"drivehub/internal/bookings"
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
	return &Controller{service: service, validator: response.NewValidator()}
}

func (ctrl *Controller) GetPendingOrders(c *gin.Context) {
	list, err := ctrl.service.Pending(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve pending orders")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Pending orders retrieved successfully", list, nil)
}

func (ctrl *Controller) GetAllOrders(c *gin.Context) {
	list, err := ctrl.service.All(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve orders")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Orders retrieved successfully", list, nil)
}

func (ctrl *Controller) GetOrdersByStatus(c *gin.Context) {
	list, err := ctrl.service.ByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve orders")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Orders retrieved successfully", list, nil)
}

func (ctrl *Controller) ApproveOrder(c *gin.Context) {
	ctrl.decide(c, ctrl.service.Approve, "Order approved successfully", "Failed to approve order")
}

func (ctrl *Controller) RejectOrder(c *gin.Context) {
	ctrl.decide(c, ctrl.service.Reject, "Order rejected successfully", "Failed to reject order")
}

func (ctrl *Controller) CompleteOrder(c *gin.Context) {
	ctrl.decide(c, ctrl.service.Complete, "Order completed successfully", "Failed to complete order")
}

func (ctrl *Controller) GetOrderStatistics(c *gin.Context) {
	stats, err := ctrl.service.Statistics(c.Request.Context())
	if err != nil {
		ctrl.respondError(c, err, "Failed to retrieve order statistics")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Order statistics retrieved successfully", stats, nil)
}

type decisionFunc func(ctx context.Context, id uint, actorID, adminNotes string) (*bookings.BookingResponse, error)

// decide runs one order decision. The body is optional.
func (ctrl *Controller) decide(c *gin.Context, apply decisionFunc, success, fallback string) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID")
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.RespondValidationError(c, err)
		return
	}
	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondValidationError(c, err)
		return
	}

	actorID, _ := middleware.UserID(c)
	order, err := apply(c.Request.Context(), uint(id), actorID, req.AdminNotes)
	if err != nil {
		ctrl.respondError(c, err, fallback)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, success, order, nil)
}

func (ctrl *Controller) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		response.RespondError(c, http.StatusNotFound, "ORDER_NOT_FOUND", "Order not found")
	case errors.Is(err, bookings.ErrInvalidTransition):
		response.RespondError(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Order cannot move to the requested status")
	case errors.Is(err, ErrUnknownStatus):
		response.RespondErrorDetails(c, http.StatusBadRequest, response.CodeValidation, "",
			map[string]string{"status": "must be one of PENDING, APPROVED, REJECTED, COMPLETED, CANCELLED"})
	case errors.Is(err, cars.ErrCarUnavailable):
		response.RespondError(c, http.StatusConflict, "CAR_UNAVAILABLE", "The car for this order is no longer available")
	case errors.Is(err, cars.ErrCarNotFound):
		response.RespondError(c, http.StatusNotFound, "CAR_NOT_FOUND", "The car for this order no longer exists")
	default:
		logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
		response.RespondError(c, http.StatusInternalServerError, response.CodeInternal, fallback)
	}
}
