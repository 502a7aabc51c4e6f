package bookings

import (
	"drivehub/internal/shared/config"
	"drivehub/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures the booking form routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	forms := rg.Group("/forms")
	forms.Use(middleware.JWTAuthWithConfig(cfg))
	{
		forms.POST("/book", controller.SubmitBooking)
		forms.GET("/recent", controller.GetRecentBookings)
		forms.GET("/user/:email", controller.GetUserBookings)
		forms.PUT("/:id/cancel", controller.CancelBooking)
	}
}
