package orders

import (
	"drivehub/internal/shared/config"
	"drivehub/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes registers the admin order workflow
func SetupOrderRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	orders := rg.Group("/orders")
	orders.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireStaff())
	{
		orders.GET("/pending", controller.GetPendingOrders)
		orders.GET("/all", controller.GetAllOrders)
		orders.GET("/status/:status", controller.GetOrdersByStatus)
		orders.GET("/statistics", controller.GetOrderStatistics)
		orders.PUT("/:id/approve", controller.ApproveOrder)
		orders.PUT("/:id/reject", controller.RejectOrder)
		orders.PUT("/:id/complete", controller.CompleteOrder)
	}
}
