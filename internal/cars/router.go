package cars

import (
	"drivehub/internal/shared/config"
	"drivehub/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupCarRoutes registers storefront and fleet routes
func SetupCarRoutes(rg *gin.RouterGroup, controller *Controller, cfg *config.Config) {
	auth := middleware.JWTAuthWithConfig(cfg)
	staff := middleware.RequireStaff()

	carsGroup := rg.Group("/cars")
	{
		// Public browsing
		carsGroup.GET("/available", controller.GetAvailableCars)
		carsGroup.GET("/available/:id", controller.GetAvailableCar)
		carsGroup.GET("/search", controller.SearchCars)
		carsGroup.GET("/filter", controller.FilterCars)
		carsGroup.GET("/type/:carType", controller.GetCarsByType)
		carsGroup.GET("/filter-options", controller.GetFilterOptions)
		carsGroup.GET("/statistics", controller.GetStatistics)
		carsGroup.GET("/:id", controller.GetCar)
		carsGroup.GET("/:id/availability", controller.CheckAvailability)

		carsGroup.POST("/:id/book", auth, controller.BookCar)

		// Fleet management
		carsGroup.GET("/all", auth, staff, controller.GetAllCars)
		carsGroup.POST("", auth, staff, controller.CreateCar)
		carsGroup.PUT("/:id", auth, staff, controller.UpdateCar)
		carsGroup.DELETE("/:id", auth, staff, controller.DeleteCar)
	}

	adminCars := rg.Group("/admin/cars")
	adminCars.Use(auth, staff)
	{
		adminCars.GET("/statistics", controller.GetStatistics)
		adminCars.PUT("/:id/toggle-availability", controller.ToggleAvailability)
		adminCars.PUT("/:id/pricing", controller.UpdatePricing)
		adminCars.PUT("/:id/image", controller.UploadImage)
	}
}
