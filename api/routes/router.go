// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	_ "drivehub/docs"
	"drivehub/internal/auth"
	"drivehub/internal/bookings"
	"drivehub/internal/cars"
	"drivehub/internal/notifications"
	"drivehub/internal/orders"
	"drivehub/internal/shared/config"
	"drivehub/internal/shared/database"
	"drivehub/pkg/cache"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	cache     cache.Service
	images    cars.ImageStore
	publisher notifications.Publisher
}

// NewRouter creates a new router instance. images may be nil when object
// storage is not configured.
func NewRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, images cars.ImageStore, publisher notifications.Publisher) *Router {
	if cacheService == nil {
		cacheService = cache.Noop{}
	}
	if publisher == nil {
		publisher = notifications.NoopPublisher{}
	}
	return &Router{
		config:    cfg,
		db:        db,
		cache:     cacheService,
		images:    images,
		publisher: publisher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth keeps its historical root path
	r.setupAuthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		carService := r.setupCarRoutes(api)
		bookingRepo := bookings.NewRepository(r.db.GetPostgreSQL())
		r.setupBookingRoutes(api, bookingRepo, carService)
		r.setupOrderRoutes(api, bookingRepo, carService)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		ctx := c.Request.Context()
		if err := r.db.HealthCheck(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "drivehub-api",
			})
			return
		}

		cacheStatus := "ok"
		if err := r.cache.Ping(ctx); err != nil {
			cacheStatus = "unavailable"
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"cache":     cacheStatus,
			"timestamp": time.Now(),
			"service":   "drivehub-api",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "operational",
			"api_version":   r.config.APIVersion,
			"image_storage": r.images != nil,
			"event_broker":  r.config.Events.Broker,
			"timestamp":     time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg gin.IRouter) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	auth.NewRouter(authController, r.config).SetupRoutes(rg)
}

// setupCarRoutes configures the catalogue and fleet routes
func (r *Router) setupCarRoutes(rg *gin.RouterGroup) cars.Service {
	carRepo := cars.NewRepository(r.db.GetPostgreSQL())
	carService := cars.NewService(carRepo, r.cache, r.images, r.config.Upload.AllowedImageTypes)
	carController := cars.NewController(carService, r.config.Upload.MaxSize)
	cars.SetupCarRoutes(rg, carController, r.config)
	return carService
}

// setupBookingRoutes configures the customer booking form routes
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup, repo bookings.Repository, carService cars.Service) {
	bookingService := bookings.NewService(repo, carService, r.publisher)
	bookings.SetupBookingRoutes(rg, bookings.NewController(bookingService), r.config)
}

// setupOrderRoutes configures the admin order routes
func (r *Router) setupOrderRoutes(rg *gin.RouterGroup, repo bookings.Repository, carService cars.Service) {
	orderService := orders.NewService(repo, r.cache, carService, r.publisher)
	orders.SetupOrderRoutes(rg, orders.NewController(orderService), r.config)
}
