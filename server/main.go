package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"drivehub/api/routes"
	"drivehub/internal/cars"
	"drivehub/internal/notifications"
	"drivehub/internal/shared/config"
	"drivehub/internal/shared/database"
	"drivehub/pkg/cache"
	"drivehub/pkg/logger"
	"drivehub/pkg/ratelimit"
	"drivehub/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Rebuild the logger now that mode and level are known
	appLogger = logger.NewWithWriter(os.Stdout, cfg.LogLevel)
	logger.SetDefault(appLogger)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Redis is optional: without it caching is off and rate limiting is per process
	var rdb *redis.Client
	var cacheService cache.Service = cache.Noop{}
	if cfg.Redis.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err = cache.Connect(ctx, cache.Config{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		cancel()
		if err != nil {
			appLogger.Warn("Redis unavailable, continuing without cache", slog.Any("error", err))
			rdb = nil
		} else {
			cacheService = cache.NewService(rdb)
			defer rdb.Close()
			appLogger.Info("✅ Redis connected successfully")
		}
	}

	var rateLimiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.New(rdb, &ratelimit.Config{
			Enabled:         cfg.RateLimit.Enabled,
			WindowDuration:  cfg.RateLimit.WindowDuration,
			DefaultRequests: cfg.RateLimit.DefaultRequests,
			PublicRequests:  cfg.RateLimit.PublicRequests,
			AuthRequests:    cfg.RateLimit.AuthRequests,
			BookingRequests: cfg.RateLimit.BookingRequests,
			AdminRequests:   cfg.RateLimit.AdminRequests,
			HealthRequests:  cfg.RateLimit.HealthRequests,
			WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
		})
		appLogger.Info("Rate limiter initialized",
			slog.Bool("distributed", rdb != nil),
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Car images
	var images cars.ImageStore
	if cfg.StorageEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		store, err := storage.New(ctx, storage.Config{
			Endpoint:  cfg.Storage.Endpoint,
			Region:    cfg.Storage.Region,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			UseSSL:    cfg.Storage.UseSSL,
			PublicURL: cfg.Storage.PublicURL,
		})
		cancel()
		if err != nil {
			appLogger.Error("Object storage unavailable, image uploads disabled", slog.Any("error", err))
		} else {
			images = store
			appLogger.Info("Object storage ready", slog.String("bucket", cfg.Storage.Bucket))
		}
	}

	// Booking events
	publisher, err := notifications.NewPublisher(cfg.Events)
	if err != nil {
		appLogger.Error("Failed to initialize event publisher, events disabled", slog.Any("error", err))
		publisher = notifications.NoopPublisher{}
	}
	defer publisher.Close()

	notificationCtx, notificationCancel := context.WithCancel(context.Background())
	defer notificationCancel()

	if cfg.Events.Broker == "kafka" && cfg.Events.KafkaConsume {
		consumer, err := notifications.NewKafkaNotificationConsumer(
			notifications.DefaultConsumerConfig(cfg.Events.KafkaBrokers, cfg.Events.KafkaConsumerGroup, cfg.Events.KafkaTopic),
			notifications.NewEmailService(cfg),
		)
		if err != nil {
			appLogger.Error("Failed to create notification consumer", slog.Any("error", err))
		} else if err := consumer.Start(notificationCtx, 2); err != nil {
			appLogger.Error("Failed to start notification consumer", slog.Any("error", err))
		} else {
			appLogger.Info("Booking notification consumer started")
			defer func() {
				appLogger.Info("Stopping notification consumer...")
				if err := consumer.Stop(); err != nil {
					appLogger.Error("Error stopping notification consumer", slog.Any("error", err))
				}
			}()
		}
	}

	router := setupRouter(cfg, db, cacheService, images, publisher, rateLimiter)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Port)),
			slog.String("version", Version),
			slog.String("commit", GitCommit),
			slog.String("built", BuildTime),
			slog.Bool("redis_cache", rdb != nil),
			slog.Bool("rate_limiting", cfg.RateLimit.Enabled),
			slog.String("event_broker", cfg.Events.Broker),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, db *database.DB, cacheService cache.Service, images cars.ImageStore, publisher notifications.Publisher, rateLimiter ratelimit.Limiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	engine.Use(cors.New(corsConfig))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	routes.NewRouter(cfg, db, cacheService, images, publisher).SetupRoutes(engine)
	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
