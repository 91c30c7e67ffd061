package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/skyreserve/airline-backend/internal/cache"
	"github.com/skyreserve/airline-backend/internal/config"
	"github.com/skyreserve/airline-backend/internal/database"
	"github.com/skyreserve/airline-backend/internal/events"
	"github.com/skyreserve/airline-backend/internal/handlers"
	"github.com/skyreserve/airline-backend/internal/middleware"
	"github.com/skyreserve/airline-backend/internal/services"
)

var (
	version   = "1.0.0"
	buildTime = "unknown"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	logger.Info("Starting SkyReserve Airline Backend")
	logger.Infof("Version: %s, Build Time: %s", version, buildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	// Set log level
	logLevel, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		logger.Warn("Invalid log level, using INFO")
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database connection
	logger.Info("Connecting to database...")
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Redis (seat locks + flights cache)
	redisCache := cache.NewRedisCache(cfg.Redis)
	defer redisCache.Close()

	// Initialize Kafka producer
	producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.PublishTimeout)
	defer producer.Close()

	// Initialize repositories
	customerRepo := database.NewCustomerRepository(db)
	flightRepo := database.NewFlightRepository(db)
	scheduleRepo := database.NewScheduleRepository(db)
	seatRepo := database.NewSeatRepository(db)
	bookingRepo := database.NewBookingRepository(db)

	// Initialize services
	logger.Info("Initializing services...")
	inventoryService := services.NewInventoryService(seatRepo, logger)
	scheduleService := services.NewScheduleService(
		scheduleRepo,
		flightRepo,
		inventoryService,
		producer,
		cfg.Kafka.ScheduleTopic,
		time.Duration(cfg.Booking.DelayThresholdMinutes)*time.Minute,
		logger,
	)
	bookingService := services.NewBookingService(
		bookingRepo,
		customerRepo,
		scheduleRepo,
		seatRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		cfg.Redis.SeatLockTTL,
		logger,
	)
	chatService := services.NewChatService(flightRepo, scheduleRepo, bookingRepo, redisCache, logger)
	logger.Info("Services initialized")

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(customerRepo)
	flightHandler := handlers.NewFlightHandler(flightRepo)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, seatRepo)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	chatHandler := handlers.NewChatHandler(chatService)

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	// CORS configuration
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", healthCheckHandler(db))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		customers := v1.Group("/customers")
		{
			customers.POST("", customerHandler.Create)
			customers.GET("", customerHandler.List)
			customers.GET("/:id", customerHandler.Get)
			customers.PATCH("/:id", customerHandler.Update)
		}

		flights := v1.Group("/flights")
		{
			flights.POST("", flightHandler.Create)
			flights.GET("", flightHandler.List)
		}

		schedules := v1.Group("/schedules")
		{
			schedules.POST("", scheduleHandler.Create)
			schedules.GET("", scheduleHandler.List)
			schedules.GET("/:id", scheduleHandler.Get)
			schedules.PUT("/:id/times", scheduleHandler.UpdateTimes)
			schedules.POST("/:id/cancel", scheduleHandler.Cancel)
			schedules.GET("/:id/seats", scheduleHandler.Seats)
		}

		bookings := v1.Group("/bookings")
		{
			bookings.POST("", bookingHandler.Create)
			bookings.GET("", bookingHandler.List)
			bookings.GET("/:id", bookingHandler.Get)
			bookings.POST("/:id/cancel", bookingHandler.Cancel)
		}

		v1.POST("/chat", chatHandler.Handle)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited successfully")
}

// healthCheckHandler returns a health check endpoint
func healthCheckHandler(db database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "healthy"
		if err := db.Ping(); err != nil {
			dbStatus = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": dbStatus,
				"error":    err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  dbStatus,
			"version":   version,
			"timestamp": time.Now().Unix(),
		})
	}
}
