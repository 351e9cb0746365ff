package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pedefood/pedefood-backend/config"
	"github.com/pedefood/pedefood-backend/internal/app/controller"
	"github.com/pedefood/pedefood-backend/internal/app/repository"
	"github.com/pedefood/pedefood-backend/internal/app/service"
	"github.com/pedefood/pedefood-backend/internal/db"
	"github.com/pedefood/pedefood-backend/internal/middleware"
	"github.com/pedefood/pedefood-backend/internal/router"
	"github.com/pedefood/pedefood-backend/internal/scheduler"
	"github.com/pedefood/pedefood-backend/internal/storage"
	ws "github.com/pedefood/pedefood-backend/internal/websocket"
	"github.com/pedefood/pedefood-backend/pkg/logger"
	"github.com/pedefood/pedefood-backend/pkg/mail"
	"github.com/pedefood/pedefood-backend/pkg/payment/simulator"
	"github.com/pedefood/pedefood-backend/pkg/redis"
	"github.com/pedefood/pedefood-backend/pkg/sms"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting PedeFood Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs token revocation and dev-mode verification codes.
	// The server still runs without it, with revocation checks off.
	redisAvailable := true
	if err := redis.Init(&cfg.Redis); err != nil {
		redisAvailable = false
		logger.Warn("Redis unavailable, token revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	addressRepo := repository.NewAddressRepository(db.GetDB())
	restaurantRepo := repository.NewRestaurantRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Outbound integrations
	mailer := mail.NewMailer(cfg.SMTP)
	gateway := simulator.NewClient(cfg.Payment.ProcessingDelay)
	twilioClient := sms.NewClient(cfg.Twilio)

	// WebSocket hub for live order tracking. Subscriptions are limited
	// to orders the user owns.
	hub := ws.NewHub(func(userID uint, orderNumber string) bool {
		order, err := orderRepo.FindByOrderNumber(orderNumber)
		if err != nil {
			return false
		}
		return order.UserID == userID
	})
	go hub.Run()

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	addressService := service.NewAddressService(addressRepo)
	restaurantService := service.NewRestaurantService(restaurantRepo)
	productService := service.NewProductService(productRepo, restaurantRepo)
	cartService := service.NewCartService(cartRepo, productRepo)
	orderService := service.NewOrderService(
		orderRepo,
		cartRepo,
		addressRepo,
		restaurantRepo,
		userRepo,
		gateway,
		mailer,
		hub,
	)
	verificationService := service.NewVerificationService(
		twilioClient,
		userRepo,
		!cfg.Twilio.Configured(),
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	addressController := controller.NewAddressController(addressService)
	restaurantController := controller.NewRestaurantController(restaurantService)
	productController := controller.NewProductController(productService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService)
	verificationController := controller.NewVerificationController(verificationService)
	trackingController := controller.NewTrackingController(hub, cfg.CORS.AllowedOrigins)
	uploadController := controller.NewUploadController(storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	))

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, redisAvailable)

	// Order status progression scheduler
	statusScheduler := scheduler.NewOrderStatusScheduler(orderService, cfg.Order.StatusAdvanceInterval)
	if err := statusScheduler.Start(); err != nil {
		logger.Fatal("Failed to start order status scheduler", err)
	}
	defer statusScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		addressController,
		restaurantController,
		productController,
		cartController,
		orderController,
		verificationController,
		trackingController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced server shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
