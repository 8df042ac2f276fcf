package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/anderskate/async-sms-sending/environments"
	"github.com/anderskate/async-sms-sending/handlers"
	"github.com/anderskate/async-sms-sending/internal/aggregator"
	"github.com/anderskate/async-sms-sending/internal/publisher"
	"github.com/anderskate/async-sms-sending/internal/service"
	"github.com/anderskate/async-sms-sending/pkg/logger"
	"github.com/anderskate/async-sms-sending/pkg/redis"
	"github.com/anderskate/async-sms-sending/pkg/smsc"
	"github.com/anderskate/async-sms-sending/pkg/validator"
	"github.com/anderskate/async-sms-sending/routes"

	_ "github.com/anderskate/async-sms-sending/docs" // swagger docs
)

// @title SMS Broadcast Service API
// @version 1.0
// @description Sends broadcast SMS mailings through smsc.ru and streams aggregated delivery status to connected viewers

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /

// @schemes http https
func main() {
	logger.Init()

	// Load config
	cfg := environments.Load()

	// Hard-fail if required gateway settings are missing
	if cfg.Smsc.Login == "" || cfg.Smsc.Password == "" {
		logger.Fatalf("SMSC_LOGIN and SMSC_PASSWORD are required but not set")
	}
	if cfg.Smsc.Sender == "" {
		logger.Fatalf("SMSC_SENDER is required but not set")
	}
	if len(cfg.Mailing.Phones) == 0 {
		logger.Fatalf("PHONES is required but not set")
	}

	logger.Infof("Starting SMS Broadcast Service...")

	// Init Redis; it holds the mailing registry, so it is not optional here
	redisClient, err := redis.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Initialize gateway client
	smscClient := smsc.NewClient(cfg.Smsc)
	logger.Infof("Gateway configured: %s", cfg.Smsc.SendURL)

	// Initialize submission service and status pipeline
	mailingService := service.NewMailingService(smscClient, redisClient, cfg.Smsc, cfg.Mailing)
	statusAggregator := aggregator.New(redisClient)
	statusPublisher := publisher.NewPublisher(statusAggregator, cfg.Mailing.PublishInterval)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(redisClient, statusPublisher)
	sendHandler := handlers.NewSendHandler(mailingService)
	streamHandler := handlers.NewStreamHandler(statusPublisher)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
		},
	}))

	// Setup routes
	routes.RegisterRoutes(e, healthHandler, sendHandler, streamHandler)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	// Shutdown HTTP server (with timeout); viewer loops end when their
	// connections close
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	// Close Redis connection
	logger.Infof("Closing Redis connection...")
	if err := redisClient.Close(); err != nil {
		logger.Errorf("Error closing Redis: %v", err)
	}

	logger.Infof("Graceful shutdown completed")
}
