package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/addictonline/orderprint/internal/api"
	"github.com/addictonline/orderprint/internal/cargo"
	"github.com/addictonline/orderprint/internal/config"
	"github.com/addictonline/orderprint/internal/label"
	"github.com/addictonline/orderprint/internal/service"
	"github.com/addictonline/orderprint/internal/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting order print server",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("shop", cfg.Shopify.ShopDomain),
	)

	// Initialize clients
	gql := shopify.NewClient(cfg.Shopify, logger)
	rest := shopify.NewRESTClient(cfg.Shopify, logger)
	carrier := cargo.NewClient(cfg.Cargo, logger)

	renderer, err := label.NewRenderer(cfg.Cargo.Sender)
	if err != nil {
		logger.Fatal("Failed to build label renderer", zap.Error(err))
	}

	// Initialize services
	svcs := api.Services{
		Orders:  service.NewOrderService(gql, rest, cfg.Pager, logger),
		Reports: service.NewReportService(gql, logger),
		Labels:  service.NewLabelService(rest, gql, gql, carrier, renderer, cfg.Cargo, logger),
	}

	// Initialize router
	router := api.NewRouter(cfg, svcs, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
