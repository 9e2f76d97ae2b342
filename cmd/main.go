package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"storefront/config"
	_ "storefront/docs"
	"storefront/internal/clients"
	"storefront/internal/events"
	"storefront/internal/handlers"
	"storefront/internal/health"
	"storefront/internal/session"
	"storefront/internal/usecase"
)

// @title Storefront API
// @version 1.0
// @description Session-scoped listing form and order views over the marketplace API.
// @BasePath /
func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Fatalf("FATAL: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
		logger.Warnf("Invalid LOG_LEVEL '%s', using default: %s", cfg.LogLevel, logLevel.String())
	}
	logger.SetLevel(logLevel)
	logger.Info("Starting Storefront...")
	logger.Infof("Marketplace API target: %s", cfg.MarketplaceAPIURL)

	marketplaceClient := clients.NewMarketplaceHTTPClient(cfg.MarketplaceAPIURL, cfg.APITimeout, logger)

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
	} else {
		logger.Info("KAFKA_BROKERS not set, activity events are disabled")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Errorf("Error closing event publisher: %v", err)
		}
	}()

	// --- Dependency Injection ---
	build := session.NewBuilder(marketplaceClient, publisher, usecase.ListingFormConfig{
		RedirectDelay: cfg.RedirectDelay,
		RedirectPath:  cfg.ListingRedirectPath,
	}, logger)
	sessions := session.NewStore(cfg.SessionTTL, build, logger)
	defer sessions.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go sessions.Run(ctx, cfg.SessionSweep)

	srv := handlers.NewServer(sessions, cfg.APITimeout, cfg.SessionTTL, logger)
	logger.Info("Routes registered.")

	var grpcHealth *health.GRPCServer
	if cfg.GrpcHealthPort != "" {
		lis, err := net.Listen("tcp", cfg.GrpcHealthPort)
		if err != nil {
			logger.Fatalf("Failed to listen on port %s: %v", cfg.GrpcHealthPort, err)
		}
		grpcHealth = health.NewGRPCServer(logger)
		go func() {
			if err := grpcHealth.Serve(lis); err != nil {
				logger.Errorf("gRPC health server failed: %v", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:    cfg.Port,
		Handler: srv.Engine(),
	}

	// --- Start Server ---
	go func() {
		logger.Infof("Storefront listening on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server on port %s: %v", cfg.Port, err)
		}
	}()
	if grpcHealth != nil {
		grpcHealth.SetServing(true)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Warn("Shutdown signal received...")

	if grpcHealth != nil {
		grpcHealth.SetServing(false)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	}
	if grpcHealth != nil {
		grpcHealth.Stop()
	}
	logger.Info("Storefront shut down gracefully.")
}
