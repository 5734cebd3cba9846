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

	"github.com/vignesh678/stock-glass-visualizer/internal/config"
	"github.com/vignesh678/stock-glass-visualizer/internal/database"
	"github.com/vignesh678/stock-glass-visualizer/internal/events"
	"github.com/vignesh678/stock-glass-visualizer/internal/logger"
	"github.com/vignesh678/stock-glass-visualizer/internal/router"
)

// @title           StockGlass API
// @version         1.0
// @description     StockGlass tracks a personal portfolio of Nifty equities and serves the stock catalog with its detail analytics.

// @host      localhost:5000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	opts := router.Options{DB: dbManager.DB()}
	if len(appConfig.KafkaBrokers) > 0 {
		producer := events.NewProducer(appConfig.KafkaBrokers, appConfig.KafkaTopic)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Warnf("failed to close kafka producer: %v", err)
			}
		}()
		opts.EmailPublisher = producer
		log.Infow("Publishing email requests to kafka", "brokers", appConfig.KafkaBrokers, "topic", appConfig.KafkaTopic)
	}

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router.New(opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting StockGlass backend server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
