package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bankextract/internal/api"
	"bankextract/internal/api/handlers"
	"bankextract/internal/repository"
	"bankextract/internal/service"
	"bankextract/pkg/config"
	"bankextract/pkg/logger"
	"bankextract/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting statement extraction service")

	if cfg.OpenRouter.APIKey == "" {
		// The service still starts so the surface can show the error, but
		// every extraction will fail fast with a configuration error.
		appLogger.Warn("OPENROUTER_API_KEY is not set; extractions will be rejected")
	}

	// Run history is optional; without it the service is fully stateless.
	var runRepo *repository.RunRepository
	var txRepo *repository.TransactionRepository
	ctx := context.Background()
	if cfg.History.Enabled {
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := repository.EnsureSchema(ctx, db); err != nil {
			appLogger.Fatal("Failed to ensure database schema", zap.Error(err))
		}

		runRepo = repository.NewRunRepository(db, appLogger)
		txRepo = repository.NewTransactionRepository(db, appLogger)
	} else {
		appLogger.Info("Run history disabled, running stateless")
	}

	// Wire services and handlers
	client := service.NewOpenRouterClient(&cfg.OpenRouter, appLogger)
	stmtService := service.NewStatementService(client, runRepo, txRepo, cfg.OpenRouter.Model, appLogger)
	stmtHandler := handlers.NewStatementHandler(stmtService, appLogger)

	app := api.SetupRouter(stmtHandler, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
