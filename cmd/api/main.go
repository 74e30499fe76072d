package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/imagen/internal/api"
	"github.com/timmy/imagen/internal/api/middleware"
	"github.com/timmy/imagen/internal/cache"
	"github.com/timmy/imagen/internal/config"
	"github.com/timmy/imagen/internal/eventlog"
	"github.com/timmy/imagen/internal/logger"
	"github.com/timmy/imagen/internal/projection"
	"github.com/timmy/imagen/internal/provider"
	"github.com/timmy/imagen/internal/repository"
	"github.com/timmy/imagen/internal/service"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "imagen-api",
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
		Compress:    cfg.Log.Compress,
	})
	logger.SetDefaultLogger(appLogger)

	// run owns every resource so its defers fire before the process exits
	if err := run(cfg, appLogger); err != nil {
		appLogger.WithError(err).Fatal("Server failed")
	}
	appLogger.Info("Server exited")
}

func run(cfg *config.Config, appLogger *logger.Logger) error {
	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize read-model repositories and cache
	imageRepo := repository.NewImageRepository(db)
	classifiedRepo := repository.NewClassifiedImageRepository(db)

	readCache, err := cache.New(&cache.Config{
		Driver:   cfg.Cache.Driver,
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	defer readCache.Close()

	// Initialize event log
	eventLog, err := eventlog.New(&eventlog.Config{
		Driver:       cfg.EventLog.Driver,
		DSN:          cfg.EventLog.DSN,
		PollInterval: cfg.EventLog.PollInterval,
	}, db)
	if err != nil {
		return fmt.Errorf("failed to initialize event log: %w", err)
	}
	defer eventLog.Close()

	// Initialize providers
	generators := provider.NewFactory(&provider.Config{
		OpenAI: provider.OpenAIConfig{
			APIKey:  cfg.Providers.OpenAI.APIKey,
			BaseURL: cfg.Providers.OpenAI.BaseURL,
			Model:   cfg.Providers.OpenAI.Model,
			Size:    cfg.Providers.OpenAI.Size,
		},
		AzureOpenAI: provider.AzureOpenAIConfig{
			Endpoint:   cfg.Providers.AzureOpenAI.Endpoint,
			APIKey:     cfg.Providers.AzureOpenAI.APIKey,
			Deployment: cfg.Providers.AzureOpenAI.Deployment,
			APIVersion: cfg.Providers.AzureOpenAI.APIVersion,
		},
		Stability: provider.StabilityConfig{
			APIKey: cfg.Providers.Stability.APIKey,
			Model:  cfg.Providers.Stability.Model,
		},
		Google: provider.GoogleConfig{
			APIKey: cfg.Providers.Google.APIKey,
			Model:  cfg.Providers.Google.Model,
		},
		Gemini: provider.GoogleConfig{
			APIKey: cfg.Providers.Gemini.APIKey,
			Model:  cfg.Providers.Gemini.Model,
		},
		HuggingFace: provider.HuggingFaceConfig{
			APIKey:   cfg.Providers.HuggingFace.APIKey,
			Endpoint: cfg.Providers.HuggingFace.Endpoint,
		},
	})

	var classifier provider.ImageClassifier
	switch cfg.Classifier.Provider {
	case "azure":
		classifier = provider.NewAzureVisionClassifier(&provider.AzureVisionConfig{
			Endpoint: cfg.Classifier.AzureVision.Endpoint,
			APIKey:   cfg.Classifier.AzureVision.APIKey,
		})
	default:
		classifier = provider.NewMockClassifier()
	}

	// Initialize services
	commandService := service.NewCommandService(
		generators,
		provider.NewURLConverter(),
		classifier,
		eventLog,
		cfg.EventLog.Stream,
	)
	queryService := service.NewQueryService(imageRepo, classifiedRepo, readCache)

	// Start the projection dispatcher
	dispatcher := projection.NewDispatcher(
		eventLog,
		projection.NewImageProjector(imageRepo, readCache),
		projection.NewClassifiedImageProjector(classifiedRepo, readCache),
	)
	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	// Setup router
	router := api.SetupRouter(commandService, queryService, appLogger, api.RouterConfig{
		Mode: cfg.Server.Mode,
		CORS: middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		appLogger.Infof("Starting API server on port %d (mode=%s)", cfg.Server.Port, cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	dispatcher.Stop()
	return nil
}
