// Command replay rebuilds the read models by pushing every event in the
// log through the projectors once. Projections are full-row upserts, so
// replaying against live tables is safe and repairs any drift.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/timmy/imagen/internal/cache"
	"github.com/timmy/imagen/internal/config"
	"github.com/timmy/imagen/internal/eventlog"
	"github.com/timmy/imagen/internal/logger"
	"github.com/timmy/imagen/internal/projection"
	"github.com/timmy/imagen/internal/repository"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "imagen-replay",
	})
	logger.SetDefaultLogger(appLogger)

	if err := run(cfg, appLogger); err != nil {
		appLogger.WithError(err).Fatal("Replay failed")
	}
	appLogger.Info("Replay complete")
}

func run(cfg *config.Config, appLogger *logger.Logger) error {
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

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

	eventLog, err := eventlog.New(&eventlog.Config{
		Driver:       cfg.EventLog.Driver,
		DSN:          cfg.EventLog.DSN,
		PollInterval: cfg.EventLog.PollInterval,
	}, db)
	if err != nil {
		return fmt.Errorf("failed to initialize event log: %w", err)
	}
	defer eventLog.Close()

	imageRepo := repository.NewImageRepository(db)
	classifiedRepo := repository.NewClassifiedImageRepository(db)

	dispatcher := projection.NewDispatcher(
		eventLog,
		projection.NewImageProjector(imageRepo, readCache),
		projection.NewClassifiedImageProjector(classifiedRepo, readCache),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	appLogger.Info("Replaying event log into read models...")
	return dispatcher.Replay(ctx)
}
