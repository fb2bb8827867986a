package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuongbtq/recruitment-be/internal/bootstrap"
	"github.com/cuongbtq/recruitment-be/internal/worker"
	"github.com/cuongbtq/recruitment-be/internal/worker/storage"
	"github.com/cuongbtq/recruitment-be/shared/logger"
)

func main() {
	if err := run(); err != nil {
		logger.NewDefault().Error("Worker service failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := bootstrap.LoadConfig("WORKER_SERVICE_CONFIG_PATH", "configs/worker-service/config.yaml")
	if err != nil {
		return err
	}

	if err := cfg.ValidateWorkerConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := bootstrap.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting worker service",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("environment", cfg.App.Environment),
	)

	dbClient, err := bootstrap.NewPostgreSQL(&cfg.Database, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbClient.Close()

	appLogger.Info("Database connection established")

	rabbitClient, err := bootstrap.NewRabbitMQ(&cfg.RabbitMQ, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
	}
	defer rabbitClient.Close()

	appLogger.Info("RabbitMQ connection established")

	workerLogger := appLogger.WithAttrs(slog.String("service", cfg.App.Name))

	workerInstance := worker.NewWorker(&worker.Config{
		Logger:         workerLogger.Logger,
		Store:          storage.NewStorage(dbClient.GetDB(), appLogger.Logger),
		Broker:         rabbitClient,
		WorkerID:       cfg.Worker.ID,
		Concurrency:    cfg.Worker.Concurrency,
		PrefetchCount:  cfg.Worker.PrefetchCount,
		ProcessTimeout: cfg.Worker.ProcessTimeout,
		RequeueDelay:   cfg.Worker.RequeueDelay,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- workerInstance.Start(ctx)
	}()

	appLogger.Info("Worker service started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		appLogger.Info("Received signal, shutting down gracefully",
			slog.String("signal", sig.String()),
		)
	case runErr = <-errChan:
		if runErr != nil {
			appLogger.Error("Worker error",
				slog.Any("error", runErr),
			)
		}
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownTimeout)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		workerInstance.Stop()
		close(done)
	}()

	select {
	case <-done:
		appLogger.Info("Worker stopped gracefully")
	case <-shutdownCtx.Done():
		appLogger.Warn("Worker shutdown timeout exceeded, forcing exit")
	}

	appLogger.Info("Worker service shutdown complete",
		slog.String("db_stats", dbClient.Stats()),
	)
	return runErr
}
