package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cuongbtq/recruitment-be/internal/api/auth"
	"github.com/cuongbtq/recruitment-be/internal/api/handler"
	"github.com/cuongbtq/recruitment-be/internal/api/router"
	"github.com/cuongbtq/recruitment-be/internal/api/storage"
	"github.com/cuongbtq/recruitment-be/internal/bootstrap"
	"github.com/cuongbtq/recruitment-be/internal/config"
	"github.com/cuongbtq/recruitment-be/internal/migrations"
	"github.com/cuongbtq/recruitment-be/shared/logger"
	"github.com/cuongbtq/recruitment-be/shared/postgresql"
	"github.com/cuongbtq/recruitment-be/shared/rabbitmq"
	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		logger.NewDefault().Error("API service failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := bootstrap.LoadConfig("API_SERVICE_CONFIG_PATH", "configs/api-service/config.yaml")
	if err != nil {
		return err
	}

	if err := cfg.ValidateAPIConfig(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	appLogger, err := bootstrap.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	appLogger.Info("Starting API service",
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

	if cfg.Database.AutoMigrate {
		if err := dbClient.Migrate(migrations.FS, postgresql.MigrateUp); err != nil {
			return err
		}
	}

	rabbitClient, err := bootstrap.NewRabbitMQ(&cfg.RabbitMQ, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize RabbitMQ: %w", err)
	}
	defer rabbitClient.Close()

	appLogger.Info("RabbitMQ connection established")

	r, err := initRouter(cfg, appLogger.With("service", cfg.App.Name).Logger, dbClient, rabbitClient)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	appLogger.Info("Starting HTTP server",
		slog.String("address", addr),
		slog.Duration("read_timeout", cfg.Server.ReadTimeout),
		slog.Duration("write_timeout", cfg.Server.WriteTimeout),
	)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLogger.Info("Shutting down server...", slog.String("signal", sig.String()))
	case err := <-serverErr:
		appLogger.Error("Server failed to start", slog.Any("error", err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown",
			slog.Any("error", err),
		)
		return err
	}

	appLogger.Info("Server shutdown complete",
		slog.String("db_stats", dbClient.Stats()),
	)
	return nil
}

// initRouter wires storage, auth and the publisher into the Gin router
func initRouter(cfg *config.Config, serviceLogger *slog.Logger, dbClient *postgresql.Client, rabbitClient *rabbitmq.Client) (*gin.Engine, error) {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.Issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}

	store := storage.NewStorage(dbClient.GetDB())

	return router.SetupRouter(&handler.Dependencies{
		Logger:       serviceLogger,
		Users:        store,
		JobOffers:    store,
		Applications: store,
		Publisher:    rabbitClient,
		Tokens:       tokens,
		Passwords:    auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		MaxRetries:   cfg.Worker.MaxRetries,
		HealthCheck: func(ctx context.Context) error {
			if !rabbitClient.IsConnected() {
				return errors.New("rabbitmq connection is closed")
			}
			return dbClient.HealthCheck(ctx)
		},
		ServiceName: cfg.App.Name,
	}), nil
}
