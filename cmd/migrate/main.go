package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cuongbtq/recruitment-be/internal/bootstrap"
	"github.com/cuongbtq/recruitment-be/internal/migrations"
	"github.com/cuongbtq/recruitment-be/shared/logger"
	"github.com/cuongbtq/recruitment-be/shared/postgresql"
)

func main() {
	if err := run(); err != nil {
		logger.NewDefault().Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	direction := flag.String("direction", postgresql.MigrateUp, "Migration direction: up or down")

	cfg, err := bootstrap.LoadConfig("API_SERVICE_CONFIG_PATH", "configs/api-service/config.yaml")
	if err != nil {
		return err
	}

	if cfg.Database.Host == "" || cfg.Database.Database == "" {
		return fmt.Errorf("invalid config: database host and name are required")
	}

	appLogger, err := bootstrap.NewLogger(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer appLogger.Close()

	dbClient, err := bootstrap.NewPostgreSQL(&cfg.Database, appLogger.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbClient.Close()

	appLogger.Info("Running migrations",
		slog.String("direction", *direction),
		slog.String("database", cfg.Database.Database),
	)

	return dbClient.Migrate(migrations.FS, *direction)
}
