package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"ppecli/internal/app"
	"ppecli/internal/config"
	"ppecli/internal/infrastructure"
	"ppecli/pkg/contracts"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to $PPE_CONFIG, ./config.yaml, ./configs/config.yaml)")
	flag.Parse()

	if err := run(context.Background(), *configPath); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	logger.InfoContext(ctx, "Application starting",
		slog.String("name", app.AppName),
		slog.String("version", contracts.GetFullVersionString()))

	providers, err := infrastructure.InitializeOTel(
		infrastructure.OTelConfigFrom(cfg.Telemetry, contracts.Version), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	application, err := app.NewApplication(ctx, cfg, logger, providers)
	if err != nil {
		providers.Shutdown(ctx)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return application.Run(ctx)
}
