package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/config"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/container"
	httpserver "github.com/Vetrikanth1209/OFFICE-BACKEND/internal/interfaces/http"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/pkg/utils"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", "", "path to the YAML config file (default configs/config.yaml when present)")
	flag.Parse()

	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(resolveConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting office expense backend",
		zap.String("address", cfg.Server.Address()),
		zap.String("database", cfg.Database.Path))

	c, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		return fmt.Errorf("create container: %w", err)
	}
	if err := c.Start(ctx); err != nil {
		return fmt.Errorf("start container: %w", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("Failed to close container", zap.Error(err))
		}
	}()

	services := c.Services()
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		ShutdownTimeout:    cfg.Server.ShutdownTimeout,
		MaxMultipartMemory: cfg.Server.MaxMultipartMemory,
		Mode:               cfg.Server.Mode,
		StaticDirs: map[string]string{
			"/" + cfg.Storage.UploadDir: filepath.Join(cfg.Storage.BaseDir, cfg.Storage.UploadDir),
			"/" + cfg.Storage.MergedDir: filepath.Join(cfg.Storage.BaseDir, cfg.Storage.MergedDir),
		},
	}, httpserver.Services{
		Forms:   services.Forms,
		Queries: services.Queries,
		Lookups: services.Lookups,
		Admin:   services.Admin,
		Auth:    services.Auth,
	}, c, c.Metrics(), container.NewServiceLogger(logger))

	if err := server.Start(ctx); err != nil {
		return err
	}

	logger.Info("Office expense backend stopped")
	return nil
}

func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}
