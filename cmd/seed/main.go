package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/config"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/container"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/internal/seed"
	"github.com/Vetrikanth1209/OFFICE-BACKEND/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	seedPath := flag.String("file", "configs/seed.yaml", "path to the seed file")
	flag.Parse()

	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     "console",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *seedPath); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, seedPath string) error {
	file, err := seed.Load(seedPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	c, err := container.NewContainer(cfg.ToContainerConfig(), logger)
	if err != nil {
		return fmt.Errorf("create container: %w", err)
	}
	if err := c.Start(ctx); err != nil {
		return fmt.Errorf("start container: %w", err)
	}
	defer c.Close()

	repos := c.Repositories()
	seeder := seed.NewSeeder(c.Services().Auth, repos.Lookups, repos.FiscalYears, c.TransactionManager(), logger)
	summary, err := seeder.Apply(ctx, file)
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d users, %d lookup documents, %d fiscal years (%d months)\n",
		summary.Users, summary.Lookups, summary.FiscalYears, summary.Months)
	return nil
}
