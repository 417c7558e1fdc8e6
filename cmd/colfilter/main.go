// Command colfilter keeps a fixed set of columns from directories of CSV files.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	"github.com/custodia-labs/colfilter/internal/adapters/driven/config/file"
	"github.com/custodia-labs/colfilter/internal/adapters/driven/storage/csvfile"
	"github.com/custodia-labs/colfilter/internal/adapters/driving/cli"
	"github.com/custodia-labs/colfilter/internal/connectors/filesystem"
	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/services"
	"github.com/custodia-labs/colfilter/internal/logger"
)

var version = "dev"

// Exit codes.
const (
	exitOK            = 0
	exitFailure       = 1
	exitMissingColumn = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetServiceFactory(newServices)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Error("interrupted")
			return exitFailure
		}
		logger.Error("%v", err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	if errors.Is(err, domain.ErrMissingColumn) {
		return exitMissingColumn
	}
	return exitFailure
}

// envConfig holds settings read from the environment. Flags take precedence.
type envConfig struct {
	ConfigDir string `env:"COLFILTER_CONFIG_DIR"`
	Verbose   bool   `env:"COLFILTER_VERBOSE"`
}

func parseEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// newServices wires adapters into the core services.
func newServices(configDir string) (*cli.Services, error) {
	cfg, err := parseEnv()
	if err != nil {
		return nil, err
	}
	if configDir == "" {
		configDir = cfg.ConfigDir
	}
	if cfg.Verbose {
		logger.SetVerbose(true)
	}

	config, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}

	tables := csvfile.New()
	progress := cli.NewProgress(os.Stdout)
	batch := services.NewBatchService(
		services.NewProjector(tables, tables),
		filesystem.NewSource(),
		progress,
		filesystem.NewWatcher(),
		uuid.NewString,
	)

	return &cli.Services{
		Batch:    batch,
		Profiles: services.NewProfileService(config),
		Progress: progress,
	}, nil
}
