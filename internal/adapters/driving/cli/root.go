// Package cli provides the colfilter command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/colfilter/internal/core/ports/driving"
	"github.com/custodia-labs/colfilter/internal/logger"
)

var version = "dev"

// Persistent flag values.
var (
	verbose   bool
	configDir string
)

// Services injected by main, or by tests directly.
var (
	batchRunner    driving.BatchRunner
	profileService driving.ProfileService
	progress       *Progress
	setupServices  func(configDir string) (*Services, error)
)

// Services bundles the ports the commands drive.
type Services struct {
	Batch    driving.BatchRunner
	Profiles driving.ProfileService

	// Progress is flushed after every batch. May be nil.
	Progress *Progress
}

var rootCmd = &cobra.Command{
	Use:   "colfilter",
	Short: "Keep a fixed set of columns from directories of CSV files",
	Long: `colfilter reads every CSV file in a directory, keeps a chosen set of
columns and writes each result to a new file. Inputs whose output already
exists are skipped, so re-running a command only processes new files.

Two built-in profiles reproduce the usual workflows:
  filter   keep id,append and write filtered/<dir>/fil-<name>
  extract  keep bbs,n,id,search,search_false_pos and write extracted-<name>.csv`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configure,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.colfilter)")
}

// configure applies persistent flags and builds services on first use.
func configure(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if setupServices == nil {
		return nil
	}

	svcs, err := setupServices(configDir)
	if err != nil {
		return fmt.Errorf("initialise services: %w", err)
	}
	batchRunner = svcs.Batch
	profileService = svcs.Profiles
	progress = svcs.Progress
	return nil
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetServiceFactory registers the constructor for command services. It runs
// once per invocation, after flags are parsed.
func SetServiceFactory(fn func(configDir string) (*Services, error)) {
	setupServices = fn
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
