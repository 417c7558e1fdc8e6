package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/ports/driving"
)

// batchFlags holds the profile overrides shared by filter and extract.
type batchFlags struct {
	columns    []string
	order      string
	index      bool
	outputRoot string
	pattern    string
	recursive  bool
	workers    int
	keepGoing  bool
	watch      bool
}

func addBatchFlags(cmd *cobra.Command, f *batchFlags) {
	flags := cmd.Flags()
	flags.StringSliceVarP(&f.columns, "columns", "c", nil, "columns to keep, comma separated")
	flags.StringVar(&f.order, "order", "", "output column order: requested or source")
	flags.BoolVar(&f.index, "index", false, "write a leading row-index column")
	flags.StringVarP(&f.outputRoot, "output-root", "o", "", "directory outputs are written under")
	flags.StringVar(&f.pattern, "pattern", "", "glob matched against input file names")
	flags.BoolVarP(&f.recursive, "recursive", "r", false, "descend into subdirectories")
	flags.IntVarP(&f.workers, "workers", "j", 1, "files projected concurrently")
	flags.BoolVar(&f.keepGoing, "keep-going", false, "attempt every file and report all failures")
	flags.BoolVarP(&f.watch, "watch", "w", false, "keep running and process new files as they appear")
}

// apply overlays the flags the user set onto p.
func (f *batchFlags) apply(cmd *cobra.Command, p *domain.Profile) error {
	flags := cmd.Flags()

	if flags.Changed("columns") {
		sel, err := domain.NewSelection(f.columns...)
		if err != nil {
			return err
		}
		p.Selection = sel
	}
	if flags.Changed("order") {
		order, err := domain.ParseColumnOrder(f.order)
		if err != nil {
			return err
		}
		p.Options.Order = order
	}
	if flags.Changed("index") {
		p.Options.IncludeIndex = f.index
	}
	if flags.Changed("output-root") {
		p.Layout.Root = f.outputRoot
	}
	if flags.Changed("pattern") {
		p.Pattern = f.pattern
	}
	if flags.Changed("recursive") {
		p.Recursive = f.recursive
	}
	if f.workers < 1 {
		return fmt.Errorf("%w: --workers must be at least 1", domain.ErrInvalidInput)
	}
	return p.Validate()
}

// resolveProfile returns the configured profile, or the built-in one when
// no profile service is available.
func resolveProfile(name string) (domain.Profile, error) {
	if profileService == nil {
		return domain.DefaultProfile(name)
	}
	return profileService.Get(name)
}

// runBatch resolves the profile, applies flag overrides and runs or watches
// the batch over inputDir.
func runBatch(cmd *cobra.Command, profileName, inputDir string, f *batchFlags) error {
	if batchRunner == nil {
		return errors.New("batch service not configured")
	}

	p, err := resolveProfile(profileName)
	if err != nil {
		return err
	}
	if err := f.apply(cmd, &p); err != nil {
		return err
	}

	req := driving.BatchRequest{
		InputDir:  inputDir,
		Profile:   p,
		Workers:   f.workers,
		KeepGoing: f.keepGoing,
	}
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if f.watch {
		cmd.Printf("Watching %s for new files (Ctrl+C to stop)\n", inputDir)
		return batchRunner.Watch(ctx, req, func(r *domain.BatchReport, err error) {
			finishProgress()
			printReport(out, r)
			if err != nil {
				cmd.PrintErrf("Error: %v\n", err)
			}
		})
	}

	report, err := batchRunner.Run(ctx, req)
	finishProgress()
	printReport(out, report)
	return err
}

func finishProgress() {
	if progress != nil {
		progress.Finish()
	}
}
