package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/ports/driven"
	"github.com/custodia-labs/colfilter/internal/core/ports/driving"
	"github.com/custodia-labs/colfilter/internal/logger"
)

// Ensure BatchService implements the interface.
var _ driving.BatchRunner = (*BatchService)(nil)

// DefaultSettleDelay is how long watch mode waits after the last change
// before re-running a batch.
const DefaultSettleDelay = 500 * time.Millisecond

// BatchService drives a Projector over every file in an input directory.
type BatchService struct {
	projector driving.Projector
	files     driven.FileSource
	progress  driven.ProgressReporter
	watcher   driven.ChangeWatcher
	newRunID  func() string
	now       func() time.Time
	settle    time.Duration
}

// NewBatchService creates a batch service.
// progress and watcher are optional and may be nil.
// newRunID may be nil, in which case run IDs are derived from the start time.
func NewBatchService(
	projector driving.Projector,
	files driven.FileSource,
	progress driven.ProgressReporter,
	watcher driven.ChangeWatcher,
	newRunID func() string,
) *BatchService {
	s := &BatchService{
		projector: projector,
		files:     files,
		progress:  progress,
		watcher:   watcher,
		newRunID:  newRunID,
		now:       time.Now,
		settle:    DefaultSettleDelay,
	}
	if s.newRunID == nil {
		s.newRunID = func() string {
			return fmt.Sprintf("run-%d", s.now().UnixNano())
		}
	}
	return s
}

// SetSettleDelay changes the watch-mode debounce delay.
func (s *BatchService) SetSettleDelay(d time.Duration) {
	if d > 0 {
		s.settle = d
	}
}

// workItem pairs an input with its derived output.
type workItem struct {
	input  string
	output string
}

// Run projects every pending file under req.InputDir.
//
// Without KeepGoing the first failure stops the batch and is returned;
// outputs already written stay on disk. With KeepGoing every file is
// attempted and all failures are joined.
func (s *BatchService) Run(ctx context.Context, req driving.BatchRequest) (*domain.BatchReport, error) {
	if req.InputDir == "" {
		return nil, fmt.Errorf("%w: input directory is required", domain.ErrInvalidInput)
	}
	if err := req.Profile.Validate(); err != nil {
		return nil, err
	}

	report := &domain.BatchReport{
		RunID:     s.newRunID(),
		Profile:   req.Profile.Name,
		InputDir:  req.InputDir,
		StartedAt: s.now(),
	}
	finish := func(err error) (*domain.BatchReport, error) {
		report.FinishedAt = s.now()
		return report, err
	}

	logger.Section("Batch " + report.RunID)
	logger.Info("Profile %s, input %s, columns %s",
		req.Profile.Name, req.InputDir, req.Profile.Selection)

	outDir, items, err := s.plan(ctx, req)
	report.OutputDir = outDir
	if err != nil {
		return finish(err)
	}
	logger.Info("Found %d input file(s), output directory %s", len(items), outDir)

	if len(items) == 0 {
		return finish(nil)
	}
	if err := s.files.EnsureDir(outDir); err != nil {
		return finish(&domain.IOError{Op: "mkdir", Path: outDir, Err: err})
	}

	results := make([]domain.FileResult, len(items))
	attempted := make([]bool, len(items))

	if req.Workers < 2 {
		err = s.runSequential(ctx, req, items, results, attempted)
	} else {
		err = s.runParallel(ctx, req, items, results, attempted)
	}

	for i := range items {
		if attempted[i] {
			report.Files = append(report.Files, results[i])
		}
	}

	if err == nil && req.KeepGoing {
		var errs []error
		for _, r := range report.Files {
			if r.Outcome == domain.OutcomeFailed {
				errs = append(errs, r.Err)
			}
		}
		err = errors.Join(errs...)
	}

	logger.Info("Batch %s done: %d written, %d skipped, %d failed",
		report.RunID,
		report.Count(domain.OutcomeWritten),
		report.Count(domain.OutcomeSkipped),
		report.Count(domain.OutcomeFailed))

	return finish(err)
}

func (s *BatchService) runSequential(
	ctx context.Context,
	req driving.BatchRequest,
	items []workItem,
	results []domain.FileResult,
	attempted []bool,
) error {
	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		results[i] = s.processOne(ctx, req.Profile, item)
		attempted[i] = true
		if results[i].Outcome == domain.OutcomeFailed && !req.KeepGoing {
			return results[i].Err
		}
	}
	return nil
}

func (s *BatchService) runParallel(
	ctx context.Context,
	req driving.BatchRequest,
	items []workItem,
	results []domain.FileResult,
	attempted []bool,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(req.Workers)

	for i := range items {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// A sibling may have failed while this item was queued.
			if gctx.Err() != nil {
				return nil
			}
			results[i] = s.processOne(gctx, req.Profile, items[i])
			attempted[i] = true
			if results[i].Outcome == domain.OutcomeFailed && !req.KeepGoing {
				return results[i].Err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// processOne skips an input whose output exists, otherwise projects it.
func (s *BatchService) processOne(ctx context.Context, p domain.Profile, item workItem) domain.FileResult {
	res := domain.FileResult{Input: item.input, Output: item.output}

	exists, err := s.files.Exists(item.output)
	switch {
	case err != nil:
		res.Outcome = domain.OutcomeFailed
		res.Err = &domain.IOError{Op: "stat", Path: item.output, Err: err}
	case exists:
		logger.Debug("Skipping %s: %s already exists", item.input, item.output)
		res.Outcome = domain.OutcomeSkipped
	default:
		s.started(item.input)
		rows, err := s.projector.Project(ctx, item.input, item.output, p.Selection, p.Options)
		switch {
		case err == nil:
			res.Outcome = domain.OutcomeWritten
			res.Rows = rows
		case errors.Is(err, fs.ErrExist):
			// Another writer finished this output first.
			logger.Warn("Output %s appeared during projection, leaving it", item.output)
			res.Outcome = domain.OutcomeSkipped
		default:
			res.Outcome = domain.OutcomeFailed
			res.Err = err
		}
	}

	s.done(res)
	return res
}

// plan enumerates inputs and derives their outputs. It fails before any
// write when two inputs would share an output path.
func (s *BatchService) plan(ctx context.Context, req driving.BatchRequest) (string, []workItem, error) {
	absIn, err := filepath.Abs(req.InputDir)
	if err != nil {
		return "", nil, &domain.IOError{Op: "resolve", Path: req.InputDir, Err: err}
	}

	layout := req.Profile.Layout
	outDir := layout.OutputDir(absIn)
	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return outDir, nil, &domain.IOError{Op: "resolve", Path: outDir, Err: err}
	}

	opts := driven.ListOptions{
		Recursive: req.Profile.Recursive,
		Match:     req.Profile.Matches,
	}
	if absRoot, err := filepath.Abs(layout.Root); err == nil && !isWithin(absIn, absRoot) {
		opts.ExcludeDirs = append(opts.ExcludeDirs, absRoot)
	}

	files, err := s.files.List(ctx, req.InputDir, opts)
	if err != nil {
		var ioErr *domain.IOError
		if errors.As(err, &ioErr) || errors.Is(err, context.Canceled) {
			return outDir, nil, err
		}
		return outDir, nil, &domain.IOError{Op: "list", Path: req.InputDir, Err: err}
	}

	claimed := make(map[string]string, len(files))
	items := make([]workItem, 0, len(files))
	for _, f := range files {
		name := filepath.Base(f)
		if absFile, err := filepath.Abs(f); err == nil &&
			filepath.Dir(absFile) == absOut && layout.IsOutput(name) {
			continue
		}

		out := filepath.Join(outDir, layout.OutputName(name))
		if prev, dup := claimed[out]; dup {
			return outDir, nil, fmt.Errorf("%w: %s and %s both map to %s",
				domain.ErrOutputConflict, prev, f, out)
		}
		claimed[out] = f
		items = append(items, workItem{input: f, output: out})
	}

	return outDir, items, nil
}

func (s *BatchService) started(input string) {
	if s.progress != nil {
		s.progress.FileStarted(input)
	}
}

func (s *BatchService) done(res domain.FileResult) {
	if s.progress != nil {
		s.progress.FileDone(res)
	}
}

// isWithin reports whether path equals dir or lies beneath it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
