package services

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/ports/driving"
	"github.com/custodia-labs/colfilter/internal/logger"
)

// ErrWatchUnavailable indicates no change watcher was configured.
var ErrWatchUnavailable = errors.New("change watcher not configured")

// Watch runs one batch, then re-runs it each time matching inputs settle
// after a change. Failed batches are reported to onBatch and watching
// continues. It returns nil when ctx is cancelled.
func (s *BatchService) Watch(
	ctx context.Context,
	req driving.BatchRequest,
	onBatch func(*domain.BatchReport, error),
) error {
	if s.watcher == nil {
		return ErrWatchUnavailable
	}
	if err := req.Profile.Validate(); err != nil {
		return err
	}

	changes, err := s.watcher.Watch(ctx, req.InputDir, req.Profile.Recursive)
	if err != nil {
		return err
	}

	// Writes into the output directory must not retrigger the batch.
	outDir := ""
	if absIn, err := filepath.Abs(req.InputDir); err == nil {
		outDir, _ = filepath.Abs(req.Profile.Layout.OutputDir(absIn))
	}

	run := func() {
		report, err := s.Run(ctx, req)
		if onBatch != nil && ctx.Err() == nil {
			onBatch(report, err)
		}
	}

	run()

	timer := time.NewTimer(s.settle)
	timer.Stop()
	defer timer.Stop()
	pending := false

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-changes:
			if !ok {
				return nil
			}
			if !s.relevant(req.Profile, outDir, path) {
				continue
			}
			logger.Debug("Change detected: %s", path)
			timer.Reset(s.settle)
			pending = true
		case <-timer.C:
			if pending {
				pending = false
				run()
			}
		}
	}
}

// relevant reports whether a changed path should trigger a new batch.
func (s *BatchService) relevant(p domain.Profile, outDir, path string) bool {
	name := filepath.Base(path)
	if !p.Matches(name) {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return true
	}
	return !(filepath.Dir(abs) == outDir && p.Layout.IsOutput(name))
}
