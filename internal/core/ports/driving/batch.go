package driving

import (
	"context"

	"github.com/custodia-labs/colfilter/internal/core/domain"
)

// BatchRunner drives the projector over a directory of inputs.
type BatchRunner interface {
	// Run projects every pending input once. Inputs whose output already
	// exists are skipped without being read.
	Run(ctx context.Context, req BatchRequest) (*domain.BatchReport, error)

	// Watch runs a batch, then re-runs it whenever inputs appear or change,
	// until ctx is cancelled. onBatch receives every report, including failed runs.
	Watch(ctx context.Context, req BatchRequest, onBatch func(*domain.BatchReport, error)) error
}

// BatchRequest describes one batch run.
type BatchRequest struct {
	// InputDir is the directory to enumerate.
	InputDir string

	// Profile supplies columns, layout and traversal.
	Profile domain.Profile

	// Workers bounds concurrent projections. Values below 2 run sequentially.
	Workers int

	// KeepGoing attempts every file and joins failures instead of stopping
	// at the first one.
	KeepGoing bool
}
