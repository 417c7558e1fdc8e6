package driven

import "github.com/custodia-labs/colfilter/internal/core/domain"

// ProgressReporter receives per-file batch progress.
// Implementations must be safe for concurrent use; workers report in parallel.
type ProgressReporter interface {
	// FileStarted is called before an input is projected.
	FileStarted(input string)

	// FileDone is called once per input with its outcome, including skips.
	FileDone(result domain.FileResult)
}
