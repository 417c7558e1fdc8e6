package domain

import "time"

// Outcome is the result of one file within a batch.
type Outcome string

const (
	// OutcomeWritten means the projection ran and the output was created.
	OutcomeWritten Outcome = "written"

	// OutcomeSkipped means the output already existed; the input was not read.
	OutcomeSkipped Outcome = "skipped"

	// OutcomeFailed means the projection failed for this file.
	OutcomeFailed Outcome = "failed"
)

// FileResult records what happened to one input file.
type FileResult struct {
	// Input is the path of the input file.
	Input string

	// Output is the derived output path.
	Output string

	// Outcome is written, skipped or failed.
	Outcome Outcome

	// Rows is the number of data rows written. Zero unless written.
	Rows int

	// Err is set when Outcome is failed.
	Err error
}

// BatchReport summarises one batch run.
type BatchReport struct {
	// RunID uniquely identifies the run in logs.
	RunID string

	// Profile is the profile name used.
	Profile string

	// InputDir is the directory that was enumerated.
	InputDir string

	// OutputDir is the directory outputs were written to.
	OutputDir string

	// Files holds one entry per attempted or skipped input, in enumeration order.
	// Files never attempted because the batch stopped early are omitted.
	Files []FileResult

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run ended.
	FinishedAt time.Time
}

// Count returns how many files ended with the given outcome.
func (r *BatchReport) Count(o Outcome) int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome == o {
			n++
		}
	}
	return n
}

// Duration returns how long the run took.
func (r *BatchReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
