package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/custodia-labs/colfilter/internal/core/domain"
)

// printReport writes the batch summary and any per-file failures.
func printReport(w io.Writer, r *domain.BatchReport) {
	if r == nil {
		return
	}
	s := NewStyles(w, nil)

	fmt.Fprintf(w, "%s %s\n", s.Title.Render("Batch "+r.RunID), s.Muted.Render(r.Duration().String()))
	fmt.Fprintf(w, "  Profile: %s\n", r.Profile)
	fmt.Fprintf(w, "  Input:   %s\n", r.InputDir)
	if r.OutputDir != "" {
		fmt.Fprintf(w, "  Output:  %s\n", r.OutputDir)
	}
	if len(r.Files) == 0 {
		fmt.Fprintln(w, s.Muted.Render("  No input files found."))
		return
	}

	fmt.Fprintf(w, "  %s, %s, %s\n",
		s.Success.Render(fmt.Sprintf("%d written", r.Count(domain.OutcomeWritten))),
		s.Warning.Render(fmt.Sprintf("%d skipped", r.Count(domain.OutcomeSkipped))),
		s.Error.Render(fmt.Sprintf("%d failed", r.Count(domain.OutcomeFailed))))

	for _, f := range r.Files {
		if f.Outcome == domain.OutcomeFailed {
			fmt.Fprintf(w, "  %s %s\n", s.Error.Render("x"), failureLine(f))
		}
	}
}

// failureLine describes a failed file, naming the input once.
func failureLine(f domain.FileResult) string {
	if f.Err == nil {
		return f.Input
	}
	msg := f.Err.Error()
	if strings.Contains(msg, f.Input) {
		return msg
	}
	return f.Input + ": " + msg
}
