package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ProgressReporter = (*Progress)(nil)

// Progress reports per-file batch progress. On a terminal it redraws a
// single counter line; otherwise it prints one line per file.
type Progress struct {
	mu     sync.Mutex
	w      io.Writer
	live   bool
	styles *Styles

	written int
	skipped int
	failed  int
}

// NewProgress creates a reporter writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{
		w:      w,
		live:   isTerminal(w),
		styles: NewStyles(w, nil),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// FileStarted shows the file being projected on a terminal.
func (p *Progress) FileStarted(input string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live {
		fmt.Fprintf(p.w, "\r\033[K%s %s", p.counter(), p.styles.Muted.Render(input))
	}
}

// FileDone records one outcome.
func (p *Progress) FileDone(r domain.FileResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch r.Outcome {
	case domain.OutcomeWritten:
		p.written++
	case domain.OutcomeSkipped:
		p.skipped++
	case domain.OutcomeFailed:
		p.failed++
	}

	if p.live {
		fmt.Fprintf(p.w, "\r\033[K%s", p.counter())
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.styles.Outcome(r.Outcome).Render(fmt.Sprintf("%-7s", r.Outcome)), r.Input)
}

// Finish ends the live line and resets the counters for the next batch.
func (p *Progress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.live && p.written+p.skipped+p.failed > 0 {
		fmt.Fprintln(p.w)
	}
	p.written, p.skipped, p.failed = 0, 0, 0
}

func (p *Progress) counter() string {
	return fmt.Sprintf("[%d written, %d skipped, %d failed]", p.written, p.skipped, p.failed)
}
