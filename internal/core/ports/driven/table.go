package driven

import (
	"context"

	"github.com/custodia-labs/colfilter/internal/core/domain"
)

// TableReader loads tabular files.
type TableReader interface {
	// ReadTable reads the whole file at path. The first record is the header.
	// Failures are reported as *domain.IOError.
	ReadTable(ctx context.Context, path string) (*domain.Table, error)
}

// TableWriter persists tabular files.
type TableWriter interface {
	// WriteTable writes t to path. The parent directory must exist.
	// Implementations must be atomic: path either does not exist or holds
	// the complete table, even if the process dies mid-write.
	WriteTable(ctx context.Context, path string, t *domain.Table) error
}
