package driving

import (
	"context"

	"github.com/custodia-labs/colfilter/internal/core/domain"
)

// Projector projects a single tabular file onto a column selection.
type Projector interface {
	// Project reads inputPath, keeps only the selected columns and writes
	// outputPath. It returns the number of data rows written.
	// A missing column fails with *domain.MissingColumnError and writes nothing.
	Project(
		ctx context.Context,
		inputPath, outputPath string,
		sel domain.Selection,
		opts domain.ProjectOptions,
	) (int, error)
}
