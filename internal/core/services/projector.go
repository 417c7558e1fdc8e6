package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/colfilter/internal/core/domain"
	"github.com/custodia-labs/colfilter/internal/core/ports/driven"
	"github.com/custodia-labs/colfilter/internal/core/ports/driving"
	"github.com/custodia-labs/colfilter/internal/logger"
)

// Ensure Projector implements the interface.
var _ driving.Projector = (*Projector)(nil)

// Projector reads one table, keeps the selected columns and writes the result.
type Projector struct {
	reader driven.TableReader
	writer driven.TableWriter
}

// NewProjector creates a projector over the given table ports.
func NewProjector(reader driven.TableReader, writer driven.TableWriter) *Projector {
	return &Projector{
		reader: reader,
		writer: writer,
	}
}

// Project loads inputPath fully into memory, projects it onto sel and
// writes outputPath. Nothing is written when a selected column is missing.
func (p *Projector) Project(
	ctx context.Context,
	inputPath, outputPath string,
	sel domain.Selection,
	opts domain.ProjectOptions,
) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	table, err := p.reader.ReadTable(ctx, inputPath)
	if err != nil {
		return 0, err
	}

	projected, err := domain.Project(table, sel, opts)
	if err != nil {
		var mce *domain.MissingColumnError
		if errors.As(err, &mce) {
			mce.Path = inputPath
		}
		return 0, err
	}

	if err := p.writer.WriteTable(ctx, outputPath, projected); err != nil {
		return 0, err
	}

	logger.Debug("Projected %s -> %s (%d rows, columns %s)",
		inputPath, outputPath, projected.RowCount(), sel)
	return projected.RowCount(), nil
}
