package domain

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Table is a tabular file held fully in memory.
// The first row of the file is the Header; Rows hold the data in file order.
type Table struct {
	// Header names the columns.
	Header []string

	// Rows holds the data records. Every row has len(Header) cells.
	Rows [][]string
}

// RowCount returns the number of data rows, excluding the header.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnOrder controls how projected columns are ordered.
type ColumnOrder string

const (
	// OrderRequested emits columns in the order the selection lists them.
	OrderRequested ColumnOrder = "requested"

	// OrderSource emits columns in the order they appear in the input header.
	OrderSource ColumnOrder = "source"
)

// ParseColumnOrder converts a string to a ColumnOrder.
// An empty string yields OrderRequested.
func ParseColumnOrder(s string) (ColumnOrder, error) {
	switch ColumnOrder(strings.ToLower(strings.TrimSpace(s))) {
	case "", OrderRequested:
		return OrderRequested, nil
	case OrderSource:
		return OrderSource, nil
	default:
		return "", fmt.Errorf("%w: column order %q (want %q or %q)",
			ErrInvalidInput, s, OrderRequested, OrderSource)
	}
}

// ProjectOptions tunes how a projection is rendered.
type ProjectOptions struct {
	// Order selects requested or source column order.
	Order ColumnOrder

	// IncludeIndex prepends an unnamed column holding the 0-based row position.
	IncludeIndex bool
}

// Project returns a new table containing only the selected columns.
// Row order, row count and cell values are preserved exactly.
// It fails with a *MissingColumnError when the header lacks any selected name.
func Project(t *Table, sel Selection, opts ProjectOptions) (*Table, error) {
	if sel.IsZero() {
		return nil, fmt.Errorf("%w: empty column selection", ErrInvalidInput)
	}

	idx, err := sel.Indexes(t.Header)
	if err != nil {
		return nil, err
	}
	if opts.Order == OrderSource {
		idx = slices.Clone(idx)
		slices.Sort(idx)
	}

	width := len(idx)
	if opts.IncludeIndex {
		width++
	}

	out := &Table{
		Header: make([]string, 0, width),
		Rows:   make([][]string, len(t.Rows)),
	}
	if opts.IncludeIndex {
		out.Header = append(out.Header, "")
	}
	for _, i := range idx {
		out.Header = append(out.Header, t.Header[i])
	}

	for r, row := range t.Rows {
		projected := make([]string, 0, width)
		if opts.IncludeIndex {
			projected = append(projected, strconv.Itoa(r))
		}
		for _, i := range idx {
			if i < len(row) {
				projected = append(projected, row[i])
			} else {
				projected = append(projected, "")
			}
		}
		out.Rows[r] = projected
	}

	return out, nil
}
