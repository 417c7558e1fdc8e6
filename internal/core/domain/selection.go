package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Selection is an ordered, non-empty set of column names known in advance.
// The zero value selects nothing and is rejected by Project.
type Selection struct {
	names []string
}

// NewSelection builds a Selection from names, preserving their order.
// Names are matched against headers verbatim, so surrounding whitespace matters.
func NewSelection(names ...string) (Selection, error) {
	if len(names) == 0 {
		return Selection{}, fmt.Errorf("%w: at least one column is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			return Selection{}, fmt.Errorf("%w: blank column name", ErrInvalidInput)
		}
		if _, dup := seen[n]; dup {
			return Selection{}, fmt.Errorf("%w: duplicate column %q", ErrInvalidInput, n)
		}
		seen[n] = struct{}{}
	}

	return Selection{names: slices.Clone(names)}, nil
}

// Names returns a copy of the selected column names in order.
func (s Selection) Names() []string {
	return slices.Clone(s.names)
}

// Len returns the number of selected columns.
func (s Selection) Len() int {
	return len(s.names)
}

// IsZero reports whether the selection is empty.
func (s Selection) IsZero() bool {
	return len(s.names) == 0
}

// String renders the selection as a comma-separated list.
func (s Selection) String() string {
	return strings.Join(s.names, ",")
}

// Indexes resolves each selected name to its position in header, in
// selection order. When a header repeats a name, the first occurrence wins.
// If any names are absent, it returns a *MissingColumnError listing all of them.
func (s Selection) Indexes(header []string) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, ok := pos[h]; !ok {
			pos[h] = i
		}
	}

	idx := make([]int, 0, len(s.names))
	var missing []string
	for _, n := range s.names {
		i, ok := pos[n]
		if !ok {
			missing = append(missing, n)
			continue
		}
		idx = append(idx, i)
	}

	if len(missing) > 0 {
		return nil, &MissingColumnError{Missing: missing}
	}
	return idx, nil
}
