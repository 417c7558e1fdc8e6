package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent projection failures.
// Callers match them with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingColumn indicates a selected column is absent from an input header.
	ErrMissingColumn = errors.New("missing column")

	// ErrIO indicates an input could not be read or an output could not be written.
	ErrIO = errors.New("i/o failure")

	// ErrOutputConflict indicates two inputs in one batch derive the same output path.
	ErrOutputConflict = errors.New("output conflict")
)

// MissingColumnError reports the selected columns absent from a file's header.
type MissingColumnError struct {
	// Path is the input file, when known.
	Path string

	// Missing lists the absent column names in selection order.
	Missing []string
}

func (e *MissingColumnError) Error() string {
	cols := strings.Join(e.Missing, ", ")
	if e.Path == "" {
		return fmt.Sprintf("missing column(s): %s", cols)
	}
	return fmt.Sprintf("%s: missing column(s): %s", e.Path, cols)
}

// Is makes errors.Is(err, ErrMissingColumn) hold.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// IOError wraps a filesystem or codec failure on a single path.
type IOError struct {
	// Op is the failed operation, e.g. "read" or "write".
	Op string

	// Path is the file involved.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrIO) hold in addition to the wrapped cause.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
