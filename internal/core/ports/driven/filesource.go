package driven

import "context"

// ListOptions narrows a FileSource listing.
type ListOptions struct {
	// Recursive descends into subdirectories when true.
	Recursive bool

	// Match filters files by base name. Nil accepts every file.
	Match func(name string) bool

	// ExcludeDirs are never descended into nor listed from.
	ExcludeDirs []string
}

// FileSource enumerates input files and inspects output locations.
type FileSource interface {
	// List returns regular, non-hidden files under root in lexical order.
	List(ctx context.Context, root string, opts ListOptions) ([]string, error)

	// Exists reports whether a file is present at path.
	Exists(path string) (bool, error)

	// EnsureDir creates dir and any missing parents.
	EnsureDir(dir string) error
}
