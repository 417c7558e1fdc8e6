package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LayoutKind identifies an output naming convention.
type LayoutKind string

const (
	// LayoutFiltered writes <root>/<input-dir-name>/fil-<name>.
	LayoutFiltered LayoutKind = "filtered"

	// LayoutExtracted writes <root>/extracted-<name>.csv.
	LayoutExtracted LayoutKind = "extracted"
)

const (
	filteredPrefix  = "fil-"
	extractedPrefix = "extracted-"
	extractedSuffix = ".csv"
)

// ParseLayoutKind converts a string to a LayoutKind.
func ParseLayoutKind(s string) (LayoutKind, error) {
	switch LayoutKind(strings.ToLower(strings.TrimSpace(s))) {
	case LayoutFiltered:
		return LayoutFiltered, nil
	case LayoutExtracted:
		return LayoutExtracted, nil
	default:
		return "", fmt.Errorf("%w: layout %q (want %q or %q)",
			ErrInvalidInput, s, LayoutFiltered, LayoutExtracted)
	}
}

// Layout maps input files to output paths.
// Presence of the derived output path on disk marks the input as done.
type Layout struct {
	// Kind selects the naming convention.
	Kind LayoutKind

	// Root is the directory outputs are written under.
	Root string
}

// OutputDir returns the directory that receives outputs for inputDir.
// Filtered layouts mirror one level of the input directory name under Root.
func (l Layout) OutputDir(inputDir string) string {
	if l.Kind == LayoutFiltered {
		return filepath.Join(l.Root, filepath.Base(filepath.Clean(inputDir)))
	}
	return filepath.Clean(l.Root)
}

// OutputName returns the output file name for an input file name.
func (l Layout) OutputName(name string) string {
	if l.Kind == LayoutFiltered {
		return filteredPrefix + name
	}
	return extractedPrefix + name + extractedSuffix
}

// OutputPath derives the output path for inputPath found under inputDir.
// Nested inputs are flattened: only the base name is kept.
func (l Layout) OutputPath(inputDir, inputPath string) string {
	return filepath.Join(l.OutputDir(inputDir), l.OutputName(filepath.Base(inputPath)))
}

// IsOutput reports whether a file name looks like one this layout produces.
// Batches use it to avoid projecting their own outputs.
func (l Layout) IsOutput(name string) bool {
	if l.Kind == LayoutFiltered {
		return strings.HasPrefix(name, filteredPrefix)
	}
	return strings.HasPrefix(name, extractedPrefix) && strings.HasSuffix(name, extractedSuffix)
}
