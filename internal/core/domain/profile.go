package domain

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Built-in profile names.
const (
	ProfileFilter  = "filter"
	ProfileExtract = "extract"
)

// Profile bundles everything a batch needs besides the input directory.
type Profile struct {
	// Name identifies the profile (e.g., "filter", "extract").
	Name string

	// Selection is the fixed column list kept in every output.
	Selection Selection

	// Layout derives output paths.
	Layout Layout

	// Recursive walks the whole input tree when true,
	// otherwise only the top level of the input directory is globbed.
	Recursive bool

	// Pattern is a filepath.Match pattern applied to file base names.
	Pattern string

	// Options controls column order and the row-index column.
	Options ProjectOptions
}

// Validate checks the profile is usable for a batch.
func (p Profile) Validate() error {
	if p.Selection.IsZero() {
		return fmt.Errorf("%w: profile %q has no columns", ErrInvalidInput, p.Name)
	}
	if p.Layout.Kind != LayoutFiltered && p.Layout.Kind != LayoutExtracted {
		return fmt.Errorf("%w: profile %q has unknown layout %q", ErrInvalidInput, p.Name, p.Layout.Kind)
	}
	if p.Layout.Root == "" {
		return fmt.Errorf("%w: profile %q has no output root", ErrInvalidInput, p.Name)
	}
	if _, err := filepath.Match(p.Pattern, ""); err != nil {
		return fmt.Errorf("%w: profile %q pattern %q: %w", ErrInvalidInput, p.Name, p.Pattern, err)
	}
	return nil
}

// Matches reports whether a file base name is selected by the profile pattern.
// An empty pattern matches everything.
func (p Profile) Matches(name string) bool {
	if p.Pattern == "" {
		return true
	}
	ok, err := filepath.Match(p.Pattern, name)
	return err == nil && ok
}

// DefaultProfile returns a built-in profile by name.
func DefaultProfile(name string) (Profile, error) {
	switch name {
	case ProfileFilter:
		sel, _ := NewSelection("id", "append")
		return Profile{
			Name:      ProfileFilter,
			Selection: sel,
			Layout:    Layout{Kind: LayoutFiltered, Root: "filtered"},
			Recursive: true,
			Pattern:   "*",
			Options:   ProjectOptions{Order: OrderRequested},
		}, nil
	case ProfileExtract:
		sel, _ := NewSelection("bbs", "n", "id", "search", "search_false_pos")
		return Profile{
			Name:      ProfileExtract,
			Selection: sel,
			Layout:    Layout{Kind: LayoutExtracted, Root: "."},
			Recursive: false,
			Pattern:   "*.csv",
			Options:   ProjectOptions{Order: OrderRequested, IncludeIndex: true},
		}, nil
	default:
		return Profile{}, fmt.Errorf("profile %q: %w", name, ErrNotFound)
	}
}

// DefaultProfileNames lists the built-in profiles in sorted order.
func DefaultProfileNames() []string {
	names := []string{ProfileFilter, ProfileExtract}
	sort.Strings(names)
	return names
}
