// Package domain defines the core entities for colfilter.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Table: A tabular file held in memory (header plus rows)
//   - Selection: The ordered column names a projection keeps
//   - Layout: The naming convention that maps an input to its output path
//   - Profile: A named bundle of selection, layout and traversal settings
//   - BatchReport: The per-file outcome of one batch run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
