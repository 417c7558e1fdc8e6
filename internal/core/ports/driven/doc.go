// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TableReader: Loads a whole tabular file into memory (CSV)
//   - TableWriter: Writes a table to its final path atomically
//   - FileSource: Enumerates input files and answers existence checks
//   - ConfigStore: Application configuration (profiles)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ProgressReporter: Per-file progress output. Without it, the batch is silent.
//   - ChangeWatcher: Filesystem change notifications. Without it, watch mode is unavailable.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
