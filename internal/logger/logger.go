// Package logger provides leveled logging for the colfilter CLI.
// Debug, Info, Warn and Section output only appears with --verbose.
// Error output is always written.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level identifies the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the bracketed prefix used for the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "[DEBUG]"
	case LevelInfo:
		return "[INFO]"
	case LevelWarn:
		return "[WARN]"
	case LevelError:
		return "[ERROR]"
	default:
		return fmt.Sprintf("[LEVEL(%d)]", int(l))
	}
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func enabled(l Level) bool {
	return verbose || l >= LevelError
}

func logf(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled(l) {
		return
	}
	fmt.Fprintf(output, l.String()+" "+format+"\n", args...)
}

// Debug logs per-file detail.
func Debug(format string, args ...any) {
	logf(LevelDebug, format, args...)
}

// Info logs batch-level events.
func Info(format string, args ...any) {
	logf(LevelInfo, format, args...)
}

// Warn logs recoverable problems.
func Warn(format string, args ...any) {
	logf(LevelWarn, format, args...)
}

// Error logs a failure regardless of verbosity.
func Error(format string, args ...any) {
	logf(LevelError, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
