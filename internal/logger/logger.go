// Package logger provides verbose logging for the CultureBridge CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow the adaptation pipeline.
// Run-scoped loggers prefix every line with the run's correlation ID so
// concurrent pipeline runs can be told apart.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

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

// SetOutput sets the output writer for verbose logs. Passing nil
// restores the default of os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

func emit(level, prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	if prefix != "" {
		fmt.Fprintf(output, "["+level+"] ["+prefix+"] "+format+"\n", args...)
		return
	}
	fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit("DEBUG", "", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit("INFO", "", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit("WARN", "", format, args...)
}

// RunLogger tags every message with a pipeline run's correlation ID.
type RunLogger struct {
	runID string
}

// Run returns a logger scoped to one pipeline run.
func Run(runID string) *RunLogger {
	return &RunLogger{runID: runID}
}

// Debug prints a run-scoped debug message.
func (l *RunLogger) Debug(format string, args ...any) {
	emit("DEBUG", l.runID, format, args...)
}

// Info prints a run-scoped informational message.
func (l *RunLogger) Info(format string, args ...any) {
	emit("INFO", l.runID, format, args...)
}

// Warn prints a run-scoped warning message.
func (l *RunLogger) Warn(format string, args ...any) {
	emit("WARN", l.runID, format, args...)
}

// Stage prints a stage transition header for a run.
func (l *RunLogger) Stage(number, total int, name string) {
	emit("INFO", l.runID, "stage %d/%d: %s", number, total, name)
}
