// Package logging builds the structured key/value loggers used by erpdesk.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// logFileName is the file the interactive browser logs to; its stdout
// belongs to the terminal UI.
const logFileName = "erpdesk.log"

// New creates a logger writing to w at the named level ("debug", "info",
// "warn", "error"). An unknown level is reported and DefaultLevel is used.
func New(w io.Writer, level string) (*log.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.WarnLevel
		err = fmt.Errorf("parse log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           lvl,
		Prefix:          "erpdesk",
	})
	return logger, err
}

// Discard returns a logger that drops everything, for tests and defaults.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OpenFile creates a logger appending to erpdesk.log inside dir. The
// returned closer releases the file.
func OpenFile(dir, level string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := New(f, level)
	return logger, f, err
}
