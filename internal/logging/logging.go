// Package logging builds the charmbracelet/log loggers used across tada.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileName is the log file written inside the data directory.
const FileName = "tada.log"

// DefaultLevel keeps the CLI quiet unless something actually failed.
const DefaultLevel = log.ErrorLevel

// New returns a text logger writing to w.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:  ParseLevel(level),
		Prefix: "tada",
	})
}

// InstallDefault makes logger the slog default, so packages logging through
// log/slog end up in the same place. The returned func puts the previous
// default back.
func InstallDefault(logger *log.Logger) (restore func()) {
	prev := slog.Default()
	slog.SetDefault(slog.New(logger))
	return func() { slog.SetDefault(prev) }
}

// Discard is a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// ParseLevel falls back to DefaultLevel for unknown names.
func ParseLevel(level string) log.Level {
	if level == "warning" {
		level = "warn"
	}
	l, err := log.ParseLevel(level)
	if err != nil {
		return DefaultLevel
	}
	return l
}

// OpenFile opens dir/tada.log for appending, creating dir as needed.
func OpenFile(dir string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
