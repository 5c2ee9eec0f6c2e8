// Package logger builds the charmbracelet/log loggers used by the CLI.
package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// New creates a stderr logger with the given prefix.
func New(prefix string, verbose bool) *log.Logger {
	return NewWithWriter(os.Stderr, prefix, verbose)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, prefix string, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           level,
	})
}

// Discard returns a logger that drops everything, for use under the TUI.
func Discard() *log.Logger {
	return NewWithWriter(io.Discard, "", false)
}
