// Package logging builds the diagnostic logger used by the CLI.
package logging

import (
	"io"
	"log/slog"
)

// LevelFromVerbose maps the --verbose flag to a level. Warnings and errors
// are always shown.
func LevelFromVerbose(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// New creates a text logger writing to w.
func New(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: LevelFromVerbose(verbose)}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
