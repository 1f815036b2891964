// Package logging configures the zerolog.Logger shared by every package
// in this process. cmd/server owns the root logger; every other
// package takes a zerolog.Logger as a constructor argument rather than
// reaching for a global, so tests can inject a silent logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a configured root logger. format "json" emits structured
// JSON (the production default); any other value (including "") emits
// zerolog's human-readable console writer, matching the teacher's
// plain-text log.Printf output during local development.
func New(format string) zerolog.Logger {
	var w io.Writer = os.Stderr
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything, for use in tests that
// don't want log noise.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
