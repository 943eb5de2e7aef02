// Package logger provides a configured zerolog instance.
package logger

import (
	"github.com/ilindan-dev/fanout-notifier/internal/config"
	"github.com/rs/zerolog"
	"io"
	"os"
)

// NewLogger creates a new configured instance of zerolog.Logger.
// It reads the level, format and output from the config and adds default fields like service name and caller.
func NewLogger(cfg *config.Config) (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Logger.Level)
	if err != nil || level == zerolog.NoLevel {
		// Default to info level if config is invalid or missing
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stdout
	if cfg.Logger.Output == "stderr" {
		out = os.Stderr
	}

	logger := New(out, cfg.Logger.Format, level)
	return &logger, nil
}

// New builds the logger on an arbitrary writer. Any format other than "json"
// produces human-readable console output.
func New(out io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format != "json" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	return zerolog.New(out).With().
		Timestamp().                       // Adds "time" field
		Str("service", "fanout-notifier"). // Adds "service" field for context
		Caller().                          // Adds "caller":"/path/to/file.go:line"
		Logger().
		Level(level) // Set the minimum log level
}
