// Package logger builds the zerolog loggers used across financellm.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type contextKey string

const loggerKey contextKey = "logger"

// Options selects the level and output format.
type Options struct {
	Level  string // trace, debug, info, warn, error; default info
	Format string // "console" (default) or "json"
}

// New creates a logger writing to stderr.
func New(opts Options) zerolog.Logger {
	return NewWithWriter(os.Stderr, opts)
}

// NewWithWriter creates a logger writing to w.
func NewWithWriter(w io.Writer, opts Options) zerolog.Logger {
	if !strings.EqualFold(opts.Format, "json") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}
	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Nop returns a disabled logger, handy in tests.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

var defaultLogger = zerolog.Nop()

// SetDefault sets the logger FromContext falls back to. Call it once at
// startup, before any request is served.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
}

// FromContext returns the logger stored in ctx, or the default set with
// SetDefault (disabled until then).
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return &logger
	}
	logger := defaultLogger
	return &logger
}
