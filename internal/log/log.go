// Package log provides the logging infrastructure for wandergenie.
//
// Components receive a *slog.Logger via their constructors and add their
// own context with logger.With("component", ...). Nothing in the pipeline
// logs through a package-level global.
//
// Usage:
//
//	logger := log.New(log.Config{Level: slog.LevelDebug})
//	store := knowledge.NewStore(pool, embedder, logger.With("component", "knowledge"))
//
// In tests, use NewNop() or NewWithWriter with a bytes.Buffer to capture output.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config defines logger configuration options.
type Config struct {
	// Level sets the minimum log level. Default: slog.LevelInfo.
	Level slog.Level

	// JSON enables JSON format output. Default: false (text format).
	JSON bool

	// AddSource adds source file information to log entries.
	AddSource bool
}

// New creates a logger that writes to os.Stderr.
func New(cfg Config) *slog.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter creates a logger that writes to w.
// Useful for tests that need to inspect log output.
func NewWithWriter(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     cfg.Level,
		AddSource: cfg.AddSource,
	}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel maps a level name (debug, info, warn, error) to its
// slog.Level. Unknown names fall back to Info rather than erroring: a
// typo in LOG_LEVEL should not stop the program.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewNop creates a logger that discards all output. Test use only:
// production code should always log somewhere.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
