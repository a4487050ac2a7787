package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// New creates the application logger. Text goes to stderr so stdout stays
// free for command output. When jsonSink is non-nil every record is also
// written to it as JSON.
func New(level slog.Level, jsonSink io.Writer) *slog.Logger {
	return newLogger(os.Stderr, level, jsonSink)
}

func newLogger(w io.Writer, level slog.Level, jsonSink io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Standardize 'error' key to 'err'
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}
	handlers := []slog.Handler{slog.NewTextHandler(w, opts)}
	if jsonSink != nil {
		handlers = append(handlers, slog.NewJSONHandler(jsonSink, opts))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel accepts debug, info, warn or error in any case.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("logging: unknown level %q", s)
}
