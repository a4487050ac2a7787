package playback

import (
	"log/slog"
	"time"
)

const (
	DefaultBaseInterval = time.Second
	DefaultSpeed        = 1.0
)

type Option func(*Engine)

func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithBaseInterval sets the tick interval at speed 1.
func WithBaseInterval(d time.Duration) Option {
	return func(e *Engine) { e.base = d }
}

func WithSpeed(s float64) Option {
	return func(e *Engine) { e.speed = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}
