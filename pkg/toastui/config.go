package toastui

import (
	"time"

	"github.com/dmitrymomot/flashtoast/pkg/toast"
)

// Config controls how the client shows toasts.
type Config struct {
	// Duration is the display time for toasts without their own duration.
	// Zero keeps toasts until dismissed.
	Duration time.Duration

	// Position is where the stack is anchored.
	Position toast.Position

	// MaxVisible caps the stack; the oldest toasts are evicted first.
	MaxVisible int

	// PropKey is the navigation payload key toasts are read from.
	PropKey string

	// ExitDuration is how long the exit transition runs before the item is
	// removed, unless the renderer reports TransitionEnd sooner.
	ExitDuration time.Duration
}

// DefaultConfig mirrors toast.DefaultConfig.
func DefaultConfig() Config {
	return FromServerConfig(toast.DefaultConfig())
}

// FromServerConfig derives the client config from the server one so both
// sides agree on the payload key and display defaults.
func FromServerConfig(cfg toast.Config) Config {
	return Config{
		Duration:     cfg.Duration,
		Position:     cfg.Position,
		MaxVisible:   cfg.MaxVisible,
		PropKey:      cfg.PropKey,
		ExitDuration: 300 * time.Millisecond,
	}
}

// Option changes one Config field.
type Option func(*Config)

// WithDuration sets the default display time. Negative values are ignored.
func WithDuration(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.Duration = d
		}
	}
}

// WithPosition sets the stack anchor. Unknown positions are ignored.
func WithPosition(p toast.Position) Option {
	return func(c *Config) {
		if p.Valid() {
			c.Position = p
		}
	}
}

// WithMaxVisible sets the stack cap. Non-positive values are ignored.
func WithMaxVisible(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxVisible = n
		}
	}
}

// WithPropKey sets the payload key. Empty keys are ignored.
func WithPropKey(key string) Option {
	return func(c *Config) {
		if key != "" {
			c.PropKey = key
		}
	}
}

// WithExitDuration sets the exit transition length.
func WithExitDuration(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.ExitDuration = d
		}
	}
}

func (c Config) with(opts ...Option) Config {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
