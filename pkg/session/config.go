package session

import "time"

// Config holds session settings.
type Config struct {
	// CookieName is the session cookie (default "sid").
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	// IdleTimeout expires sessions not seen for this long.
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	// MaxLifetime caps a session's age regardless of activity.
	MaxLifetime time.Duration `env:"SESSION_MAX_LIFETIME" envDefault:"24h"`
	// CleanupInterval is how often the memory store drops expired
	// sessions; 0 disables the sweep.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
	// SecureCookies sets the Secure flag on the session cookie.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`
}

// DefaultConfig returns the defaults used when no Config is given.
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		IdleTimeout:     30 * time.Minute,
		MaxLifetime:     24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
	}
}

// expiry is the idle deadline from now, capped at the absolute lifetime.
func (c Config) expiry(createdAt, now time.Time) time.Time {
	idle := now.Add(c.IdleTimeout)
	if limit := createdAt.Add(c.MaxLifetime); c.MaxLifetime > 0 && limit.Before(idle) {
		return limit
	}
	return idle
}

// NewFromConfig creates a Manager from cfg. opts are applied after it.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append([]Option{WithConfig(cfg)}, opts...)...)
}
