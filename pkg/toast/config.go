package toast

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/flashtoast/pkg/config"
)

// Config holds toast settings shared by the server and the client layer.
type Config struct {
	// Duration is the default auto-dismiss time sent to the client
	Duration time.Duration `env:"TOAST_DURATION" envDefault:"5s" yaml:"duration"`

	// Position is the screen anchor toasts are stacked at
	Position Position `env:"TOAST_POSITION" envDefault:"top-right" yaml:"position"`

	// MaxVisible caps how many toasts are shown at once
	MaxVisible int `env:"TOAST_MAX_VISIBLE" envDefault:"5" yaml:"max_visible"`

	// PropKey is the payload key the toast list is shared under
	PropKey string `env:"TOAST_PROP_KEY" envDefault:"toasts" yaml:"prop_key"`

	// SessionKey is the session key toasts are flashed under
	SessionKey string `env:"TOAST_SESSION_KEY" envDefault:"_toasts" yaml:"session_key"`
}

// DefaultConfig returns the default toast configuration.
func DefaultConfig() Config {
	return Config{
		Duration:   5 * time.Second,
		Position:   TopRight,
		MaxVisible: 5,
		PropKey:    DefaultPropKey,
		SessionKey: DefaultSessionKey,
	}
}

// Validate reports every problem with the configuration.
func (c Config) Validate() error {
	var errs []error
	if !c.Position.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidPosition, c.Position))
	}
	if c.MaxVisible <= 0 {
		errs = append(errs, fmt.Errorf("%w: max visible must be > 0, got %d", ErrInvalidConfig, c.MaxVisible))
	}
	if c.PropKey == "" {
		errs = append(errs, fmt.Errorf("%w: empty prop key", ErrInvalidConfig))
	}
	if c.SessionKey == "" {
		errs = append(errs, fmt.Errorf("%w: empty session key", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// LoadConfig reads the configuration from the environment (and .env).
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadConfigFile reads a YAML file on top of DefaultConfig. Keys missing from
// the file keep their defaults.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := config.LoadFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}
