package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// parsed holds one value per configuration type.
	parsed sync.Map // reflect.Type -> any

	// parseMu serialises first-time parsing so concurrent callers of the
	// same type see a single env.Parse.
	parseMu sync.Mutex

	dotenvOnce sync.Once
)

// Load fills v from the environment. The default .env file is read once per
// process if present. A type is parsed on its first Load and served from the
// cache afterwards; failed parses are not cached.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() { _ = godotenv.Load() })
	if v == nil {
		return ErrNilPointer
	}

	key := reflect.TypeFor[T]()
	if cached, ok := parsed.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	parseMu.Lock()
	defer parseMu.Unlock()

	if cached, ok := parsed.Load(key); ok {
		*v = cached.(T)
		return nil
	}

	var out T
	if err := env.Parse(&out); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	parsed.Store(key, out)
	*v = out
	return nil
}

// MustLoad is Load for configuration the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}

// ForceReload drops the cached value for T and parses the environment again.
func ForceReload[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	parsed.Delete(reflect.TypeFor[T]())
	return Load(v)
}

// ResetCache forgets every cached configuration.
func ResetCache() {
	parsed.Range(func(k, _ any) bool {
		parsed.Delete(k)
		return true
	})
}
