package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashtoast/pkg/config"
)

type envFileConfig struct {
	Duration string `env:"TEST_ENVFILE_DURATION"`
	Position string `env:"TEST_ENVFILE_POSITION"`
}

type requiredEnvConfig struct {
	Required string `env:"TEST_ENVFILE_REQUIRED,required"`
}

func writeEnvFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		require.NoError(t, os.Unsetenv(k))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func TestLoadEnv_MultiplePaths(t *testing.T) {
	unsetEnv(t, "TEST_ENVFILE_DURATION", "TEST_ENVFILE_POSITION")
	config.ResetCache()

	base := writeEnvFile(t, ".env", "TEST_ENVFILE_DURATION=5s\nTEST_ENVFILE_POSITION=top-right\n")
	override := writeEnvFile(t, ".env.local", "TEST_ENVFILE_POSITION=bottom-left\n")

	require.NoError(t, config.LoadEnv(base, override))

	var cfg envFileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "5s", cfg.Duration)
	assert.Equal(t, "bottom-left", cfg.Position)
}

func TestLoadEnv_NonExistentPath(t *testing.T) {
	err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)

	assert.Panics(t, func() {
		config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	})
}

func TestForceReload(t *testing.T) {
	unsetEnv(t, "TEST_ENVFILE_REQUIRED")
	config.ResetCache()

	var cfg requiredEnvConfig
	require.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)

	t.Setenv("TEST_ENVFILE_REQUIRED", "present")

	// A failed parse is not cached, so a plain Load would also succeed now.
	require.NoError(t, config.ForceReload(&cfg))
	assert.Equal(t, "present", cfg.Required)

	t.Setenv("TEST_ENVFILE_REQUIRED", "changed")
	var cached requiredEnvConfig
	require.NoError(t, config.Load(&cached))
	assert.Equal(t, "present", cached.Required)

	require.NoError(t, config.ForceReload(&cached))
	assert.Equal(t, "changed", cached.Required)
}
