package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8089", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, 10000, cfg.Simulation.Iterations)
	assert.Equal(t, 10, cfg.Simulation.Turns)
	assert.Equal(t, 7, cfg.Simulation.HandSize)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  address: ":9000"
logging:
  level: debug
  format: console
database:
  url: "postgres://localhost/manasim"
simulation:
  iterations: 500
  turns: 8
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "postgres://localhost/manasim", cfg.Database.URL)
	assert.Equal(t, 500, cfg.Simulation.Iterations)
	assert.Equal(t, 8, cfg.Simulation.Turns)
	assert.Equal(t, 7, cfg.Simulation.HandSize, "unset keys keep defaults")
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8089", cfg.Server.Address)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("MANASIM_SERVER_ADDRESS", ":7777")
	t.Setenv("MANASIM_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Server.Address)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  iterations: -5\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
