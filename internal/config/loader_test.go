package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/turtacn/FireCircuit-Intelligence/pkg/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ReadsYAML(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9191
  mode: debug
engine:
  spare_fraction: 0.25
  parallelism: 4
cache:
  mapping_ttl: 1h
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, 0.25, cfg.Engine.SpareFraction)
	assert.Equal(t, 4, cfg.Engine.Parallelism)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Omitted fields take defaults.
	assert.Equal(t, DefaultSystemVoltage, cfg.Engine.SystemVoltage)
	assert.Equal(t, DefaultSpecTTL, cfg.Cache.SpecTTL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfigInvalid))
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfigFile(t, `
engine:
  spare_fraction: 1.5
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeConfigInvalid))
}

func TestLoadFromEnv_DefaultsOnly(t *testing.T) {
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultSpareFraction, cfg.Engine.SpareFraction)
}

func TestMustLoad_PanicsOnBrokenFile(t *testing.T) {
	path := writeConfigFile(t, "server: [not a mapping")
	assert.Panics(t, func() { MustLoad(path) })
}

func TestWatch_ReturnsInitialConfig(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 8181
`)
	cfg, err := Watch(path, func(*Config) {})
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Server.Port)
}
