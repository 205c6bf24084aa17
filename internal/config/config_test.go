package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/migillett/TranscodeTycoonGame/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "/api", cfg.Server.Endpoint)
	assert.Equal(t, 25, cfg.Game.JobCapacity)
	assert.Equal(t, 40.0, cfg.Game.InitialFunds)
	assert.Equal(t, 6*time.Hour, cfg.Game.JobMaxAge)
	assert.Equal(t, 5*time.Second, cfg.Game.DeletePenalty)
	assert.Equal(t, 0, cfg.Game.MaxHardwareLevel)
	assert.False(t, cfg.Snapshot.Disabled)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: "9090"
game:
  job_capacity: 5
  initial_funds: 100.0
snapshot:
  disabled: true
`), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Game.JobCapacity)
	assert.Equal(t, 100.0, cfg.Game.InitialFunds)
	assert.True(t, cfg.Snapshot.Disabled)

	// unset fields fall back to defaults
	assert.Equal(t, "/api", cfg.Server.Endpoint)
	assert.Equal(t, 6*time.Hour, cfg.Game.JobMaxAge)
	assert.Equal(t, 5*time.Second, cfg.Game.DeletePenalty)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
