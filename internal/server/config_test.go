package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverridesAndDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  port = 9100
}

table {
  small_blind   = 25
  big_blind     = 50
  max_seats     = 6
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "localhost:9100", cfg.Address())
	assert.Equal(t, 25, cfg.Table.SmallBlind)
	assert.Equal(t, 50, cfg.Table.BigBlind)
	assert.Equal(t, 6, cfg.Table.MaxSeats)
	// Unset values fall back to defaults.
	assert.Equal(t, 1000, cfg.Table.StartingStack)
	assert.Equal(t, 30*time.Second, cfg.Table.TurnTimeout())
	assert.Equal(t, 2*time.Second, cfg.Table.StreetPause())

	stakes := cfg.Table.Stakes()
	assert.Equal(t, 25, stakes.SmallBlind)
	assert.Equal(t, 1000, stakes.StartingStack)
}

func TestLoadConfigRejectsBadHCL(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `server { port = `)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
		{"zero small blind", func(c *Config) { c.Table.SmallBlind = 0 }},
		{"big blind below small", func(c *Config) { c.Table.BigBlind = 3 }},
		{"stack below big blind", func(c *Config) { c.Table.StartingStack = 5 }},
		{"single seat", func(c *Config) { c.Table.MaxSeats = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
