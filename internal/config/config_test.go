package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rotate_speed: 3.5\nserve:\n  addr: \":9000\"\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.RotateSpeed)
	assert.Equal(t, ":9000", cfg.Serve.Addr)
	assert.Equal(t, DefaultServeMaxQueue, cfg.Serve.MaxQueue)
	assert.Equal(t, DefaultScrambleLength, cfg.ScrambleLength)
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rotate_speed: 0\n"), 0644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.PlayMode = "timekeeping"
	cfg.TickRateHz = 30
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"speed too high", func(c *Config) { c.RotateSpeed = 11 }},
		{"negative threshold", func(c *Config) { c.DragThreshold = -1 }},
		{"negative scramble", func(c *Config) { c.ScrambleLength = -2 }},
		{"zero tick rate", func(c *Config) { c.TickRateHz = 0 }},
		{"bad mode", func(c *Config) { c.PlayMode = "blitz" }},
		{"zero queue", func(c *Config) { c.Serve.MaxQueue = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidateRotateSpeedMessage(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotateSpeed = 20
	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "rotate_speed 20 outside [0.1, 10]")
	assert.NotContains(t, err.Error(), "%!")
}
