// Package config loads the cubesim application configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults used when the file or a key is missing.
const (
	DefaultRotateSpeed    = 1.0
	DefaultDragThreshold  = 0.5
	DefaultScrambleLength = 5
	DefaultTickRateHz     = 60
	DefaultPlayMode       = "practice"
	DefaultServeAddr      = "127.0.0.1:8765"
	DefaultServeMaxQueue  = 16

	minRotateSpeed = 0.1
	maxRotateSpeed = 10.0
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the application configuration.
type Config struct {
	RotateSpeed    float64     `yaml:"rotate_speed"`
	DragThreshold  float64     `yaml:"drag_threshold"`
	ScrambleLength int         `yaml:"scramble_length"`
	TickRateHz     int         `yaml:"tick_rate_hz"`
	PlayMode       string      `yaml:"play_mode"`
	DBPath         string      `yaml:"db_path"`
	Serve          ServeConfig `yaml:"serve"`
}

// ServeConfig configures the websocket host.
type ServeConfig struct {
	Addr     string `yaml:"addr"`
	MaxQueue int    `yaml:"max_queue"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		RotateSpeed:    DefaultRotateSpeed,
		DragThreshold:  DefaultDragThreshold,
		ScrambleLength: DefaultScrambleLength,
		TickRateHz:     DefaultTickRateHz,
		PlayMode:       DefaultPlayMode,
		Serve: ServeConfig{
			Addr:     DefaultServeAddr,
			MaxQueue: DefaultServeMaxQueue,
		},
	}
}

// DefaultPath returns ~/.cubesim/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubesim", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate fails on the first out-of-range value.
func (c *Config) Validate() error {
	switch {
	case c.RotateSpeed < minRotateSpeed || c.RotateSpeed > maxRotateSpeed:
		return fmt.Errorf("%w: rotate_speed %g outside [%g, %g]", ErrInvalidConfig, c.RotateSpeed, minRotateSpeed, maxRotateSpeed)
	case c.DragThreshold < 0:
		return fmt.Errorf("%w: drag_threshold %g is negative", ErrInvalidConfig, c.DragThreshold)
	case c.ScrambleLength < 0:
		return fmt.Errorf("%w: scramble_length %d is negative", ErrInvalidConfig, c.ScrambleLength)
	case c.TickRateHz <= 0:
		return fmt.Errorf("%w: tick_rate_hz must be positive", ErrInvalidConfig)
	case c.PlayMode != "practice" && c.PlayMode != "timekeeping":
		return fmt.Errorf("%w: play_mode %q", ErrInvalidConfig, c.PlayMode)
	case c.Serve.MaxQueue <= 0:
		return fmt.Errorf("%w: serve.max_queue must be positive", ErrInvalidConfig)
	}
	return nil
}
