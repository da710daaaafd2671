// Package config loads and saves the app-level TOML configuration. This is
// cross-project state (the last-used project, log level, mover tuning); all
// per-project state lives in the project's own database.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config is the content of ~/.voicesort/config.toml.
type Config struct {
	LastProject   string `toml:"last_project"`
	LogLevel      string `toml:"log_level"`
	MoveAttempts  int    `toml:"move_attempts"`
	MoveBackoffMS int    `toml:"move_backoff_ms"`
	// SniffAudio enables magic-byte verification of scanned files in
	// addition to the extension allow-list.
	SniffAudio bool `toml:"sniff_audio"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		LogLevel:      "info",
		MoveAttempts:  10,
		MoveBackoffMS: 50,
	}
}

// MoveBackoff returns the configured backoff as a duration.
func (c Config) MoveBackoff() time.Duration {
	return time.Duration(c.MoveBackoffMS) * time.Millisecond
}

// Load reads the config at path. A missing file yields Default(); a present
// but unparseable file is an error.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	raw, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
