package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1"

// ErrNoConfig is returned by LoadConfig when the directory has no config file.
var ErrNoConfig = errors.New("no config found")

// Config represents the flat monkeys configuration
type Config struct {
	Version    string `json:"version"`
	NoColor    bool   `json:"no_color,omitempty"`
	RandomSeed uint64 `json:"random_seed,omitempty"` // 0 means unseeded
	ShowArt    *bool  `json:"show_art,omitempty"`    // nil means true
	Dataset    string `json:"dataset,omitempty"`     // YAML dataset path; empty means builtin
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	showArt := true
	return &Config{
		Version: CurrentVersion,
		ShowArt: &showArt,
	}
}

// ArtEnabled reports whether species art should be drawn.
func (c *Config) ArtEnabled() bool {
	return c.ShowArt == nil || *c.ShowArt
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, ".monkeys", "config.json")
}

// LoadConfig reads .monkeys/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns an error wrapping ErrNoConfig if the file does not exist.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w in %s", ErrNoConfig, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// relative dataset paths are relative to the directory holding .monkeys
	if cfg.Dataset != "" && !filepath.IsAbs(cfg.Dataset) {
		cfg.Dataset = filepath.Join(dir, cfg.Dataset)
	}

	return cfg, nil
}

// LoadConfigOrDefault is LoadConfig that falls back to DefaultConfig when no
// file exists. Parse errors are still returned.
func LoadConfigOrDefault(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, ErrNoConfig) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	configDir := filepath.Join(dir, ".monkeys")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create .monkeys dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
