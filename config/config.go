// ABOUTME: Configuration management for tempo bounds, rendering and display settings
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

// Package config holds the settings the interactive player reads between prompts.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// Config holds all user-tunable settings
type Config struct {
	Tempo   TempoConfig   `toml:"tempo"`
	Render  RenderConfig  `toml:"render"`
	Display DisplayConfig `toml:"display"`
}

// TempoConfig bounds the tempo question asked before playback
type TempoConfig struct {
	Min uint32 `toml:"min"` // Lowest accepted BPM
	Max uint32 `toml:"max"` // Highest accepted BPM
}

// RenderConfig controls WAV output
type RenderConfig struct {
	SampleRate  int `toml:"sample_rate"`
	BeatsPerBar int `toml:"beats_per_bar"` // Accent every Nth beat
}

// DisplayConfig controls terminal styling
type DisplayConfig struct {
	Color     bool `toml:"color"`
	AltScreen bool `toml:"alt_screen"` // Now-playing view takes over the whole terminal
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() Config {
	return Config{
		Tempo: TempoConfig{
			Min: 20,
			Max: 400,
		},
		Render: RenderConfig{
			SampleRate:  44100,
			BeatsPerBar: 4,
		},
		Display: DisplayConfig{
			Color: true,
		},
	}
}

// Validate reports settings the prompts cannot work with
func (c Config) Validate() error {
	if c.Tempo.Min == 0 {
		return errors.New("tempo.min must be at least 1")
	}

	if c.Tempo.Min > c.Tempo.Max {
		return errors.Newf("tempo.min (%d) is greater than tempo.max (%d)", c.Tempo.Min, c.Tempo.Max)
	}

	if c.Render.SampleRate < 8000 {
		return errors.Newf("render.sample_rate %d is too low (minimum 8000)", c.Render.SampleRate)
	}

	if c.Render.BeatsPerBar < 1 {
		return errors.Newf("render.beats_per_bar must be at least 1, got %d", c.Render.BeatsPerBar)
	}

	return nil
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/symphoxy/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./symphoxy.toml"); err == nil {
		return "./symphoxy.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./symphoxy.toml"
	}

	return filepath.Join(home, ".config", "symphoxy", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// Missing keys keep their defaults; a missing file yields DefaultConfig without error
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), errors.Wrap(err, "failed to read config file")
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), errors.Wrap(err, "failed to parse config file")
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), errors.Wrapf(err, "invalid config %s", path)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}

	encodeErr := toml.NewEncoder(f).Encode(config)
	closeErr := f.Close()

	if encodeErr != nil {
		return errors.Wrap(encodeErr, "failed to write config")
	}

	if closeErr != nil {
		return errors.Wrap(closeErr, "failed to close config file")
	}

	return nil
}
