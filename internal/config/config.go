// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultBackend     = BackendSpeaker
	DefaultA4          = 440.0
	DefaultSampleRate  = 44100
	DefaultSynthLength = time.Second
	DefaultVolume      = 0.5
	DefaultBeepLength  = 299 * time.Millisecond
	DefaultBeepGap     = 100 * time.Millisecond
	DefaultBeepMinHz   = 37
	DefaultBeepMaxHz   = 32767
	DefaultSong        = "theme"
)

// Tone backends.
const (
	BackendSpeaker = "speaker"
	BackendPulse   = "pulse"
	BackendBeep    = "beep"
)

// ValidBackends returns all valid backend names.
func ValidBackends() []string {
	return []string{BackendSpeaker, BackendPulse, BackendBeep}
}

// Config represents the pitchplay configuration.
type Config struct {
	Tuning TuningConfig `toml:"tuning"`
	Output OutputConfig `toml:"output"`
	Synth  SynthConfig  `toml:"synth"`
	Beep   BeepConfig   `toml:"beep"`
	Songs  SongsConfig  `toml:"songs"`
}

// TuningConfig holds the pitch reference.
type TuningConfig struct {
	A4 float64 `toml:"a4"` // Reference frequency in Hz
}

// OutputConfig selects how tones are emitted.
type OutputConfig struct {
	Backend string `toml:"backend"` // speaker, pulse, beep
}

// SynthConfig holds buffer synthesis settings (speaker and pulse backends).
type SynthConfig struct {
	SampleRate int      `toml:"sample_rate"`
	Duration   Duration `toml:"duration"` // Length of each note
	Volume     float64  `toml:"volume"`   // 0.0-1.0 of full scale
}

// BeepConfig holds platform tone settings.
type BeepConfig struct {
	Duration Duration `toml:"duration"` // Length of each tone
	Gap      Duration `toml:"gap"`      // Silence after each tone
	MinHz    int      `toml:"min_hz"`
	MaxHz    int      `toml:"max_hz"`
	Strict   bool     `toml:"strict"` // Fail instead of skipping out-of-range notes
}

// SongsConfig holds song lookup settings.
type SongsConfig struct {
	Dir     string `toml:"dir"`     // Directory searched for sequence files
	Default string `toml:"default"` // Song played when no notes are given
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Tuning: TuningConfig{
			A4: DefaultA4,
		},
		Output: OutputConfig{
			Backend: DefaultBackend,
		},
		Synth: SynthConfig{
			SampleRate: DefaultSampleRate,
			Duration:   Duration(DefaultSynthLength),
			Volume:     DefaultVolume,
		},
		Beep: BeepConfig{
			Duration: Duration(DefaultBeepLength),
			Gap:      Duration(DefaultBeepGap),
			MinHz:    DefaultBeepMinHz,
			MaxHz:    DefaultBeepMaxHz,
			Strict:   false,
		},
		Songs: SongsConfig{
			Dir:     "", // Resolved to SongsPath() when empty
			Default: DefaultSong,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "pitchplay", "config.toml")
}

// DataPath returns the path to the data directory.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share.
func DataPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "pitchplay")
}

// SongsPath returns the default directory for user sequence files.
func SongsPath() string {
	return filepath.Join(DataPath(), "songs")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	// Start with defaults
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Tuning.A4 <= 0 {
		return fmt.Errorf("tuning a4 must be positive, got %v", c.Tuning.A4)
	}

	if !slices.Contains(ValidBackends(), c.Output.Backend) {
		return fmt.Errorf("invalid backend %q, must be one of: %v", c.Output.Backend, ValidBackends())
	}

	if c.Synth.SampleRate < 8000 || c.Synth.SampleRate > 192000 {
		return fmt.Errorf("sample_rate must be between 8000 and 192000, got %d", c.Synth.SampleRate)
	}
	if c.Synth.Duration.Duration() <= 0 {
		return fmt.Errorf("synth duration must be positive, got %s", c.Synth.Duration.Duration())
	}
	if c.Synth.Volume < 0 || c.Synth.Volume > 1 {
		return fmt.Errorf("volume must be between 0 and 1, got %v", c.Synth.Volume)
	}

	if c.Beep.Duration.Duration() <= 0 {
		return fmt.Errorf("beep duration must be positive, got %s", c.Beep.Duration.Duration())
	}
	if c.Beep.Gap.Duration() < 0 {
		return fmt.Errorf("beep gap must not be negative, got %s", c.Beep.Gap.Duration())
	}
	if c.Beep.MinHz <= 0 || c.Beep.MaxHz < c.Beep.MinHz {
		return fmt.Errorf("invalid beep range %d-%d", c.Beep.MinHz, c.Beep.MaxHz)
	}

	return nil
}

// SongsDir returns the configured songs directory with ~ expanded,
// falling back to SongsPath.
func (c *Config) SongsDir() string {
	if c.Songs.Dir == "" {
		return SongsPath()
	}
	return expandPath(c.Songs.Dir)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
