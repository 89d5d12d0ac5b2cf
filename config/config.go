package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-beatbox/debug"
	"go-beatbox/sequencer"
)

// OutputConfig selects the MIDI output the engine plays on
type OutputConfig struct {
	PortName string `json:"portName,omitempty"` // substring match, empty = first port
}

// PlaybackConfig holds tempo settings
type PlaybackConfig struct {
	Tempo    float64 `json:"tempo,omitempty"` // factor, 1.0 = 120 bpm
	MinTempo float64 `json:"minTempo,omitempty"`
	MaxTempo float64 `json:"maxTempo,omitempty"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	Palette     string `json:"palette,omitempty"` // path to a GIMP .gpl file
	LastPattern string `json:"lastPattern,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Output     OutputConfig   `json:"output,omitempty"`
	Kit        string         `json:"kit,omitempty"`
	RowMarkers *bool          `json:"rowMarkers,omitempty"`
	Playback   PlaybackConfig `json:"playback,omitempty"`
	UI         UIConfig       `json:"ui,omitempty"`
	Debug      bool           `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Kit: sequencer.DefaultKit,
		Playback: PlaybackConfig{
			Tempo:    1.0,
			MinTempo: sequencer.MinTempo,
			MaxTempo: sequencer.MaxTempo,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-beatbox"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config at path, or returns defaults if it doesn't exist.
// Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the tempo settings. An unknown kit falls back to the
// default kit.
func (c *Config) Validate() error {
	p := c.Playback
	if p.MinTempo <= 0 || p.MaxTempo <= p.MinTempo {
		return fmt.Errorf("tempo range [%v, %v] is invalid", p.MinTempo, p.MaxTempo)
	}
	if p.Tempo <= 0 {
		return fmt.Errorf("tempo %v must be positive", p.Tempo)
	}
	if _, ok := sequencer.Kits[c.Kit]; !ok {
		debug.Log("config", "unknown kit %q, using %s", c.Kit, sequencer.DefaultKit)
		c.Kit = sequencer.DefaultKit
	}
	return nil
}

// UseRowMarkers reports whether compiled sequences carry row markers
func (c *Config) UseRowMarkers() bool {
	return c.RowMarkers == nil || *c.RowMarkers
}

// PlaybackOptions turns the config into Playback options
func (c *Config) PlaybackOptions() []sequencer.PlaybackOption {
	return []sequencer.PlaybackOption{
		sequencer.WithTempoRange(c.Playback.MinTempo, c.Playback.MaxTempo),
		sequencer.WithInitialTempo(c.Playback.Tempo),
		sequencer.WithKit(sequencer.GetKit(c.Kit)),
		sequencer.WithCompileOptions(sequencer.WithRowMarkers(c.UseRowMarkers())),
	}
}
