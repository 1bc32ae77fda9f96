package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/lonely-engine/render"
	"github.com/lixenwraith/lonely-engine/terminal"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Config is the runtime configuration of the lonely binary
// Precedence: defaults, then the YAML file, then LONELY_* environment variables
type Config struct {
	// Width and Height fix the grid, 0 uses the terminal size
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	FrameBudget time.Duration `yaml:"frame_budget"`
	PresentMode string        `yaml:"present_mode"` // full | changed
	ColorMode   string        `yaml:"color_mode"`   // auto | 256 | truecolor

	Input InputConfig `yaml:"input"`
	Audio AudioConfig `yaml:"audio"`

	Debug bool `yaml:"debug"`
}

// InputConfig tunes the terminal key source
type InputConfig struct {
	// Hold keeps a key in the snapshot after its last repeat
	Hold time.Duration `yaml:"hold"`
}

// AudioConfig tunes sound playback
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"` // 0.0-1.0
	SampleRate int     `yaml:"sample_rate"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		FrameBudget: 33 * time.Millisecond,
		PresentMode: "full",
		ColorMode:   "auto",
		Input: InputConfig{
			Hold: 120 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     0.5,
			SampleRate: 48000,
		},
	}
}

// Load builds the configuration from defaults, the optional file at path and the environment
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays YAML onto cfg, unknown fields are rejected
func (c *Config) decode(data []byte) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: grid %dx%d", ErrInvalid, c.Width, c.Height)
	}
	if c.FrameBudget < 0 {
		return fmt.Errorf("%w: frame_budget %v", ErrInvalid, c.FrameBudget)
	}
	if _, err := render.ParsePresentMode(c.PresentMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := terminal.ParseColorMode(c.ColorMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Input.Hold < 0 {
		return fmt.Errorf("%w: input.hold %v", ErrInvalid, c.Input.Hold)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio.volume %v outside 0-1", ErrInvalid, c.Audio.Volume)
	}
	if c.Audio.SampleRate < 0 {
		return fmt.Errorf("%w: audio.sample_rate %d", ErrInvalid, c.Audio.SampleRate)
	}
	return nil
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
