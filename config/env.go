package config

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names
const (
	EnvWidth        = "LONELY_WIDTH"
	EnvHeight       = "LONELY_HEIGHT"
	EnvFrameBudget  = "LONELY_FRAME_BUDGET"
	EnvPresentMode  = "LONELY_PRESENT_MODE"
	EnvColorMode    = "LONELY_COLOR_MODE"
	EnvInputHold    = "LONELY_INPUT_HOLD"
	EnvAudioEnabled = "LONELY_AUDIO_ENABLED"
	EnvAudioVolume  = "LONELY_AUDIO_VOLUME" // 0-100
	EnvDebug        = "LONELY_DEBUG"
)

// applyEnv overrides cfg from the environment, unparsable values are ignored
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvWidth); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Width = n
		}
	}
	if v := os.Getenv(EnvHeight); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Height = n
		}
	}

	if v := os.Getenv(EnvFrameBudget); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.FrameBudget = d
		}
	}
	if v := os.Getenv(EnvInputHold); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Input.Hold = d
		}
	}

	if v := os.Getenv(EnvPresentMode); v != "" {
		cfg.PresentMode = v
	}
	if v := os.Getenv(EnvColorMode); v != "" {
		cfg.ColorMode = v
	}

	if v := os.Getenv(EnvAudioEnabled); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Audio.Enabled = b
		}
	}

	// Volume is given as a percentage and clamped
	if v := os.Getenv(EnvAudioVolume); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			vol := float64(n) / 100.0
			if vol < 0 {
				vol = 0
			}
			if vol > 1 {
				vol = 1
			}
			cfg.Audio.Volume = vol
		}
	}

	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}
