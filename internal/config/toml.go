// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Typing TypingConfig `toml:"typing"`
	Quiz   QuizConfig   `toml:"quiz"`
	Maths  MathsConfig  `toml:"maths"`
}

// TypingConfig maps typing test settings. Durations are in seconds.
type TypingConfig struct {
	Exercise *string  `toml:"exercise"`
	Duration *int     `toml:"duration"`
	Words    *int     `toml:"words"`
	CapsPct  *float64 `toml:"caps"`
	PunctPct *float64 `toml:"punct"`
}

// QuizConfig maps vocabulary quiz settings.
type QuizConfig struct {
	Questions     *int `toml:"questions"`
	TimeLimit     *int `toml:"time-limit"`
	FeedbackDelay *int `toml:"feedback-delay-ms"`
}

// MathsConfig maps maths drill settings.
type MathsConfig struct {
	Questions     *int    `toml:"questions"`
	Ops           *string `toml:"ops"`
	MaxOperand    *int    `toml:"max-operand"`
	TimeLimit     *int    `toml:"time-limit"`
	BitterEnd     *bool   `toml:"bitter-end"`
	FeedbackDelay *int    `toml:"feedback-delay-ms"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
