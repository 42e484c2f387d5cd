package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for its configuration
const DefaultPath = "config/config.yaml"

// Config represents the complete application configuration
type Config struct {
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg"`
	Paths    PathsConfig    `yaml:"paths"`
	Playback PlaybackConfig `yaml:"playback"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// FFmpegConfig locates the external transcoder binaries
type FFmpegConfig struct {
	Path          string        `yaml:"path"`
	FFprobePath   string        `yaml:"ffprobe_path"`
	VerifyTimeout time.Duration `yaml:"verify_timeout"`
}

// PathsConfig contains directory paths for exported media
type PathsConfig struct {
	// OutputDirectory is where cuts are suggested; empty means next to the source
	OutputDirectory string `yaml:"output_directory"`
}

// PlaybackConfig contains editor playback settings
type PlaybackConfig struct {
	// TickInterval is the live duration refresh cadence
	TickInterval time.Duration `yaml:"tick_interval"`
	NudgeStep    time.Duration `yaml:"nudge_step"`
	SeekStep     time.Duration `yaml:"seek_step"`
	JumpStep     time.Duration `yaml:"jump_step"`
	Autoplay     bool          `yaml:"autoplay"`
}

// LoggingConfig contains diagnostic logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	cfg := &Config{Playback: PlaybackConfig{Autoplay: true}}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills zero values with their defaults
func (c *Config) ApplyDefaults() {
	if c.FFmpeg.Path == "" {
		c.FFmpeg.Path = "ffmpeg"
	}
	if c.FFmpeg.FFprobePath == "" {
		c.FFmpeg.FFprobePath = "ffprobe"
	}
	if c.FFmpeg.VerifyTimeout <= 0 {
		c.FFmpeg.VerifyTimeout = 10 * time.Second
	}
	if c.Playback.TickInterval <= 0 {
		c.Playback.TickInterval = 100 * time.Millisecond
	}
	if c.Playback.NudgeStep <= 0 {
		c.Playback.NudgeStep = 3 * time.Second
	}
	if c.Playback.SeekStep <= 0 {
		c.Playback.SeekStep = 5 * time.Second
	}
	if c.Playback.JumpStep <= 0 {
		c.Playback.JumpStep = 20 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Load reads and parses the configuration from the specified YAML file.
// A missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Config{Playback: PlaybackConfig{Autoplay: true}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.ApplyDefaults()

	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
