package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"media-cutter/infrastructure/logging"
)

// Errors for config management
var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// ConfigManager reads and updates single settings addressed by dotted keys
// such as "playback.tick_interval"
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringField(ptr func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error {
			if v == "" {
				return fmt.Errorf("%w: value must not be empty", ErrInvalidValue)
			}
			*ptr(c) = v
			return nil
		},
	}
}

func durationField(ptr func(*Config) *time.Duration) field {
	return field{
		get: func(c *Config) string { return ptr(c).String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return fmt.Errorf("%w: %q is not a positive duration", ErrInvalidValue, v)
			}
			*ptr(c) = d
			return nil
		},
	}
}

func boolField(ptr func(*Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*ptr(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
			}
			*ptr(c) = b
			return nil
		},
	}
}

var fields = map[string]field{
	"ffmpeg.path":            stringField(func(c *Config) *string { return &c.FFmpeg.Path }),
	"ffmpeg.ffprobe_path":    stringField(func(c *Config) *string { return &c.FFmpeg.FFprobePath }),
	"ffmpeg.verify_timeout":  durationField(func(c *Config) *time.Duration { return &c.FFmpeg.VerifyTimeout }),
	"paths.output_directory": stringField(func(c *Config) *string { return &c.Paths.OutputDirectory }),
	"playback.tick_interval": durationField(func(c *Config) *time.Duration { return &c.Playback.TickInterval }),
	"playback.nudge_step":    durationField(func(c *Config) *time.Duration { return &c.Playback.NudgeStep }),
	"playback.seek_step":     durationField(func(c *Config) *time.Duration { return &c.Playback.SeekStep }),
	"playback.jump_step":     durationField(func(c *Config) *time.Duration { return &c.Playback.JumpStep }),
	"playback.autoplay":      boolField(func(c *Config) *bool { return &c.Playback.Autoplay }),
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error {
			if !logging.ValidLevel(v) {
				return fmt.Errorf("%w: unknown log level %q", ErrInvalidValue, v)
			}
			c.Logging.Level = strings.ToLower(v)
			return nil
		},
	},
}

// Keys returns every settable key in sorted order
func Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the current value of key
func (m *ConfigManager) Get(key string) (string, error) {
	f, ok := fields[normalizeKey(key)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.get(m.config), nil
}

// Set updates key and saves the config file
func (m *ConfigManager) Set(key, value string) error {
	f, ok := fields[normalizeKey(key)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err := f.set(m.config, strings.TrimSpace(value)); err != nil {
		return err
	}
	return Save(m.config, m.configPath)
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// SuggestSetCommand returns the command that changes key
func SuggestSetCommand(key string) string {
	return fmt.Sprintf(`media-cutter config set %s VALUE`, key)
}
