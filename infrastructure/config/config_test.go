package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.FFmpeg.Path != "ffmpeg" {
		t.Errorf("FFmpeg.Path = %q, want ffmpeg", cfg.FFmpeg.Path)
	}
	if cfg.Playback.TickInterval != 100*time.Millisecond {
		t.Errorf("TickInterval = %v, want 100ms", cfg.Playback.TickInterval)
	}
	if cfg.Playback.NudgeStep != 3*time.Second || cfg.Playback.SeekStep != 5*time.Second || cfg.Playback.JumpStep != 20*time.Second {
		t.Errorf("unexpected seek steps %+v", cfg.Playback)
	}
	if !cfg.Playback.Autoplay {
		t.Error("Autoplay should default to true")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `ffmpeg:
  path: /opt/ffmpeg/bin/ffmpeg
paths:
  output_directory: /srv/exports
playback:
  tick_interval: 250ms
  autoplay: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.FFmpeg.Path != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpeg.Path = %q", cfg.FFmpeg.Path)
	}
	if cfg.FFmpeg.FFprobePath != "ffprobe" {
		t.Errorf("FFprobePath = %q, want default", cfg.FFmpeg.FFprobePath)
	}
	if cfg.Paths.OutputDirectory != "/srv/exports" {
		t.Errorf("OutputDirectory = %q", cfg.Paths.OutputDirectory)
	}
	if cfg.Playback.TickInterval != 250*time.Millisecond {
		t.Errorf("TickInterval = %v", cfg.Playback.TickInterval)
	}
	if cfg.Playback.Autoplay {
		t.Error("Autoplay should be false")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ffmpeg: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Paths.OutputDirectory = "/tmp/cuts"
	cfg.Playback.JumpStep = 30 * time.Second

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Paths.OutputDirectory != "/tmp/cuts" {
		t.Errorf("OutputDirectory = %q", loaded.Paths.OutputDirectory)
	}
	if loaded.Playback.JumpStep != 30*time.Second {
		t.Errorf("JumpStep = %v", loaded.Playback.JumpStep)
	}
}

func TestConfigManager_GetSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := NewConfigManager(Default(), path)

	tests := []struct {
		name    string
		key     string
		value   string
		want    string
		wantErr error
	}{
		{name: "string", key: "paths.output_directory", value: "/srv/out", want: "/srv/out"},
		{name: "duration", key: "playback.tick_interval", value: "200ms", want: "200ms"},
		{name: "bool", key: "playback.autoplay", value: "false", want: "false"},
		{name: "log level case", key: "Logging.Level", value: "DEBUG", want: "debug"},
		{name: "unknown key", key: "google.token", value: "x", wantErr: ErrUnknownKey},
		{name: "bad duration", key: "playback.seek_step", value: "soon", wantErr: ErrInvalidValue},
		{name: "negative duration", key: "playback.seek_step", value: "-1s", wantErr: ErrInvalidValue},
		{name: "bad bool", key: "playback.autoplay", value: "maybe", wantErr: ErrInvalidValue},
		{name: "empty string", key: "ffmpeg.path", value: "", wantErr: ErrInvalidValue},
		{name: "bad level", key: "logging.level", value: "loud", wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Set(tt.key, tt.value)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := m.Get(tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Get() = %q, want %q", got, tt.want)
			}
		})
	}

	saved, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Paths.OutputDirectory != "/srv/out" {
		t.Errorf("Set should persist, got %q", saved.Paths.OutputDirectory)
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) != len(fields) {
		t.Fatalf("got %d keys, want %d", len(keys), len(fields))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] > keys[i] {
			t.Errorf("keys not sorted: %q before %q", keys[i-1], keys[i])
		}
	}
}
