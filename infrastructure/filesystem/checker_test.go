package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChecker(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "voice.wav")
	if err := os.WriteFile(file, []byte("RIFF"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewChecker()

	tests := []struct {
		name       string
		path       string
		wantExists bool
		wantDir    bool
	}{
		{name: "file", path: file, wantExists: true, wantDir: false},
		{name: "directory", path: dir, wantExists: true, wantDir: true},
		{name: "missing", path: filepath.Join(dir, "nope.wav"), wantExists: false, wantDir: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Exists(tt.path); got != tt.wantExists {
				t.Errorf("Exists() = %v, want %v", got, tt.wantExists)
			}
			if got := c.IsDir(tt.path); got != tt.wantDir {
				t.Errorf("IsDir() = %v, want %v", got, tt.wantDir)
			}
		})
	}
}

func TestChecker_EnsureDir(t *testing.T) {
	c := NewChecker()
	target := filepath.Join(t.TempDir(), "exports", "2024")

	if err := c.EnsureDir(target); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if !c.IsDir(target) {
		t.Error("directory was not created")
	}
	if err := c.EnsureDir(""); err != nil {
		t.Errorf("EnsureDir(\"\") error = %v", err)
	}
}
