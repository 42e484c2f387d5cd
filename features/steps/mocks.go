//go:build integration

package steps

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"media-cutter/domain/media"
	"media-cutter/infrastructure/ffmpeg"
)

// recordingRunner stands in for the ffmpeg binary: it records every call and
// fails the outputs listed in failOn
type recordingRunner struct {
	calls   [][]string
	failOn  map[string]bool
	missing bool
}

func newRecordingRunner() *recordingRunner {
	return &recordingRunner{failOn: make(map[string]bool)}
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) error {
	if r.missing {
		return &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	r.calls = append(r.calls, append([]string{name}, args...))
	if out := args[len(args)-1]; r.failOn[out] {
		return &ffmpeg.CommandError{Name: name, Err: errors.New("exit status 1"), Stderr: "Conversion failed!"}
	}
	return nil
}

func (r *recordingRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.missing {
		return nil, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return []byte("ffmpeg version 6.1"), nil
}

func (r *recordingRunner) outputs() []string {
	var out []string
	for _, c := range r.calls {
		out = append(out, c[len(c)-1])
	}
	return out
}

func (r *recordingRunner) transcoder() *ffmpeg.Transcoder {
	return ffmpeg.NewTranscoder(ffmpeg.WithFFmpegPath("ffmpeg"), ffmpeg.WithCommandRunner(r))
}

// mockFileChecker simulates file existence
type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

// stubProber reports a fixed duration for every file
type stubProber struct {
	duration time.Duration
	fail     bool
}

func (p *stubProber) Probe(ctx context.Context, path string) (*media.Info, error) {
	if p.fail {
		return nil, fmt.Errorf("invalid data found when processing input")
	}
	return &media.Info{Duration: p.duration}, nil
}

// manualClock only advances when told to
type manualClock struct {
	t time.Time
}

func (c *manualClock) now() time.Time { return c.t }

// MockPrompter implements cmd.Prompter for testing
type MockPrompter struct {
	inputResponses   []string
	confirmResponses []bool
	inputIndex       int
	confirmIndex     int
}

func NewMockPrompter(inputs []string, confirms []bool) *MockPrompter {
	return &MockPrompter{
		inputResponses:   inputs,
		confirmResponses: confirms,
	}
}

func (m *MockPrompter) Input(message string, defaultValue string) (string, error) {
	if m.inputIndex >= len(m.inputResponses) {
		return defaultValue, nil
	}
	response := m.inputResponses[m.inputIndex]
	m.inputIndex++
	return response, nil
}

func (m *MockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if m.confirmIndex >= len(m.confirmResponses) {
		return defaultValue, nil
	}
	response := m.confirmResponses[m.confirmIndex]
	m.confirmIndex++
	return response, nil
}
