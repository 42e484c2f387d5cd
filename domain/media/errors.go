package media

import (
	"errors"
	"fmt"
)

var (
	// ErrTranscoderMissing is returned when the ffmpeg binary cannot be found or executed
	ErrTranscoderMissing = errors.New("transcoder not available")

	// ErrUnsupportedRate is returned for playback rates outside Rates
	ErrUnsupportedRate = errors.New("unsupported playback rate")

	// ErrNotLoaded is returned by playback operations before a file is opened
	ErrNotLoaded = errors.New("no media loaded")

	// ErrUnsupportedFormat is returned when a file extension is not on the allow-list
	ErrUnsupportedFormat = errors.New("unsupported media format")
)

// LoadError reports that a source file could not be opened for playback
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// TranscodeError reports a failed external transcoder run for one output
type TranscodeError struct {
	Op     string
	Output string
	Err    error
	Stderr string
}

func (e *TranscodeError) Error() string {
	msg := fmt.Sprintf("%s %s failed: %v", e.Op, e.Output, e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *TranscodeError) Unwrap() error {
	return e.Err
}
