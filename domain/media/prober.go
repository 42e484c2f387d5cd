package media

import (
	"context"
	"time"
)

// Info is the subset of stream metadata a playback session needs
type Info struct {
	Duration       time.Duration
	Width          int
	Height         int
	FPS            float64
	Codec          string
	HasAudio       bool
	// HasSideStreams reports streams other than video: audio, subtitle, data or attachment
	HasSideStreams bool
}

// Prober reads media metadata without decoding the streams
type Prober interface {
	Probe(ctx context.Context, path string) (*Info, error)
}
