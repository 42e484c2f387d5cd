package probe

import (
	"context"
	"fmt"
	"time"

	"media-cutter/domain/media"

	vidio "github.com/AlexEidt/Vidio"
)

// VideoProber reads container metadata of video files through Vidio
type VideoProber struct {
	open func(path string) (videoSource, error)
}

// videoSource is the part of *vidio.Video the prober reads
type videoSource interface {
	Duration() float64
	Width() int
	Height() int
	FPS() float64
	Codec() string
	HasStreams() bool
	Close()
}

// NewVideoProber creates a prober backed by vidio.NewVideo
func NewVideoProber() *VideoProber {
	return &VideoProber{open: func(path string) (videoSource, error) {
		return vidio.NewVideo(path)
	}}
}

// Probe implements media.Prober
func (p *VideoProber) Probe(ctx context.Context, path string) (*media.Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	video, err := p.open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read video metadata: %w", err)
	}
	defer video.Close()

	return &media.Info{
		Duration:       time.Duration(video.Duration() * float64(time.Second)),
		Width:          video.Width(),
		Height:         video.Height(),
		FPS:            video.FPS(),
		Codec:          video.Codec(),
		HasSideStreams: video.HasStreams(),
	}, nil
}

var _ media.Prober = (*VideoProber)(nil)
