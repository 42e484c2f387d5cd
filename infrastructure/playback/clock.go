package playback

import (
	"context"
	"fmt"
	"time"

	"media-cutter/domain/cut"
	"media-cutter/domain/media"
)

// ClockPlayer is a headless media.Playback. It learns the duration from a
// prober and advances the position with the wall clock scaled by the rate.
// It is owned by one editor and is not safe for concurrent use.
type ClockPlayer struct {
	prober media.Prober
	now    func() time.Time

	path     string
	duration cut.Millis
	anchor   cut.Millis
	anchorAt time.Time
	playing  bool
	rate     float64

	positionListeners []func(cut.Millis)
	durationListeners []func(cut.Millis)
}

// Option configures a ClockPlayer
type Option func(*ClockPlayer)

// WithClock replaces time.Now (for testing)
func WithClock(now func() time.Time) Option {
	return func(p *ClockPlayer) {
		p.now = now
	}
}

// NewClockPlayer creates a player that probes files with prober
func NewClockPlayer(prober media.Prober, opts ...Option) *ClockPlayer {
	p := &ClockPlayer{
		prober: prober,
		now:    time.Now,
		rate:   1.0,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Open implements media.Playback
func (p *ClockPlayer) Open(ctx context.Context, path string) error {
	info, err := p.prober.Probe(ctx, path)
	if err != nil {
		return &media.LoadError{Path: path, Err: err}
	}
	if info.Duration <= 0 {
		return &media.LoadError{Path: path, Err: fmt.Errorf("media has no duration")}
	}

	p.path = path
	p.playing = false
	p.anchor = 0
	p.anchorAt = p.now()
	p.duration = cut.FromDuration(info.Duration)

	for _, fn := range p.durationListeners {
		fn(p.duration)
	}
	p.notifyPosition(0)
	return nil
}

// Path returns the currently loaded file, or "" before Open
func (p *ClockPlayer) Path() string {
	return p.path
}

// Position implements media.Playback. Reaching the end pauses playback.
func (p *ClockPlayer) Position() cut.Millis {
	if !p.playing {
		return p.anchor
	}
	elapsed := float64(p.now().Sub(p.anchorAt)) * p.rate
	at := p.anchor + cut.FromDuration(time.Duration(elapsed))
	if at >= p.duration {
		p.anchor = p.duration
		p.playing = false
		return p.duration
	}
	return at
}

// Duration implements media.Playback
func (p *ClockPlayer) Duration() cut.Millis {
	return p.duration
}

// SetPosition implements media.Playback
func (p *ClockPlayer) SetPosition(at cut.Millis) {
	if p.path == "" {
		return
	}
	p.rebase(media.Clamp(at, p.duration))
	p.notifyPosition(p.anchor)
}

// Play implements media.Playback
func (p *ClockPlayer) Play() {
	if p.path == "" || p.playing {
		return
	}
	if p.anchor >= p.duration {
		p.anchor = 0
	}
	p.anchorAt = p.now()
	p.playing = true
}

// Pause implements media.Playback
func (p *ClockPlayer) Pause() {
	if !p.playing {
		return
	}
	p.rebase(p.Position())
	p.playing = false
}

// IsPlaying implements media.Playback
func (p *ClockPlayer) IsPlaying() bool {
	if p.playing {
		// advancing may hit the end
		p.Position()
	}
	return p.playing
}

// Rate implements media.Playback
func (p *ClockPlayer) Rate() float64 {
	return p.rate
}

// SetPlaybackRate implements media.Playback
func (p *ClockPlayer) SetPlaybackRate(rate float64) error {
	if err := media.ValidateRate(rate); err != nil {
		return err
	}
	p.rebase(p.Position())
	p.rate = rate
	return nil
}

// OnPositionChanged implements media.Playback. Listeners are called on seeks;
// continuous progress is read with Position.
func (p *ClockPlayer) OnPositionChanged(fn func(cut.Millis)) {
	p.positionListeners = append(p.positionListeners, fn)
}

// OnDurationChanged implements media.Playback
func (p *ClockPlayer) OnDurationChanged(fn func(cut.Millis)) {
	p.durationListeners = append(p.durationListeners, fn)
}

func (p *ClockPlayer) rebase(at cut.Millis) {
	p.anchor = at
	p.anchorAt = p.now()
}

func (p *ClockPlayer) notifyPosition(at cut.Millis) {
	for _, fn := range p.positionListeners {
		fn(at)
	}
}

var _ media.Playback = (*ClockPlayer)(nil)
