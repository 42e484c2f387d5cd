package editor

import (
	"context"
	"errors"
	"strings"
	"time"

	"media-cutter/domain/cut"
	"media-cutter/domain/media"
)

// fakePlayer is a media.Playback whose clock only moves when told to
type fakePlayer struct {
	path      string
	position  cut.Millis
	duration  cut.Millis
	playing   bool
	rate      float64
	openErr   error
	listeners []func(cut.Millis)
	pauses    int
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{duration: 60000, rate: 1.0}
}

func (p *fakePlayer) Open(ctx context.Context, path string) error {
	if p.openErr != nil {
		return &media.LoadError{Path: path, Err: p.openErr}
	}
	p.path = path
	p.playing = false
	p.SetPosition(0)
	return nil
}

func (p *fakePlayer) Position() cut.Millis { return p.position }
func (p *fakePlayer) Duration() cut.Millis { return p.duration }
func (p *fakePlayer) Play()                { p.playing = true }
func (p *fakePlayer) IsPlaying() bool      { return p.playing }
func (p *fakePlayer) Rate() float64        { return p.rate }

func (p *fakePlayer) Pause() {
	p.pauses++
	p.playing = false
}

func (p *fakePlayer) SetPosition(at cut.Millis) {
	p.position = at
	for _, fn := range p.listeners {
		fn(at)
	}
}

func (p *fakePlayer) SetPlaybackRate(rate float64) error {
	if err := media.ValidateRate(rate); err != nil {
		return err
	}
	p.rate = rate
	return nil
}

func (p *fakePlayer) OnPositionChanged(fn func(cut.Millis)) { p.listeners = append(p.listeners, fn) }
func (p *fakePlayer) OnDurationChanged(fn func(cut.Millis)) {}

// mockTranscoder records trims and fails the outputs listed in failOn
type mockTranscoder struct {
	failOn        map[string]bool
	missing       bool
	trims         []*media.TrimRequest
	playingOnTrim []bool
	player        *fakePlayer
}

func (m *mockTranscoder) Trim(ctx context.Context, req *media.TrimRequest) error {
	m.trims = append(m.trims, req)
	if m.player != nil {
		m.playingOnTrim = append(m.playingOnTrim, m.player.IsPlaying())
	}
	if m.failOn[req.OutputPath] {
		return &media.TranscodeError{Op: "trim", Output: req.OutputPath, Err: errors.New("exit status 1")}
	}
	return nil
}

func (m *mockTranscoder) ExtractAudio(ctx context.Context, req *media.AudioRequest) error {
	return nil
}

func (m *mockTranscoder) VerifyInstalled(ctx context.Context) error {
	if m.missing {
		return media.ErrTranscoderMissing
	}
	return nil
}

func (m *mockTranscoder) outputs() []string {
	var out []string
	for _, r := range m.trims {
		out = append(out, r.OutputPath)
	}
	return out
}

// scriptedNames answers per index: "" accepts the suggestion, "-" skips,
// anything else overrides the path
type scriptedNames struct {
	answers    map[int]string
	err        error
	suggestion []string
}

func (s *scriptedNames) ResolveName(ctx context.Context, index, total int, suggested string) (string, bool, error) {
	s.suggestion = append(s.suggestion, suggested)
	if s.err != nil {
		return "", false, s.err
	}
	switch a := s.answers[index]; a {
	case "":
		return suggested, true, nil
	case "-":
		return "", false, nil
	default:
		return a, true, nil
	}
}

type fakeTicker struct {
	ch      chan time.Time
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }
func (t *fakeTicker) Stop()               { t.stopped = true }

type fakeTickers struct {
	made []*fakeTicker
}

func (f *fakeTickers) factory(d time.Duration) Ticker {
	t := &fakeTicker{ch: make(chan time.Time)}
	f.made = append(f.made, t)
	return t
}

type liveRecorder struct {
	starts  []cut.Millis
	elapsed []time.Duration
}

func (r *liveRecorder) ShowLive(start cut.Millis, elapsed time.Duration) {
	r.starts = append(r.starts, start)
	r.elapsed = append(r.elapsed, elapsed)
}

func containsLine(out, want string) bool {
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, want) {
			return true
		}
	}
	return false
}
