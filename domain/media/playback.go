package media

import (
	"context"
	"fmt"

	"media-cutter/domain/cut"
)

// Rates are the playback rates a session accepts, in cycling order
var Rates = []float64{0.5, 1.0, 1.5, 2.0}

// Playback is the media player capability an editor drives. Implementations
// are owned by a single editor and need not be safe for concurrent use.
type Playback interface {
	// Open loads path and resets the position to zero. It returns a *LoadError
	// when the file is unreadable or its format unsupported.
	Open(ctx context.Context, path string) error
	Position() cut.Millis
	Duration() cut.Millis
	SetPosition(at cut.Millis)
	Play()
	Pause()
	IsPlaying() bool
	Rate() float64
	// SetPlaybackRate returns ErrUnsupportedRate for rates outside Rates
	SetPlaybackRate(rate float64) error
	OnPositionChanged(fn func(cut.Millis))
	OnDurationChanged(fn func(cut.Millis))
}

// ValidateRate checks that rate is one of Rates
func ValidateRate(rate float64) error {
	for _, r := range Rates {
		if r == rate {
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedRate, rate)
}

// NextRate returns the rate following current in Rates, wrapping around.
// An unknown current rate restarts the cycle at the first rate.
func NextRate(current float64) float64 {
	for i, r := range Rates {
		if r == current {
			return Rates[(i+1)%len(Rates)]
		}
	}
	return Rates[0]
}

// SeekBy moves the playback position by delta, clamped to [0, duration]
func SeekBy(p Playback, delta cut.Millis) cut.Millis {
	at := Clamp(p.Position()+delta, p.Duration())
	p.SetPosition(at)
	return at
}

// Clamp limits at to [0, duration]. A zero duration means unknown and only
// clamps the lower bound.
func Clamp(at, duration cut.Millis) cut.Millis {
	if at < 0 {
		return 0
	}
	if duration > 0 && at > duration {
		return duration
	}
	return at
}
