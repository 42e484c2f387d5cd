package cut

import (
	"fmt"
	"time"
)

// Session holds the cut points of one opened media file: the confirmed
// intervals in confirmation order and at most one pending start.
//
// Session is a value. Every transition returns a new Session and never
// modifies the receiver's confirmed list in place, so a previously returned
// Session stays valid.
type Session struct {
	pending    Millis
	hasPending bool
	confirmed  []Interval
}

// Pending returns the pending start, if one is set
func (s Session) Pending() (Millis, bool) {
	return s.pending, s.hasPending
}

// Confirmed returns a copy of the confirmed intervals
func (s Session) Confirmed() []Interval {
	out := make([]Interval, len(s.confirmed))
	copy(out, s.confirmed)
	return out
}

// Len returns the number of confirmed intervals
func (s Session) Len() int {
	return len(s.confirmed)
}

// IsEmpty returns true if there is neither a pending start nor a confirmed interval
func (s Session) IsEmpty() bool {
	return !s.hasPending && len(s.confirmed) == 0
}

// MarkStart sets the pending start to at. An earlier pending start that was
// never closed is discarded.
func (s Session) MarkStart(at Millis) Session {
	s.pending = at
	s.hasPending = true
	return s
}

// MarkEnd closes the pending start at the given position and appends the
// resulting interval. Without a pending start it is a no-op and reports false.
func (s Session) MarkEnd(at Millis) (Session, bool) {
	if !s.hasPending {
		return s, false
	}
	s = s.appendInterval(NewInterval(s.pending, at))
	s.pending = 0
	s.hasPending = false
	return s, true
}

// MarkEndAndNewStart closes the pending start at the given position and
// immediately opens a new pending start there. Without a pending start only
// the new start is set; the returned bool reports whether an interval was
// appended.
func (s Session) MarkEndAndNewStart(at Millis) (Session, bool) {
	closed := false
	if s.hasPending {
		s = s.appendInterval(NewInterval(s.pending, at))
		closed = true
	}
	return s.MarkStart(at), closed
}

// Discard clears both the pending start and the confirmed intervals
func (s Session) Discard() Session {
	return Session{}
}

// LiveDuration returns the elapsed time between the pending start and
// position. It reports false when no start is pending.
func (s Session) LiveDuration(position Millis) (time.Duration, bool) {
	if !s.hasPending {
		return 0, false
	}
	d := position - s.pending
	if d < 0 {
		d = -d
	}
	return d.Duration(), true
}

// Lines renders the confirmed intervals as a numbered list
func (s Session) Lines() []string {
	lines := make([]string, 0, len(s.confirmed))
	for i, iv := range s.confirmed {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, iv))
	}
	return lines
}

// Summary derives the current display summary
func (s Session) Summary() Summary {
	if s.hasPending {
		return Summary{Kind: SummaryPending, PendingStart: s.pending}
	}
	if n := len(s.confirmed); n > 0 {
		return Summary{Kind: SummaryInterval, Interval: s.confirmed[n-1]}
	}
	return Summary{Kind: SummaryEmpty}
}

func (s Session) appendInterval(iv Interval) Session {
	next := make([]Interval, len(s.confirmed), len(s.confirmed)+1)
	copy(next, s.confirmed)
	s.confirmed = append(next, iv)
	return s
}
