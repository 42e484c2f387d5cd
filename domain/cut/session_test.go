package cut

import (
	"reflect"
	"testing"
	"time"
)

func TestSession_MarkStartThenEnd(t *testing.T) {
	s := Session{}.MarkStart(1000)
	s, closed := s.MarkEnd(5000)

	if !closed {
		t.Fatal("MarkEnd() expected interval to be closed")
	}
	want := []Interval{{Start: 1000, End: 5000}}
	if got := s.Confirmed(); !reflect.DeepEqual(got, want) {
		t.Errorf("Confirmed() = %v, want %v", got, want)
	}
	if _, ok := s.Pending(); ok {
		t.Error("expected no pending start after MarkEnd")
	}
	if got := s.Summary().Duration(); got != 4*time.Second {
		t.Errorf("Summary().Duration() = %v, want 4s", got)
	}
}

func TestSession_MarkEndSwapsReversedMarks(t *testing.T) {
	s := Session{}.MarkStart(5000)
	s, _ = s.MarkEnd(2000)

	want := []Interval{{Start: 2000, End: 5000}}
	if got := s.Confirmed(); !reflect.DeepEqual(got, want) {
		t.Errorf("Confirmed() = %v, want %v", got, want)
	}
	if got := s.Summary().Duration(); got != 3*time.Second {
		t.Errorf("Summary().Duration() = %v, want 3s", got)
	}
}

func TestSession_MarkEndWithoutStartIsNoop(t *testing.T) {
	s, closed := Session{}.MarkEnd(3000)
	if closed {
		t.Error("MarkEnd() without pending start should not close an interval")
	}
	if !s.IsEmpty() {
		t.Errorf("expected empty session, got %d intervals", s.Len())
	}
}

func TestSession_ConfirmedCountIgnoresRepeatedStarts(t *testing.T) {
	tests := []struct {
		name  string
		steps []string
		want  int
	}{
		{name: "no marks", steps: nil, want: 0},
		{name: "single pair", steps: []string{"start", "end"}, want: 1},
		{name: "restart before end", steps: []string{"start", "start", "start", "end"}, want: 1},
		{name: "end without start", steps: []string{"end", "end"}, want: 0},
		{name: "two pairs", steps: []string{"start", "end", "start", "end"}, want: 2},
		{name: "dangling start", steps: []string{"start", "end", "start"}, want: 1},
		{name: "mixed", steps: []string{"end", "start", "start", "end", "end", "start", "end"}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Session{}
			for i, step := range tt.steps {
				at := Millis(i * 1000)
				switch step {
				case "start":
					s = s.MarkStart(at)
				case "end":
					s, _ = s.MarkEnd(at)
				}
			}
			if got := s.Len(); got != tt.want {
				t.Errorf("Len() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSession_MarkEndAndNewStartEqualsEndThenStart(t *testing.T) {
	tests := []struct {
		name  string
		start Millis
		at    Millis
	}{
		{name: "forward", start: 1000, at: 4000},
		{name: "reversed", start: 6000, at: 2500},
		{name: "same position", start: 3000, at: 3000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Session{}.MarkStart(tt.start)

			combined, closed := base.MarkEndAndNewStart(tt.at)
			if !closed {
				t.Fatal("MarkEndAndNewStart() expected interval to be closed")
			}

			sequential, _ := base.MarkEnd(tt.at)
			sequential = sequential.MarkStart(tt.at)

			if !reflect.DeepEqual(combined, sequential) {
				t.Errorf("MarkEndAndNewStart() = %+v, want %+v", combined, sequential)
			}
			pending, ok := combined.Pending()
			if !ok || pending != tt.at {
				t.Errorf("Pending() = %v, %v, want %v, true", pending, ok, tt.at)
			}
		})
	}
}

func TestSession_MarkEndAndNewStartWithoutPending(t *testing.T) {
	s, closed := Session{}.MarkEndAndNewStart(7000)
	if closed {
		t.Error("expected no interval to be appended")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if pending, ok := s.Pending(); !ok || pending != 7000 {
		t.Errorf("Pending() = %v, %v, want 7000, true", pending, ok)
	}
}

func TestSession_TransitionsDoNotAliasConfirmed(t *testing.T) {
	first, _ := Session{}.MarkStart(0).MarkEnd(1000)
	second, _ := first.MarkStart(2000).MarkEnd(3000)
	third, _ := first.MarkStart(5000).MarkEnd(6000)

	if first.Len() != 1 {
		t.Errorf("first.Len() = %d, want 1", first.Len())
	}
	if got := second.Confirmed()[1]; got != (Interval{2000, 3000}) {
		t.Errorf("second interval = %v, want {2000 3000}", got)
	}
	if got := third.Confirmed()[1]; got != (Interval{5000, 6000}) {
		t.Errorf("third interval = %v, want {5000 6000}", got)
	}
}

func TestSession_DiscardIsIdempotent(t *testing.T) {
	s, _ := Session{}.MarkStart(0).MarkEnd(1000)
	s = s.MarkStart(2000)

	once := s.Discard()
	twice := once.Discard()

	if !once.IsEmpty() || !twice.IsEmpty() {
		t.Error("expected empty session after Discard")
	}
}

func TestSession_LiveDuration(t *testing.T) {
	if _, ok := (Session{}).LiveDuration(5000); ok {
		t.Error("LiveDuration() without pending start should report false")
	}

	s := Session{}.MarkStart(2000)
	tests := []struct {
		position Millis
		want     time.Duration
	}{
		{2000, 0},
		{3500, 1500 * time.Millisecond},
		{1000, time.Second},
	}
	for _, tt := range tests {
		got, ok := s.LiveDuration(tt.position)
		if !ok || got != tt.want {
			t.Errorf("LiveDuration(%d) = %v, %v, want %v, true", tt.position, got, ok, tt.want)
		}
	}
}

func TestSession_Summary(t *testing.T) {
	closed, _ := Session{}.MarkStart(1000).MarkEnd(5000)

	tests := []struct {
		name    string
		session Session
		kind    SummaryKind
		text    string
	}{
		{name: "empty", session: Session{}, kind: SummaryEmpty, text: "cut duration: 0s"},
		{name: "pending", session: Session{}.MarkStart(65000), kind: SummaryPending, text: "start set: 01:05"},
		{name: "closed", session: closed, kind: SummaryInterval, text: "cut: 00:01 - 00:05 (duration: 4.0s)"},
		{name: "pending after closed", session: closed.MarkStart(9000), kind: SummaryPending, text: "start set: 00:09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.session.Summary()
			if got.Kind != tt.kind {
				t.Errorf("Summary().Kind = %v, want %v", got.Kind, tt.kind)
			}
			if got.String() != tt.text {
				t.Errorf("Summary().String() = %q, want %q", got.String(), tt.text)
			}
		})
	}
}

func TestSession_Lines(t *testing.T) {
	s, _ := Session{}.MarkStart(0).MarkEnd(1000)
	s, _ = s.MarkStart(2000).MarkEnd(4000)

	want := []string{
		"1. 00:00 - 00:01 (1.0s)",
		"2. 00:02 - 00:04 (2.0s)",
	}
	if got := s.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
}
