package cut

import (
	"reflect"
	"testing"
)

func run(st State, events ...Event) (State, []Command) {
	var all []Command
	for _, ev := range events {
		var cmds []Command
		st, cmds = Reduce(st, ev)
		all = append(all, cmds...)
	}
	return st, all
}

func TestReduce_FileOpenedResetsSession(t *testing.T) {
	st, _ := run(State{},
		FileOpened{Path: "a.mp4"},
		PositionChanged{At: 1000},
		MarkStart{},
		PositionChanged{At: 2000},
		MarkEnd{},
		PositionChanged{At: 3000},
		MarkStart{},
	)

	for i := 0; i < 2; i++ {
		var cmds []Command
		st, cmds = Reduce(st, FileOpened{Path: "b.mp4"})
		if !st.Session.IsEmpty() {
			t.Fatalf("opening #%d: expected empty session", i+1)
		}
		if !reflect.DeepEqual(cmds, []Command{StopTicker{}}) {
			t.Errorf("opening #%d: commands = %v, want [StopTicker]", i+1, cmds)
		}
	}
	if st.Source != "b.mp4" || st.Position != 0 {
		t.Errorf("state = %+v, want source b.mp4 at position 0", st)
	}
}

func TestReduce_MarksUseLastPosition(t *testing.T) {
	st, cmds := run(State{},
		FileOpened{Path: "a.mp4"},
		PositionChanged{At: 1000},
		MarkStart{},
		PositionChanged{At: 5000},
		MarkEnd{},
	)

	want := []Interval{{Start: 1000, End: 5000}}
	if got := st.Session.Confirmed(); !reflect.DeepEqual(got, want) {
		t.Errorf("Confirmed() = %v, want %v", got, want)
	}
	wantCmds := []Command{StopTicker{}, StartTicker{}, StopTicker{}}
	if !reflect.DeepEqual(cmds, wantCmds) {
		t.Errorf("commands = %v, want %v", cmds, wantCmds)
	}
}

func TestReduce_IgnoredTransitions(t *testing.T) {
	tests := []struct {
		name  string
		state State
		event Event
	}{
		{name: "end without start", state: State{Source: "a.wav"}, event: MarkEnd{}},
		{name: "start without file", state: State{}, event: MarkStart{}},
		{name: "end and new start without file", state: State{}, event: MarkEndAndNewStart{}},
		{name: "export without intervals", state: State{Source: "a.wav"}, event: ExportRequested{}},
		{name: "export with only pending", state: State{Source: "a.wav", Session: Session{}.MarkStart(10)}, event: ExportRequested{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cmds := Reduce(tt.state, tt.event)
			if !reflect.DeepEqual(got, tt.state) {
				t.Errorf("state changed: got %+v, want %+v", got, tt.state)
			}
			if len(cmds) != 0 {
				t.Errorf("commands = %v, want none", cmds)
			}
		})
	}
}

func TestReduce_MarkEndAndNewStartKeepsTickerRunning(t *testing.T) {
	st, _ := run(State{}, FileOpened{Path: "a.mp4"}, PositionChanged{At: 1000}, MarkStart{})

	st, cmds := run(st, PositionChanged{At: 4000}, MarkEndAndNewStart{})
	if len(cmds) != 0 {
		t.Errorf("commands = %v, want none", cmds)
	}
	if got := st.Session.Confirmed(); !reflect.DeepEqual(got, []Interval{{1000, 4000}}) {
		t.Errorf("Confirmed() = %v", got)
	}
	if p, ok := st.Session.Pending(); !ok || p != 4000 {
		t.Errorf("Pending() = %v, %v, want 4000, true", p, ok)
	}

	fresh, cmds := run(State{}, FileOpened{Path: "a.mp4"}, PositionChanged{At: 2000}, MarkEndAndNewStart{})
	if !reflect.DeepEqual(cmds, []Command{StopTicker{}, StartTicker{}}) {
		t.Errorf("commands = %v, want [StopTicker StartTicker]", cmds)
	}
	if fresh.Session.Len() != 0 {
		t.Errorf("Len() = %d, want 0", fresh.Session.Len())
	}
}

func TestReduce_ExportRequestedEmitsExport(t *testing.T) {
	st, _ := run(State{},
		FileOpened{Path: "talk.wav"},
		PositionChanged{At: 0}, MarkStart{},
		PositionChanged{At: 1000}, MarkEnd{},
		PositionChanged{At: 2000}, MarkStart{},
		PositionChanged{At: 4000}, MarkEnd{},
		PositionChanged{At: 6000}, MarkStart{},
	)

	after, cmds := Reduce(st, ExportRequested{})
	if !reflect.DeepEqual(after, st) {
		t.Error("ExportRequested must not change state")
	}
	if len(cmds) != 1 {
		t.Fatalf("commands = %v, want one Export", cmds)
	}
	exp, ok := cmds[0].(Export)
	if !ok {
		t.Fatalf("command = %T, want Export", cmds[0])
	}
	want := Export{
		Source:         "talk.wav",
		Intervals:      []Interval{{0, 1000}, {2000, 4000}},
		DroppedPending: true,
		PendingStart:   6000,
	}
	if !reflect.DeepEqual(exp, want) {
		t.Errorf("Export = %+v, want %+v", exp, want)
	}
}

func TestReduce_ExportFinishedClearsSession(t *testing.T) {
	st, _ := run(State{},
		FileOpened{Path: "talk.wav"},
		PositionChanged{At: 0}, MarkStart{},
		PositionChanged{At: 1000}, MarkEnd{},
		PositionChanged{At: 1500}, MarkStart{},
	)

	st, cmds := Reduce(st, ExportFinished{})
	if !st.Session.IsEmpty() {
		t.Error("expected empty session after ExportFinished")
	}
	if st.Source != "talk.wav" || st.Position != 1500 {
		t.Errorf("state = %+v, want source and position preserved", st)
	}
	if !reflect.DeepEqual(cmds, []Command{StopTicker{}}) {
		t.Errorf("commands = %v, want [StopTicker]", cmds)
	}
}

func TestReduce_NegativePositionClamped(t *testing.T) {
	st, _ := Reduce(State{Source: "a.mp4"}, PositionChanged{At: -200})
	if st.Position != 0 {
		t.Errorf("Position = %d, want 0", st.Position)
	}
}
