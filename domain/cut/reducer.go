package cut

// State is everything the reducer needs to decide a transition: the cut
// session, the last known playback position and the loaded source.
type State struct {
	Session  Session
	Position Millis
	Source   string
}

// Loaded returns true once a source file has been opened
func (s State) Loaded() bool {
	return s.Source != ""
}

// Event is an input to Reduce
type Event interface {
	isEvent()
}

// FileOpened resets the session for a newly loaded source
type FileOpened struct {
	Path string
}

// PositionChanged reports the current playback position
type PositionChanged struct {
	At Millis
}

// MarkStart opens a pending interval at the current position
type MarkStart struct{}

// MarkEnd closes the pending interval at the current position
type MarkEnd struct{}

// MarkEndAndNewStart closes the pending interval and opens the next one at the same position
type MarkEndAndNewStart struct{}

// DiscardPending clears all cut points without exporting
type DiscardPending struct{}

// ExportRequested asks for the confirmed intervals to be exported
type ExportRequested struct{}

// ExportFinished reports that an export attempt completed, whatever its outcome
type ExportFinished struct{}

func (FileOpened) isEvent()         {}
func (PositionChanged) isEvent()    {}
func (MarkStart) isEvent()          {}
func (MarkEnd) isEvent()            {}
func (MarkEndAndNewStart) isEvent() {}
func (DiscardPending) isEvent()     {}
func (ExportRequested) isEvent()    {}
func (ExportFinished) isEvent()     {}

// Command is a side effect requested by Reduce
type Command interface {
	isCommand()
}

// StartTicker starts the periodic live duration refresh
type StartTicker struct{}

// StopTicker stops the periodic live duration refresh
type StopTicker struct{}

// Export asks for Intervals of Source to be written out. DroppedPending is
// true when an unterminated start was left out of the export.
type Export struct {
	Source         string
	Intervals      []Interval
	DroppedPending bool
	PendingStart   Millis
}

func (StartTicker) isCommand() {}
func (StopTicker) isCommand()  {}
func (Export) isCommand()      {}

// Reduce applies ev to st and returns the next state together with the side
// effects the caller must perform. Reduce never fails; transitions that do
// not apply to the current state return st unchanged and no commands.
func Reduce(st State, ev Event) (State, []Command) {
	switch e := ev.(type) {
	case FileOpened:
		return State{Source: e.Path}, []Command{StopTicker{}}

	case PositionChanged:
		at := e.At
		if at < 0 {
			at = 0
		}
		st.Position = at
		return st, nil

	case MarkStart:
		if !st.Loaded() {
			return st, nil
		}
		st.Session = st.Session.MarkStart(st.Position)
		return st, []Command{StartTicker{}}

	case MarkEnd:
		next, closed := st.Session.MarkEnd(st.Position)
		if !closed {
			return st, nil
		}
		st.Session = next
		return st, []Command{StopTicker{}}

	case MarkEndAndNewStart:
		if !st.Loaded() {
			return st, nil
		}
		_, wasPending := st.Session.Pending()
		st.Session, _ = st.Session.MarkEndAndNewStart(st.Position)
		if wasPending {
			// ticker is already running for the previous start
			return st, nil
		}
		return st, []Command{StartTicker{}}

	case DiscardPending:
		st.Session = st.Session.Discard()
		return st, []Command{StopTicker{}}

	case ExportRequested:
		if !st.Loaded() || st.Session.Len() == 0 {
			return st, nil
		}
		pending, hasPending := st.Session.Pending()
		return st, []Command{Export{
			Source:         st.Source,
			Intervals:      st.Session.Confirmed(),
			DroppedPending: hasPending,
			PendingStart:   pending,
		}}

	case ExportFinished:
		st.Session = st.Session.Discard()
		return st, []Command{StopTicker{}}
	}

	return st, nil
}
