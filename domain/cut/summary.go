package cut

import (
	"fmt"
	"time"
)

// SummaryKind identifies which of the three display states a Summary describes
type SummaryKind int

const (
	// SummaryEmpty means nothing is pending and nothing is confirmed
	SummaryEmpty SummaryKind = iota
	// SummaryPending means a start is marked and waiting for its end
	SummaryPending
	// SummaryInterval describes the most recently confirmed interval
	SummaryInterval
)

// Summary is the structured form of the cut info line
type Summary struct {
	Kind         SummaryKind
	PendingStart Millis
	Interval     Interval
}

// Duration returns the summarized interval's duration, zero for other kinds
func (s Summary) Duration() time.Duration {
	if s.Kind != SummaryInterval {
		return 0
	}
	return s.Interval.Duration()
}

// String renders the summary for display
func (s Summary) String() string {
	switch s.Kind {
	case SummaryPending:
		return fmt.Sprintf("start set: %s", s.PendingStart.Clock())
	case SummaryInterval:
		return fmt.Sprintf("cut: %s - %s (duration: %.1fs)",
			s.Interval.Start.Clock(), s.Interval.End.Clock(), s.Interval.Length().Seconds())
	default:
		return "cut duration: 0s"
	}
}
