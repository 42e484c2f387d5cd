package cut

import (
	"fmt"
	"time"
)

// Interval is a confirmed [Start, End) range of the source media
type Interval struct {
	Start Millis
	End   Millis
}

// NewInterval builds an interval from two marks, swapping them when the end
// was marked before the start
func NewInterval(start, end Millis) Interval {
	if end < start {
		start, end = end, start
	}
	return Interval{Start: start, End: end}
}

// Length returns End - Start
func (i Interval) Length() Millis {
	return i.End - i.Start
}

// Duration returns the interval length as a time.Duration
func (i Interval) Duration() time.Duration {
	return i.Length().Duration()
}

// IsEmpty returns true if the interval has zero length
func (i Interval) IsEmpty() bool {
	return i.Length() == 0
}

// String returns the interval as "MM:SS - MM:SS (N.Ns)"
func (i Interval) String() string {
	return fmt.Sprintf("%s - %s (%.1fs)", i.Start.Clock(), i.End.Clock(), i.Length().Seconds())
}
