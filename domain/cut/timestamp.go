package cut

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Millis is a media position or length in milliseconds
type Millis int64

// FromDuration converts a time.Duration to Millis, truncating sub-millisecond precision
func FromDuration(d time.Duration) Millis {
	return Millis(d / time.Millisecond)
}

// Duration returns m as a time.Duration
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// Seconds returns m as fractional seconds
func (m Millis) Seconds() float64 {
	return float64(m) / 1000.0
}

// Clock formats m as MM:SS, the way the playback position is displayed.
// Minutes are not wrapped into hours.
func (m Millis) Clock() string {
	if m < 0 {
		m = 0
	}
	s := int64(m) / 1000
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// String returns the timestamp in HH:MM:SS.mmm format
func (m Millis) String() string {
	if m < 0 {
		return "-" + (-m).String()
	}
	ms := int64(m)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3600000, (ms/60000)%60, (ms/1000)%60, ms%1000)
}

// MaxTimestamp is the largest timestamp ParseTimestamp accepts, 1000 hours
const MaxTimestamp = Millis(1000 * 3600000)

// timestampRegex matches [[HH:]MM:]SS[.mmm]
var timestampRegex = regexp.MustCompile(`^(?:(?:(\d+):)?(\d{1,2}):)?(\d+)(?:\.(\d{1,3}))?$`)

// ParseTimestamp parses a timestamp in HH:MM:SS, MM:SS or SS form, each
// with an optional fractional part of up to three digits. Values beyond
// MaxTimestamp are rejected.
func ParseTimestamp(s string) (Millis, error) {
	matches := timestampRegex.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid timestamp format %q: expected HH:MM:SS[.mmm]", s)
	}

	limit := int64(MaxTimestamp / 1000)
	hours, err1 := strconv.ParseInt(orZero(matches[1]), 10, 64)
	minutes, err2 := strconv.ParseInt(orZero(matches[2]), 10, 64)
	seconds, err3 := strconv.ParseInt(matches[3], 10, 64)
	if err1 != nil || err2 != nil || err3 != nil || hours > limit/3600 || seconds > limit {
		return 0, fmt.Errorf("invalid timestamp %q: exceeds %s", s, MaxTimestamp)
	}

	hasMinutes := matches[2] != ""
	if hasMinutes && seconds > 59 {
		return 0, fmt.Errorf("invalid timestamp %q: seconds must be 0-59", s)
	}
	if matches[1] != "" && minutes > 59 {
		return 0, fmt.Errorf("invalid timestamp %q: minutes must be 0-59", s)
	}

	var frac int64
	if f := matches[4]; f != "" {
		for len(f) < 3 {
			f += "0"
		}
		frac, _ = strconv.ParseInt(f, 10, 64)
	}

	total := Millis(hours*3600000 + minutes*60000 + seconds*1000 + frac)
	if total > MaxTimestamp {
		return 0, fmt.Errorf("invalid timestamp %q: exceeds %s", s, MaxTimestamp)
	}
	return total, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
