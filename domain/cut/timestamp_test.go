package cut

import (
	"strings"
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Millis
		wantErr bool
		errMsg  string
	}{
		{name: "hours minutes seconds", input: "01:30:45", want: 5445000},
		{name: "with milliseconds", input: "00:00:01.250", want: 1250},
		{name: "short fraction", input: "00:00:02.5", want: 2500},
		{name: "minutes seconds", input: "02:05", want: 125000},
		{name: "seconds only", input: "90", want: 90000},
		{name: "fractional seconds only", input: "4.05", want: 4050},
		{name: "all zeros", input: "00:00:00", want: 0},
		{name: "large hours value", input: "99:00:00", want: 99 * 3600000},
		{name: "empty string", input: "", wantErr: true, errMsg: "invalid timestamp format"},
		{name: "wrong separator", input: "01-30-45", wantErr: true, errMsg: "invalid timestamp format"},
		{name: "too many fraction digits", input: "00:00:01.2500", wantErr: true, errMsg: "invalid timestamp format"},
		{name: "minutes too high", input: "01:60:00", wantErr: true, errMsg: "minutes must be 0-59"},
		{name: "seconds too high", input: "01:30:60", wantErr: true, errMsg: "seconds must be 0-59"},
		{name: "negative", input: "-5", wantErr: true, errMsg: "invalid timestamp format"},
		{name: "upper bound", input: "1000:00:00", want: MaxTimestamp},
		{name: "hours beyond bound", input: "1000:00:01", wantErr: true, errMsg: "exceeds"},
		{name: "huge hours", input: "9999999999999:00:00", wantErr: true, errMsg: "exceeds"},
		{name: "huge seconds", input: "99999999999999999999", wantErr: true, errMsg: "exceeds"},
		{name: "seconds beyond bound", input: "3600000001", wantErr: true, errMsg: "exceeds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTimestamp(%q) expected error, got nil", tt.input)
					return
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("ParseTimestamp(%q) error = %v, want error containing %q", tt.input, err, tt.errMsg)
				}
				return
			}

			if err != nil {
				t.Errorf("ParseTimestamp(%q) unexpected error: %v", tt.input, err)
				return
			}
			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMillis_Clock(t *testing.T) {
	tests := []struct {
		in   Millis
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{61000, "01:01"},
		{3725000, "62:05"},
		{-10, "00:00"},
	}

	for _, tt := range tests {
		if got := tt.in.Clock(); got != tt.want {
			t.Errorf("Millis(%d).Clock() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMillis_String(t *testing.T) {
	if got := Millis(3723004).String(); got != "01:02:03.004" {
		t.Errorf("String() = %q, want %q", got, "01:02:03.004")
	}
}

func TestMillis_Conversions(t *testing.T) {
	if got := FromDuration(1500*time.Millisecond + 400*time.Microsecond); got != 1500 {
		t.Errorf("FromDuration() = %d, want 1500", got)
	}
	if got := Millis(2250).Duration(); got != 2250*time.Millisecond {
		t.Errorf("Duration() = %v, want 2.25s", got)
	}
	if got := Millis(2250).Seconds(); got != 2.25 {
		t.Errorf("Seconds() = %v, want 2.25", got)
	}
}
