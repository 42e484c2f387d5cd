package editor

import (
	"fmt"
	"strconv"
	"strings"

	"media-cutter/domain/cut"
)

// Op is an editor operation entered by the user
type Op int

const (
	OpNone Op = iota
	OpOpen
	OpPlay
	OpPause
	OpToggle
	OpSeek
	OpForward
	OpBack
	OpJump
	OpNudge
	OpSpeed
	OpRate
	OpStart
	OpEnd
	OpNext
	OpDiscard
	OpList
	OpStatus
	OpSave
	OpHelp
	OpQuit
)

// Input is one parsed editor command line
type Input struct {
	Op Op
	// Arg is the path argument of open and save
	Arg string
	// At is the absolute position of seek, or the step of forward and back
	// when HasAt is set
	At    cut.Millis
	HasAt bool
	Rate  float64
}

var opNames = map[string]Op{
	"open":    OpOpen,
	"o":       OpOpen,
	"play":    OpPlay,
	"pause":   OpPause,
	"toggle":  OpToggle,
	"t":       OpToggle,
	"seek":    OpSeek,
	"goto":    OpSeek,
	"fwd":     OpForward,
	"forward": OpForward,
	"f":       OpForward,
	"back":    OpBack,
	"b":       OpBack,
	"jump":    OpJump,
	"nudge":   OpNudge,
	"speed":   OpSpeed,
	"rate":    OpRate,
	"start":   OpStart,
	"s":       OpStart,
	"end":     OpEnd,
	"e":       OpEnd,
	"next":    OpNext,
	"n":       OpNext,
	"discard": OpDiscard,
	"clear":   OpDiscard,
	"list":    OpList,
	"l":       OpList,
	"status":  OpStatus,
	"save":    OpSave,
	"export":  OpSave,
	"help":    OpHelp,
	"h":       OpHelp,
	"?":       OpHelp,
	"quit":    OpQuit,
	"q":       OpQuit,
	"exit":    OpQuit,
}

// ParseInput parses one command line. Blank lines and # comments yield OpNone.
func ParseInput(line string) (Input, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Input{Op: OpNone}, nil
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	op, ok := opNames[strings.ToLower(name)]
	if !ok {
		return Input{}, fmt.Errorf("unknown command %q, type help for a list", name)
	}

	in := Input{Op: op}
	switch op {
	case OpOpen:
		if rest == "" {
			return Input{}, fmt.Errorf("open requires a file path")
		}
		in.Arg = unquote(rest)

	case OpSave:
		in.Arg = unquote(rest)

	case OpSeek:
		if rest == "" {
			return Input{}, fmt.Errorf("seek requires a timestamp")
		}
		at, err := cut.ParseTimestamp(rest)
		if err != nil {
			return Input{}, err
		}
		in.At, in.HasAt = at, true

	case OpForward, OpBack:
		if rest != "" {
			step, err := cut.ParseTimestamp(rest)
			if err != nil {
				return Input{}, err
			}
			in.At, in.HasAt = step, true
		}

	case OpRate:
		rate, err := strconv.ParseFloat(strings.TrimSuffix(rest, "x"), 64)
		if err != nil {
			return Input{}, fmt.Errorf("rate requires a number such as 1.5: %w", err)
		}
		in.Rate = rate

	default:
		if rest != "" {
			return Input{}, fmt.Errorf("%s takes no arguments", name)
		}
	}

	return in, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// Help lists the editor commands
const Help = `commands:
  open PATH        load a file
  play | pause     control playback
  toggle           play or pause
  seek TS          go to a position (SS, MM:SS or HH:MM:SS[.mmm])
  fwd [TS]         skip forward (default seek step)
  back [TS]        skip back (default seek step)
  jump | nudge     skip forward by the jump step, back by the nudge step
  speed            cycle the playback rate
  rate R           set the playback rate (0.5, 1, 1.5, 2)
  start            mark the start of a cut
  end              mark the end of the pending cut
  next             end the pending cut and start a new one
  discard          drop all cut points
  list             show confirmed cuts
  status           show position and cut info
  save [DIR]       export every confirmed cut
  quit             leave the editor`
