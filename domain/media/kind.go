package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind distinguishes the audio editor from the video editor
type Kind int

const (
	Audio Kind = iota + 1
	Video
)

var (
	audioExtensions = []string{".wav"}
	videoExtensions = []string{".mp4", ".avi", ".mkv", ".mov"}
)

// ParseKind parses "audio" or "video"
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "audio":
		return Audio, nil
	case "video":
		return Video, nil
	}
	return 0, fmt.Errorf("unknown media kind %q: use audio or video", s)
}

// KindForPath infers the kind from the file extension
func KindForPath(path string) (Kind, bool) {
	for _, k := range []Kind{Audio, Video} {
		if k.Accepts(path) {
			return k, true
		}
	}
	return 0, false
}

// String returns "audio" or "video"
func (k Kind) String() string {
	switch k {
	case Audio:
		return "audio"
	case Video:
		return "video"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Extensions returns the accepted input extensions, lower case with the leading dot
func (k Kind) Extensions() []string {
	switch k {
	case Audio:
		return append([]string(nil), audioExtensions...)
	case Video:
		return append([]string(nil), videoExtensions...)
	}
	return nil
}

// Accepts returns true if path has one of the kind's input extensions
func (k Kind) Accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range k.Extensions() {
		if ext == e {
			return true
		}
	}
	return false
}

// OutputExtension returns the extension, without the dot, used for exported cuts
func (k Kind) OutputExtension() string {
	if k == Audio {
		return "wav"
	}
	return "mp4"
}
