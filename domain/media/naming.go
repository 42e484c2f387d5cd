package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// BaseName returns the file name of path without directory and extension
func BaseName(path string) string {
	name := filepath.Base(path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// CutFileName returns the suggested file name for the index-th exported cut,
// counting from 1: {base}_cut_{index}.{ext}
func CutFileName(base string, index int, kind Kind) string {
	return fmt.Sprintf("%s_cut_%d.%s", base, index, kind.OutputExtension())
}

// CutOutputPath joins CutFileName onto dir
func CutOutputPath(dir, source string, index int, kind Kind) string {
	return filepath.Join(dir, CutFileName(BaseName(source), index, kind))
}

// WAVPath returns source with its extension replaced by .wav
func WAVPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".wav"
}
