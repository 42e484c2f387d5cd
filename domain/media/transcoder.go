package media

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"media-cutter/domain/cut"
)

// Fixed output parameters for audio extraction
const (
	PCMCodec      = "pcm_s16le"
	PCMSampleRate = 44100
	PCMChannels   = 2
)

// Transcoder defines the external media operations the editors depend on
// This is a port that can be implemented by different infrastructure adapters
type Transcoder interface {
	// Trim writes the requested range of the source to req.OutputPath
	Trim(ctx context.Context, req *TrimRequest) error
	// ExtractAudio writes the audio track of a video as PCM WAV
	ExtractAudio(ctx context.Context, req *AudioRequest) error
}

// Verifier is implemented by transcoders that can check their binary up front
type Verifier interface {
	VerifyInstalled(ctx context.Context) error
}

// FileChecker defines the interface for checking file existence
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}

// TrimRequest represents one interval of a source to be written to its own file
type TrimRequest struct {
	SourcePath string
	Start      time.Duration
	Length     time.Duration
	OutputPath string
}

// NewTrimRequest creates a TrimRequest covering iv of source
func NewTrimRequest(source string, iv cut.Interval, outputPath string) (*TrimRequest, error) {
	req := &TrimRequest{
		SourcePath: source,
		Start:      iv.Start.Duration(),
		Length:     iv.Duration(),
		OutputPath: outputPath,
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks that the trim request is valid
func (r *TrimRequest) Validate() error {
	if r.SourcePath == "" {
		return fmt.Errorf("source path is required")
	}
	if r.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if r.Start < 0 {
		return fmt.Errorf("start %v must not be negative", r.Start)
	}
	if r.Length <= 0 {
		return fmt.Errorf("cut length must be positive, got %v", r.Length)
	}
	return nil
}

// StartSeconds returns the start offset formatted for ffmpeg -ss
func (r *TrimRequest) StartSeconds() string {
	return formatSeconds(r.Start)
}

// LengthSeconds returns the length formatted for ffmpeg -t
func (r *TrimRequest) LengthSeconds() string {
	return formatSeconds(r.Length)
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

// AudioRequest represents a request to extract the audio of a video as WAV
type AudioRequest struct {
	SourcePath string
	OutputPath string
}

// NewAudioRequest creates an AudioRequest; an empty output defaults to the
// source path with a .wav extension
func NewAudioRequest(source, output string) (*AudioRequest, error) {
	if source == "" {
		return nil, fmt.Errorf("source video path is required")
	}
	if output == "" {
		output = WAVPath(source)
	}
	if output == source {
		return nil, fmt.Errorf("output %s would overwrite the source", output)
	}
	return &AudioRequest{SourcePath: source, OutputPath: output}, nil
}
