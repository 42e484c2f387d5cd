package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strconv"

	"media-cutter/domain/media"
	"media-cutter/infrastructure/logging"

	"github.com/rs/zerolog"
)

// Transcoder implements media.Transcoder using ffmpeg
type Transcoder struct {
	ffmpegPath string
	runner     CommandRunner
	logger     zerolog.Logger
}

// Option is a functional option for configuring Transcoder
type Option func(*Transcoder)

// WithFFmpegPath sets a custom ffmpeg executable path
func WithFFmpegPath(path string) Option {
	return func(t *Transcoder) {
		if path != "" {
			t.ffmpegPath = path
		}
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) Option {
	return func(t *Transcoder) {
		t.runner = runner
	}
}

// WithLogger sets the logger used for command diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(t *Transcoder) {
		t.logger = logger
	}
}

// NewTranscoder creates a new FFmpeg-based transcoder
func NewTranscoder(opts ...Option) *Transcoder {
	t := &Transcoder{
		ffmpegPath: "ffmpeg",
		runner:     &ExecCommandRunner{},
		logger:     logging.WithComponent("ffmpeg"),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// TrimArgs returns the ffmpeg arguments for req
func TrimArgs(req *media.TrimRequest) []string {
	return []string{
		"-i", req.SourcePath,
		"-ss", req.StartSeconds(),
		"-t", req.LengthSeconds(),
		"-c", "copy", // stream copy, no re-encode
		"-y", // the output name has already been confirmed
		req.OutputPath,
	}
}

// ExtractAudioArgs returns the ffmpeg arguments for req
func ExtractAudioArgs(req *media.AudioRequest) []string {
	return []string{
		"-i", req.SourcePath,
		"-vn",
		"-acodec", media.PCMCodec,
		"-ar", strconv.Itoa(media.PCMSampleRate),
		"-ac", strconv.Itoa(media.PCMChannels),
		"-y",
		req.OutputPath,
	}
}

// Trim implements media.Transcoder
func (t *Transcoder) Trim(ctx context.Context, req *media.TrimRequest) error {
	return t.run(ctx, "trim", req.OutputPath, TrimArgs(req))
}

// ExtractAudio implements media.Transcoder
func (t *Transcoder) ExtractAudio(ctx context.Context, req *media.AudioRequest) error {
	return t.run(ctx, "extract audio", req.OutputPath, ExtractAudioArgs(req))
}

func (t *Transcoder) run(ctx context.Context, op, output string, args []string) error {
	t.logger.Debug().Str("op", op).Strs("args", args).Msg("executing ffmpeg")

	err := t.runner.Run(ctx, t.ffmpegPath, args...)
	if err == nil {
		t.logger.Debug().Str("op", op).Str("output", output).Msg("ffmpeg completed")
		return nil
	}

	if isMissingBinary(err) {
		err = fmt.Errorf("%w: %v", media.ErrTranscoderMissing, err)
	}
	terr := &media.TranscodeError{Op: op, Output: output, Err: err}
	var cerr *CommandError
	if errors.As(err, &cerr) {
		terr.Stderr = cerr.Stderr
	}
	return terr
}

// VerifyInstalled checks that ffmpeg is available
func (t *Transcoder) VerifyInstalled(ctx context.Context) error {
	if _, err := t.runner.Output(ctx, t.ffmpegPath, "-version"); err != nil {
		return fmt.Errorf("%w: ffmpeg not found or not executable: %v", media.ErrTranscoderMissing, err)
	}
	return nil
}

func isMissingBinary(err error) bool {
	return errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist)
}

// Ensure Transcoder implements the media ports
var (
	_ media.Transcoder = (*Transcoder)(nil)
	_ media.Verifier   = (*Transcoder)(nil)
)
