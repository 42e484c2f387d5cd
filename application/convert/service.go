package convert

import (
	"context"
	"fmt"
	"time"

	"media-cutter/domain/media"
)

// Result contains the result of an audio extraction operation
type Result struct {
	SourcePath string
	OutputPath string
}

// Service coordinates audio extraction operations
type Service struct {
	transcoder    media.Transcoder
	fileChecker   media.FileChecker
	verifyTimeout time.Duration
}

// NewService creates a new audio extraction service. A positive
// verifyTimeout bounds the check that the transcoder is installed.
func NewService(transcoder media.Transcoder, fileChecker media.FileChecker, verifyTimeout time.Duration) *Service {
	return &Service{
		transcoder:    transcoder,
		fileChecker:   fileChecker,
		verifyTimeout: verifyTimeout,
	}
}

// Input represents the input for an audio extraction operation
type Input struct {
	SourcePath string
	OutputPath string // Optional, defaults to the source path with .wav
}

// Extract writes the audio track of a video as 16-bit PCM stereo WAV
func (s *Service) Extract(ctx context.Context, input Input) (*Result, error) {
	if input.SourcePath == "" {
		return nil, fmt.Errorf("source video path is required")
	}
	if !media.Video.Accepts(input.SourcePath) {
		return nil, &media.LoadError{
			Path: input.SourcePath,
			Err:  fmt.Errorf("%w: expected one of %v", media.ErrUnsupportedFormat, media.Video.Extensions()),
		}
	}
	if !s.fileChecker.Exists(input.SourcePath) {
		return nil, fmt.Errorf("source video does not exist: %s", input.SourcePath)
	}

	req, err := media.NewAudioRequest(input.SourcePath, input.OutputPath)
	if err != nil {
		return nil, err
	}

	if err := s.verify(ctx); err != nil {
		return nil, err
	}

	if err := s.transcoder.ExtractAudio(ctx, req); err != nil {
		return nil, err
	}

	return &Result{
		SourcePath: req.SourcePath,
		OutputPath: req.OutputPath,
	}, nil
}

func (s *Service) verify(ctx context.Context) error {
	v, ok := s.transcoder.(media.Verifier)
	if !ok {
		return nil
	}
	if s.verifyTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.verifyTimeout)
		defer cancel()
	}
	if err := v.VerifyInstalled(ctx); err != nil {
		return fmt.Errorf("ffmpeg verification failed: %w", err)
	}
	return nil
}
