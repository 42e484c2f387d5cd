package cmd

import (
	"media-cutter/domain/media"
	"media-cutter/infrastructure/config"
	"media-cutter/infrastructure/ffmpeg"
	"media-cutter/infrastructure/logging"
	"media-cutter/infrastructure/playback"
	"media-cutter/infrastructure/probe"
)

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

const defaultFFprobe = "ffprobe"

func newTranscoder(cfg *config.Config) *ffmpeg.Transcoder {
	return ffmpeg.NewTranscoder(
		ffmpeg.WithFFmpegPath(cfg.FFmpeg.Path),
		ffmpeg.WithLogger(logging.WithComponent("ffmpeg")),
	)
}

// newProber probes videos through Vidio, which only finds ffprobe on PATH.
// A configured ffprobe location sends every probe through that binary.
func newProber(cfg *config.Config) media.Prober {
	ffprobe := ffmpeg.NewProber(cfg.FFmpeg.FFprobePath, nil)
	if p := cfg.FFmpeg.FFprobePath; p != "" && p != defaultFFprobe {
		return &probe.ByKind{Audio: ffprobe}
	}
	return &probe.ByKind{
		Audio: ffprobe,
		Video: probe.NewVideoProber(),
	}
}

func newPlayer(cfg *config.Config) *playback.ClockPlayer {
	return playback.NewClockPlayer(newProber(cfg))
}
