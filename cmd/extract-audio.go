package cmd

import (
	"context"
	"fmt"
	"os"

	"media-cutter/application/convert"
	"media-cutter/domain/media"
	"media-cutter/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	extractSourcePath string
	extractOutputPath string
)

var extractAudioCmd = &cobra.Command{
	Use:   "extract-audio",
	Short: "Extract audio from a video file",
	Long: `Extract the audio track of a video (.mp4 .avi .mkv .mov) as 16-bit PCM
WAV, 44100 Hz, stereo. The output defaults to the source path with a .wav
extension and is overwritten if it exists.

Example:
  media-cutter extract-audio --source "lecture.mp4"
  media-cutter extract-audio --source "/path/to/video.mkv" --output "/audio/lecture.wav"`,
	RunE: runExtractAudio,
}

func init() {
	rootCmd.AddCommand(extractAudioCmd)
	extractAudioCmd.Flags().StringVar(&extractSourcePath, "source", "", "Path to source video file (required)")
	extractAudioCmd.Flags().StringVar(&extractOutputPath, "output", "", "Output WAV path (default: source with .wav)")
	extractAudioCmd.MarkFlagRequired("source")
}

func runExtractAudio(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	service := convert.NewService(newTranscoder(cfg), filesystem.NewChecker(), cfg.FFmpeg.VerifyTimeout)
	return RunExtractAudioWithDependencies(cmd.Context(), service, extractSourcePath, extractOutputPath, os.Stdout)
}

// RunExtractAudioWithDependencies runs the extract-audio command with injected dependencies (for testing)
func RunExtractAudioWithDependencies(
	ctx context.Context,
	service *convert.Service,
	sourcePath string,
	outputPath string,
	output OutputWriter,
) error {
	fmt.Fprintf(output, "Extracting audio from %s (%s, %d Hz, %d channels)...\n",
		sourcePath, media.PCMCodec, media.PCMSampleRate, media.PCMChannels)

	result, err := service.Extract(ctx, convert.Input{
		SourcePath: sourcePath,
		OutputPath: outputPath,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Successfully created: %s\n", result.OutputPath)
	return nil
}
