package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"media-cutter/application/editor"
	"media-cutter/domain/cut"
	"media-cutter/domain/media"
	"media-cutter/infrastructure/filesystem"
	"media-cutter/infrastructure/logging"

	"github.com/spf13/cobra"
)

var (
	trimSourcePath string
	trimCuts       []string
	trimOutputDir  string
	trimYes        bool
)

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Cut a file into one output per interval",
	Long: `Cut an audio (.wav) or video (.mp4 .avi .mkv .mov) file into one output
file per --cut interval, without re-encoding.

Intervals are START-END with timestamps in SS, MM:SS or HH:MM:SS form and an
optional .mmm fraction. Reversed intervals are swapped. Outputs are named
{name}_cut_{n}.{ext} in the output directory (default: next to the source);
you are asked to confirm each name unless --yes is given.

Example:
  media-cutter trim --source talk.mp4 --cut 0:05-1:30 --cut 2:00-2:45.5
  media-cutter trim --source voice.wav --cut 10-20 --out-dir ./cuts --yes`,
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)
	trimCmd.Flags().StringVar(&trimSourcePath, "source", "", "Path to source file (required)")
	trimCmd.Flags().StringArrayVar(&trimCuts, "cut", nil, "Interval START-END, repeatable (required)")
	trimCmd.Flags().StringVar(&trimOutputDir, "out-dir", "", "Output directory (default from config, else next to the source)")
	trimCmd.Flags().BoolVar(&trimYes, "yes", false, "Accept the suggested output names without asking")
	trimCmd.MarkFlagRequired("source")
	trimCmd.MarkFlagRequired("cut")
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	outDir := trimOutputDir
	if outDir == "" {
		outDir = cfg.Paths.OutputDirectory
	}

	var names editor.NameResolver = editor.AcceptSuggested{}
	if !trimYes {
		names = &PromptNameResolver{Prompter: DefaultPrompter}
	}

	checker := filesystem.NewChecker()
	exporter := editor.NewExporter(newTranscoder(cfg),
		editor.WithNameResolver(names),
		editor.WithDirectoryEnsurer(checker),
		editor.WithVerifyTimeout(cfg.FFmpeg.VerifyTimeout),
		editor.WithExportLogger(logging.WithComponent("export")),
	)

	return RunTrimWithDependencies(cmd.Context(), exporter, checker, trimSourcePath, trimCuts, outDir, os.Stdout)
}

// ParseCut parses a START-END interval
func ParseCut(s string) (cut.Interval, error) {
	start, end, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return cut.Interval{}, fmt.Errorf("invalid cut %q: expected START-END", s)
	}
	a, err := cut.ParseTimestamp(strings.TrimSpace(start))
	if err != nil {
		return cut.Interval{}, fmt.Errorf("invalid cut %q: %w", s, err)
	}
	b, err := cut.ParseTimestamp(strings.TrimSpace(end))
	if err != nil {
		return cut.Interval{}, fmt.Errorf("invalid cut %q: %w", s, err)
	}
	return cut.NewInterval(a, b), nil
}

// RunTrimWithDependencies runs the trim command with injected dependencies (for testing)
func RunTrimWithDependencies(
	ctx context.Context,
	exporter *editor.Exporter,
	fileChecker media.FileChecker,
	sourcePath string,
	cuts []string,
	outputDir string,
	output OutputWriter,
) error {
	kind, ok := media.KindForPath(sourcePath)
	if !ok {
		return &media.LoadError{Path: sourcePath, Err: media.ErrUnsupportedFormat}
	}
	if !fileChecker.Exists(sourcePath) {
		return fmt.Errorf("source file does not exist: %s", sourcePath)
	}

	intervals := make([]cut.Interval, 0, len(cuts))
	for _, c := range cuts {
		iv, err := ParseCut(c)
		if err != nil {
			return err
		}
		intervals = append(intervals, iv)
	}

	fmt.Fprintf(output, "Cutting %d interval(s) from %s...\n", len(intervals), sourcePath)
	result, err := exporter.ExportAll(ctx, editor.ExportRequest{
		Source:    sourcePath,
		Kind:      kind,
		Intervals: intervals,
		Directory: outputDir,
	})
	if result != nil {
		editor.WriteReport(output, result)
	}
	if err != nil {
		return err
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d cuts failed", result.Failed, result.Total)
	}
	return nil
}
