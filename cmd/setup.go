package cmd

import (
	"fmt"
	"os"
	"time"

	"media-cutter/infrastructure/config"
	"media-cutter/infrastructure/logging"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command asks where ffmpeg and ffprobe live, where cuts should be saved
and how the editor should play files. Every question has a default.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, ConfigPath(), os.Stdout)
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, output OutputWriter) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(output, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(output, "Welcome to media-cutter setup!")
	fmt.Fprintln(output)

	cfg := config.Default()

	if err := promptFFmpeg(prompter, cfg); err != nil {
		return err
	}
	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}
	if err := promptPlayback(prompter, cfg); err != nil {
		return err
	}
	if err := promptLogging(prompter, cfg); err != nil {
		return err
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(output)
	fmt.Fprintf(output, "Configuration saved to %s\n", configPath)
	return nil
}

func promptFFmpeg(prompter Prompter, cfg *config.Config) error {
	path, err := prompter.Input("Path to the ffmpeg executable?", cfg.FFmpeg.Path)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if path != "" {
		cfg.FFmpeg.Path = path
	}

	probe, err := prompter.Input("Path to the ffprobe executable?", cfg.FFmpeg.FFprobePath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if probe != "" {
		cfg.FFmpeg.FFprobePath = probe
	}
	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	dir, err := prompter.Input("Where should cuts be saved? (empty: next to the source)", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Paths.OutputDirectory = dir
	return nil
}

func promptPlayback(prompter Prompter, cfg *config.Config) error {
	tick, err := prompter.Input("Live duration refresh interval?", cfg.Playback.TickInterval.String())
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if tick != "" {
		d, err := time.ParseDuration(tick)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid refresh interval %q: use a duration such as 100ms", tick)
		}
		cfg.Playback.TickInterval = d
	}

	autoplay, err := prompter.Confirm("Start playback when a file is opened?", cfg.Playback.Autoplay)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Playback.Autoplay = autoplay
	return nil
}

func promptLogging(prompter Prompter, cfg *config.Config) error {
	level, err := prompter.Input("Diagnostic log level (debug, info, warn, error, off)?", cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if level == "" {
		return nil
	}
	if !logging.ValidLevel(level) {
		return fmt.Errorf("unknown log level %q", level)
	}
	cfg.Logging.Level = level
	return nil
}
