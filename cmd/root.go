package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"media-cutter/infrastructure/config"
	"media-cutter/infrastructure/logging"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
	cfgErr   error
)

var rootCmd = &cobra.Command{
	Use:   "media-cutter",
	Short: "Cut audio and video files into intervals",
	Long: `media-cutter trims audio and video recordings into one file per marked
interval and extracts audio tracks from videos:

  - Play a file and mark cut points interactively (edit)
  - Cut known intervals in one go (trim)
  - Extract a video's audio as 16-bit PCM WAV (extract-audio)

Example:
  media-cutter edit recording.mp4
  media-cutter trim --source talk.wav --cut 0:05-1:30 --cut 2:00-2:45`,
	SilenceUsage: true,
}

// Execute runs the root command; an interrupt cancels the command context
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "diagnostic log level: debug, info, warn, error, off (default from config)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultPath
	}

	cfg, cfgErr = config.Load(cfgFile)

	level := logLevel
	if level == "" && cfg != nil {
		level = cfg.Logging.Level
	}
	logging.Init(level)
}

// GetConfig returns the loaded configuration, or the load error for a
// config file that exists but cannot be parsed
func GetConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, fmt.Errorf("configuration not loaded from %s: %w", cfgFile, cfgErr)
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}

// ConfigPath returns the config file path in use
func ConfigPath() string {
	if cfgFile == "" {
		return config.DefaultPath
	}
	return cfgFile
}
