package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"media-cutter/application/editor"
	"media-cutter/domain/cut"
	"media-cutter/domain/media"
	"media-cutter/infrastructure/config"
	"media-cutter/infrastructure/filesystem"
	"media-cutter/infrastructure/logging"

	"github.com/spf13/cobra"
)

var (
	editKind       string
	editScript     string
	editOutputDir  string
	editLive       bool
	editYes        bool
	editNoAutoplay bool
)

var editCmd = &cobra.Command{
	Use:   "edit [FILE]",
	Short: "Play a file and mark cut points interactively",
	Long: `Open an audio or video file in a headless player and mark cut intervals
with line commands (start, end, next, seek, fwd, back, speed, save, ...).
Type help inside the editor for the full list.

The editor kind follows the file extension, or --kind when no file is given.
With --script the commands are read from a file instead of the terminal and
output names are accepted without asking.

Example:
  media-cutter edit talk.mp4
  media-cutter edit --kind audio
  media-cutter edit voice.wav --script cuts.txt --out-dir ./cuts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVar(&editKind, "kind", "", "Editor kind when no file is given: audio or video")
	editCmd.Flags().StringVar(&editScript, "script", "", "Read editor commands from this file")
	editCmd.Flags().StringVar(&editOutputDir, "out-dir", "", "Default export directory (default from config, else next to the source)")
	editCmd.Flags().BoolVar(&editLive, "live", false, "Print the live cut duration while a start is pending")
	editCmd.Flags().BoolVar(&editYes, "yes", false, "Accept the suggested output names without asking")
	editCmd.Flags().BoolVar(&editNoAutoplay, "no-autoplay", false, "Do not start playback when a file is opened")
}

func runEdit(cmd *cobra.Command, args []string) error {
	cfg, err := GetConfig()
	if err != nil {
		return err
	}

	var file string
	if len(args) == 1 {
		file = args[0]
	}
	kind, err := editorKind(file, editKind)
	if err != nil {
		return err
	}

	var input io.Reader = os.Stdin
	interactive := true
	if editScript != "" {
		f, err := os.Open(editScript)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		input = f
		interactive = false
	}

	outDir := editOutputDir
	if outDir == "" {
		outDir = cfg.Paths.OutputDirectory
	}

	var names editor.NameResolver = editor.AcceptSuggested{}
	if interactive && !editYes {
		names = &PromptNameResolver{Prompter: DefaultPrompter}
	}

	ed := newEditor(cfg, kind, names, outDir, os.Stdout)
	return RunEditWithDependencies(cmd.Context(), ed, file, input, interactive, os.Stdout)
}

func newEditor(cfg *config.Config, kind media.Kind, names editor.NameResolver, outDir string, out io.Writer) *editor.Editor {
	player := newPlayer(cfg)
	exporter := editor.NewExporter(newTranscoder(cfg),
		editor.WithPlayback(player),
		editor.WithNameResolver(names),
		editor.WithDirectoryEnsurer(filesystem.NewChecker()),
		editor.WithVerifyTimeout(cfg.FFmpeg.VerifyTimeout),
		editor.WithExportLogger(logging.WithComponent("export")),
	)

	opts := []editor.Option{
		editor.WithOutput(out),
		editor.WithLogger(logging.WithComponent("editor")),
		editor.WithTickInterval(cfg.Playback.TickInterval),
		editor.WithSteps(editor.Steps{
			Nudge: cut.FromDuration(cfg.Playback.NudgeStep),
			Seek:  cut.FromDuration(cfg.Playback.SeekStep),
			Jump:  cut.FromDuration(cfg.Playback.JumpStep),
		}),
		editor.WithOutputDirectory(outDir),
		editor.WithAutoplay(cfg.Playback.Autoplay && !editNoAutoplay),
	}
	if editLive {
		opts = append(opts, editor.WithLiveObserver(editor.WriterLiveObserver{W: out}))
	}
	return editor.New(kind, player, exporter, opts...)
}

func editorKind(file, flag string) (media.Kind, error) {
	if flag != "" {
		return media.ParseKind(flag)
	}
	if file == "" {
		return 0, fmt.Errorf("give a file or --kind audio|video")
	}
	kind, ok := media.KindForPath(file)
	if !ok {
		return 0, &media.LoadError{Path: file, Err: media.ErrUnsupportedFormat}
	}
	return kind, nil
}

// RunEditWithDependencies drives ed with the command lines read from input
// until quit or end of input. file, when set, is opened first. Lines are read
// only while the editor is idle, so prompts raised by a command own the
// terminal; an interrupt therefore takes effect at the next line.
func RunEditWithDependencies(
	ctx context.Context,
	ed *editor.Editor,
	file string,
	input io.Reader,
	interactive bool,
	output OutputWriter,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	requests := make(chan editor.Request)
	stopped := make(chan struct{})
	var runErr error
	go func() {
		defer close(stopped)
		runErr = ed.Run(ctx, requests)
	}()

	// send returns done=true once the editor loop has exited
	send := func(in editor.Input) (done bool, err error) {
		result := make(chan error, 1)
		select {
		case requests <- editor.Request{Input: in, Done: result}:
		case <-stopped:
			return true, nil
		}
		select {
		case err := <-result:
			return in.Op == editor.OpQuit, err
		case <-stopped:
			return true, nil
		}
	}

	abort := func(err error) error {
		cancel()
		<-stopped
		return err
	}

	fmt.Fprintf(output, "%s editor, type help for commands\n", ed.Kind())
	if file != "" {
		if _, err := send(editor.Input{Op: editor.OpOpen, Arg: file}); err != nil {
			if !interactive {
				return abort(err)
			}
			fmt.Fprintf(output, "Error: %v\n", err)
		}
	}

	scanner := bufio.NewScanner(input)
	for line := 1; ; line++ {
		if interactive {
			fmt.Fprint(output, "> ")
		}
		if !scanner.Scan() {
			break
		}

		in, err := editor.ParseInput(scanner.Text())
		if err == nil {
			var done bool
			done, err = send(in)
			if done {
				<-stopped
				if err != nil {
					return err
				}
				return runErr
			}
		}
		if err != nil {
			if !interactive {
				return abort(fmt.Errorf("line %d: %w", line, err))
			}
			fmt.Fprintf(output, "Error: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return abort(fmt.Errorf("failed to read commands: %w", err))
	}

	close(requests)
	<-stopped
	return runErr
}
