//go:build integration

package steps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"media-cutter/application/editor"
	"media-cutter/domain/cut"
	"media-cutter/domain/media"
	"media-cutter/infrastructure/playback"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"
)

// editorContext holds test state for editor scenarios
type editorContext struct {
	runner *recordingRunner
	prober *stubProber
	clock  *manualClock
	player *playback.ClockPlayer
	editor *editor.Editor
	names  *scriptedNames
	output *bytes.Buffer
	err    error
}

// scriptedNames accepts suggestions unless an answer is registered for the index
type scriptedNames struct {
	answers     map[int]string
	suggestions []string
}

func (s *scriptedNames) ResolveName(ctx context.Context, index, total int, suggested string) (string, bool, error) {
	s.suggestions = append(s.suggestions, suggested)
	switch a := s.answers[index]; a {
	case "":
		return suggested, true, nil
	case "skip":
		return "", false, nil
	default:
		return a, true, nil
	}
}

var SharedEditorContext *editorContext

func getEditorContext() *editorContext {
	return SharedEditorContext
}

func InitializeEditorScenario(ctx *godog.ScenarioContext) {
	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		SharedEditorContext = &editorContext{
			runner: newRecordingRunner(),
			prober: &stubProber{duration: 10 * time.Minute},
			clock:  &manualClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)},
			names:  &scriptedNames{answers: make(map[int]string)},
			output: &bytes.Buffer{},
		}
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		SharedEditorContext = nil
		return c, nil
	})

	ctx.Step(`^an? (audio|video) editor$`, anEditor)
	ctx.Step(`^ffmpeg is not installed$`, ffmpegIsNotInstalled)
	ctx.Step(`^ffmpeg fails to write "([^"]*)"$`, ffmpegFailsToWrite)
	ctx.Step(`^the file cannot be decoded$`, theFileCannotBeDecoded)
	ctx.Step(`^I answer "([^"]*)" for cut (\d+)$`, iAnswerForCut)
	ctx.Step(`^I run the editor commands:$`, iRunTheEditorCommands)
	ctx.Step(`^I run the editor command "([^"]*)"$`, iRunTheEditorCommand)
	ctx.Step(`^playback advances by ([0-9.]+) seconds?$`, playbackAdvancesBy)
	ctx.Step(`^the confirmed cuts should be:$`, theConfirmedCutsShouldBe)
	ctx.Step(`^there should be no confirmed cuts$`, thereShouldBeNoConfirmedCuts)
	ctx.Step(`^the pending start should be "([^"]*)"$`, thePendingStartShouldBe)
	ctx.Step(`^there should be no pending start$`, thereShouldBeNoPendingStart)
	ctx.Step(`^the cut summary should be "([^"]*)"$`, theCutSummaryShouldBe)
	ctx.Step(`^the live duration should be ([0-9.]+) seconds$`, theLiveDurationShouldBe)
	ctx.Step(`^the editor output should contain "([^"]*)"$`, theEditorOutputShouldContain)
	ctx.Step(`^the editor output should contain "([^"]*)" once$`, theEditorOutputShouldContainOnce)
	ctx.Step(`^ffmpeg should have written:$`, ffmpegShouldHaveWritten)
	ctx.Step(`^ffmpeg should not have been called$`, ffmpegShouldNotHaveBeenCalled)
	ctx.Step(`^the first ffmpeg call should be:$`, theFirstFFmpegCallShouldBe)
	ctx.Step(`^playback should be (playing|paused)$`, playbackShouldBe)
	ctx.Step(`^the editor command should fail with a load error$`, theEditorCommandShouldFailWithALoadError)
	ctx.Step(`^the loaded file should be "([^"]*)"$`, theLoadedFileShouldBe)
}

func anEditor(kind string) error {
	t := getEditorContext()
	k, err := media.ParseKind(kind)
	if err != nil {
		return err
	}

	t.player = playback.NewClockPlayer(t.prober, playback.WithClock(t.clock.now))
	exporter := editor.NewExporter(t.runner.transcoder(),
		editor.WithPlayback(t.player),
		editor.WithNameResolver(t.names),
		editor.WithExportLogger(zerolog.Nop()),
	)
	t.editor = editor.New(k, t.player, exporter,
		editor.WithOutput(t.output),
		editor.WithLogger(zerolog.Nop()),
		editor.WithTickerFactory(func(time.Duration) editor.Ticker { return idleTicker{} }),
	)
	return nil
}

// idleTicker never fires; live durations are checked directly
type idleTicker struct{}

func (idleTicker) C() <-chan time.Time { return nil }
func (idleTicker) Stop()               {}

func ffmpegIsNotInstalled() error {
	getEditorContext().runner.missing = true
	return nil
}

func ffmpegFailsToWrite(path string) error {
	getEditorContext().runner.failOn[path] = true
	return nil
}

func theFileCannotBeDecoded() error {
	getEditorContext().prober.fail = true
	return nil
}

func iAnswerForCut(answer string, index int) error {
	getEditorContext().names.answers[index] = answer
	return nil
}

func iRunTheEditorCommands(doc *godog.DocString) error {
	for _, line := range strings.Split(doc.Content, "\n") {
		if err := runEditorLine(line); err != nil {
			return fmt.Errorf("%q: %w", line, err)
		}
	}
	return nil
}

func iRunTheEditorCommand(line string) error {
	t := getEditorContext()
	t.err = runEditorLine(line)
	return nil
}

func runEditorLine(line string) error {
	t := getEditorContext()
	in, err := editor.ParseInput(line)
	if err != nil {
		return err
	}
	_, err = t.editor.Execute(context.Background(), in)
	return err
}

func playbackAdvancesBy(seconds string) error {
	t := getEditorContext()
	s, err := strconv.ParseFloat(seconds, 64)
	if err != nil {
		return err
	}
	t.clock.t = t.clock.t.Add(time.Duration(s * float64(time.Second)))
	return nil
}

func theConfirmedCutsShouldBe(table *godog.Table) error {
	t := getEditorContext()
	got := t.editor.State().Session.Confirmed()
	want := table.Rows[1:]
	if len(got) != len(want) {
		return fmt.Errorf("expected %d cuts, got %d: %v", len(want), len(got), got)
	}
	for i, row := range want {
		start, err := cut.ParseTimestamp(row.Cells[0].Value)
		if err != nil {
			return err
		}
		end, err := cut.ParseTimestamp(row.Cells[1].Value)
		if err != nil {
			return err
		}
		if got[i].Start != start || got[i].End != end {
			return fmt.Errorf("cut %d: expected %s-%s, got %s-%s", i+1, start, end, got[i].Start, got[i].End)
		}
		if len(row.Cells) > 2 {
			if d := fmt.Sprintf("%.1f", got[i].Length().Seconds()); d != row.Cells[2].Value {
				return fmt.Errorf("cut %d: expected duration %s, got %s", i+1, row.Cells[2].Value, d)
			}
		}
	}
	return nil
}

func thereShouldBeNoConfirmedCuts() error {
	t := getEditorContext()
	if n := t.editor.State().Session.Len(); n != 0 {
		return fmt.Errorf("expected no cuts, got %d", n)
	}
	return nil
}

func thePendingStartShouldBe(ts string) error {
	t := getEditorContext()
	want, err := cut.ParseTimestamp(ts)
	if err != nil {
		return err
	}
	got, ok := t.editor.State().Session.Pending()
	if !ok || got != want {
		return fmt.Errorf("expected pending start %s, got %s (pending=%v)", want, got, ok)
	}
	return nil
}

func thereShouldBeNoPendingStart() error {
	t := getEditorContext()
	if at, ok := t.editor.State().Session.Pending(); ok {
		return fmt.Errorf("expected no pending start, got %s", at)
	}
	return nil
}

func theCutSummaryShouldBe(want string) error {
	t := getEditorContext()
	if got := t.editor.State().Session.Summary().String(); got != want {
		return fmt.Errorf("expected summary %q, got %q", want, got)
	}
	return nil
}

func theLiveDurationShouldBe(seconds string) error {
	t := getEditorContext()
	d, ok := t.editor.State().Session.LiveDuration(t.player.Position())
	if !ok {
		return fmt.Errorf("no pending start")
	}
	if got := fmt.Sprintf("%.1f", d.Seconds()); got != seconds {
		return fmt.Errorf("expected live duration %s, got %s", seconds, got)
	}
	return nil
}

func theEditorOutputShouldContain(text string) error {
	t := getEditorContext()
	if !strings.Contains(t.output.String(), text) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", text, t.output.String())
	}
	return nil
}

func theEditorOutputShouldContainOnce(text string) error {
	t := getEditorContext()
	if n := strings.Count(t.output.String(), text); n != 1 {
		return fmt.Errorf("expected %q once, found %d times:\n%s", text, n, t.output.String())
	}
	return nil
}

func ffmpegShouldHaveWritten(table *godog.Table) error {
	t := getEditorContext()
	return compareOutputs(t.runner.outputs(), table)
}

func compareOutputs(got []string, table *godog.Table) error {
	var want []string
	for _, row := range table.Rows {
		want = append(want, row.Cells[0].Value)
	}
	if len(got) != len(want) {
		return fmt.Errorf("expected outputs %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("output %d: expected %q, got %q", i+1, want[i], got[i])
		}
	}
	return nil
}

func ffmpegShouldNotHaveBeenCalled() error {
	t := getEditorContext()
	if len(t.runner.calls) != 0 {
		return fmt.Errorf("expected no ffmpeg calls, got %v", t.runner.calls)
	}
	return nil
}

func theFirstFFmpegCallShouldBe(doc *godog.DocString) error {
	t := getEditorContext()
	return compareFirstCall(t.runner, doc)
}

func compareFirstCall(r *recordingRunner, doc *godog.DocString) error {
	if len(r.calls) == 0 {
		return fmt.Errorf("ffmpeg was not called")
	}
	want := strings.Fields(doc.Content)
	got := r.calls[0]
	if strings.Join(got, " ") != strings.Join(want, " ") {
		return fmt.Errorf("expected call:\n  %s\ngot:\n  %s", strings.Join(want, " "), strings.Join(got, " "))
	}
	return nil
}

func playbackShouldBe(state string) error {
	t := getEditorContext()
	if playing := t.player.IsPlaying(); playing != (state == "playing") {
		return fmt.Errorf("expected playback %s, playing=%v", state, playing)
	}
	return nil
}

func theEditorCommandShouldFailWithALoadError() error {
	t := getEditorContext()
	var loadErr *media.LoadError
	if !errors.As(t.err, &loadErr) {
		return fmt.Errorf("expected a load error, got %v", t.err)
	}
	return nil
}

func theLoadedFileShouldBe(path string) error {
	t := getEditorContext()
	if got := t.editor.State().Source; got != path {
		return fmt.Errorf("expected loaded file %q, got %q", path, got)
	}
	return nil
}
