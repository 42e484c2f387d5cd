package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"media-cutter/domain/cut"
	"media-cutter/domain/media"
	"media-cutter/infrastructure/logging"

	"github.com/rs/zerolog"
)

// LiveObserver receives the live duration of the pending cut on every tick
type LiveObserver interface {
	ShowLive(start cut.Millis, elapsed time.Duration)
}

// WriterLiveObserver prints the live duration to W
type WriterLiveObserver struct {
	W io.Writer
}

// ShowLive implements LiveObserver
func (o WriterLiveObserver) ShowLive(start cut.Millis, elapsed time.Duration) {
	fmt.Fprintf(o.W, "live duration: %.1fs (from %s)\n", elapsed.Seconds(), start.Clock())
}

// Steps are the relative seek distances of the editor
type Steps struct {
	Nudge cut.Millis
	Seek  cut.Millis
	Jump  cut.Millis
}

// DefaultSteps mirror the -3s, -5s, +5s and +20s seek buttons
var DefaultSteps = Steps{Nudge: 3000, Seek: 5000, Jump: 20000}

// Request carries one input line into Run. Done, when set, receives the
// result of executing it before the next request is read.
type Request struct {
	Input Input
	Done  chan<- error
}

// Editor owns one cut state and one playback session and executes reducer
// commands on a single goroutine
type Editor struct {
	kind     media.Kind
	state    cut.State
	player   media.Playback
	exporter *Exporter

	newTicker    TickerFactory
	tickInterval time.Duration
	ticker       Ticker
	live         LiveObserver

	steps    Steps
	outDir   string
	autoplay bool

	output io.Writer
	logger zerolog.Logger
}

// Option configures an Editor
type Option func(*Editor)

// WithOutput sets the writer for user-facing messages
func WithOutput(w io.Writer) Option {
	return func(e *Editor) {
		e.output = w
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithTickInterval sets the live duration refresh cadence
func WithTickInterval(d time.Duration) Option {
	return func(e *Editor) {
		if d > 0 {
			e.tickInterval = d
		}
	}
}

// WithTickerFactory replaces time.NewTicker (for testing)
func WithTickerFactory(f TickerFactory) Option {
	return func(e *Editor) {
		e.newTicker = f
	}
}

// WithLiveObserver sets the receiver of live duration ticks
func WithLiveObserver(o LiveObserver) Option {
	return func(e *Editor) {
		e.live = o
	}
}

// WithSteps sets the relative seek distances
func WithSteps(s Steps) Option {
	return func(e *Editor) {
		e.steps = s
	}
}

// WithOutputDirectory sets the default export directory
func WithOutputDirectory(dir string) Option {
	return func(e *Editor) {
		e.outDir = dir
	}
}

// WithAutoplay starts playback as soon as a file is opened
func WithAutoplay(on bool) Option {
	return func(e *Editor) {
		e.autoplay = on
	}
}

// New creates an editor of kind driving player
func New(kind media.Kind, player media.Playback, exporter *Exporter, opts ...Option) *Editor {
	e := &Editor{
		kind:         kind,
		player:       player,
		exporter:     exporter,
		newTicker:    NewTimeTicker,
		tickInterval: 100 * time.Millisecond,
		steps:        DefaultSteps,
		output:       io.Discard,
		logger:       logging.WithComponent("editor"),
	}
	for _, opt := range opts {
		opt(e)
	}

	player.OnPositionChanged(func(at cut.Millis) {
		e.state, _ = cut.Reduce(e.state, cut.PositionChanged{At: at})
	})
	return e
}

// State returns the current cut state
func (e *Editor) State() cut.State {
	return e.state
}

// Kind returns whether this is the audio or the video editor
func (e *Editor) Kind() media.Kind {
	return e.kind
}

// Open loads path into the player and resets the cut session. A failed open
// leaves the current session untouched.
func (e *Editor) Open(ctx context.Context, path string) error {
	if !e.kind.Accepts(path) {
		return &media.LoadError{
			Path: path,
			Err:  fmt.Errorf("%w: %s editor accepts %v", media.ErrUnsupportedFormat, e.kind, e.kind.Extensions()),
		}
	}
	if err := e.player.Open(ctx, path); err != nil {
		return err
	}

	if err := e.Dispatch(ctx, cut.FileOpened{Path: path}); err != nil {
		return err
	}
	e.syncPosition(ctx)
	if e.autoplay {
		e.player.Play()
	}

	fmt.Fprintf(e.output, "Opened %s (%s)\n", path, e.player.Duration().Clock())
	return nil
}

// Dispatch applies ev to the state and executes the resulting commands
func (e *Editor) Dispatch(ctx context.Context, ev cut.Event) error {
	before := e.state
	next, cmds := cut.Reduce(e.state, ev)
	e.state = next

	if len(cmds) == 0 && isMark(ev) && sameSession(before.Session, next.Session) {
		e.logger.Debug().Str("event", fmt.Sprintf("%T", ev)).Msg("transition ignored")
	}

	var errs []error
	for _, cmd := range cmds {
		if err := e.execute(ctx, cmd); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Editor) execute(ctx context.Context, cmd cut.Command) error {
	switch c := cmd.(type) {
	case cut.StartTicker:
		e.startTicker()
	case cut.StopTicker:
		e.stopTicker()
	case cut.Export:
		return e.export(ctx, c, e.outDir)
	}
	return nil
}

func (e *Editor) export(ctx context.Context, c cut.Export, dir string) error {
	if c.DroppedPending {
		e.logger.Warn().Str("start", c.PendingStart.Clock()).Msg("open cut point left out of export")
		fmt.Fprintf(e.output, "Warning: the open cut starting at %s has no end and was not exported\n", c.PendingStart.Clock())
	}

	result, err := e.exporter.ExportAll(ctx, ExportRequest{
		Source:         c.Source,
		Kind:           e.kind,
		Intervals:      c.Intervals,
		Directory:      dir,
		DroppedPending: c.DroppedPending,
	})
	if result != nil {
		WriteReport(e.output, result)
	}

	// the session is cleared whatever the outcome
	if ferr := e.Dispatch(ctx, cut.ExportFinished{}); ferr != nil {
		err = errors.Join(err, ferr)
	}
	return err
}

// WriteReport prints the outcome of an export. A batch-wide failure is
// printed once instead of once per interval.
func WriteReport(w io.Writer, r *ExportResult) {
	if r.BatchErr != nil {
		fmt.Fprintf(w, "Export failed: %v\n", r.BatchErr)
	} else {
		for _, o := range r.Outcomes {
			switch o.Status {
			case StatusSaved:
				fmt.Fprintf(w, "  [%d] saved %s\n", o.Index, o.OutputPath)
			case StatusFailed:
				fmt.Fprintf(w, "  [%d] failed: %v\n", o.Index, o.Err)
			case StatusSkipped:
				fmt.Fprintf(w, "  [%d] skipped\n", o.Index)
			}
		}
	}
	fmt.Fprintf(w, "%s\n", r)
}

// Save exports the confirmed cuts to dir, or the configured directory when
// dir is empty
func (e *Editor) Save(ctx context.Context, dir string) error {
	if dir == "" {
		dir = e.outDir
	}

	next, cmds := cut.Reduce(e.state, cut.ExportRequested{})
	e.state = next
	if len(cmds) == 0 {
		fmt.Fprintln(e.output, "Nothing to export")
		return nil
	}

	var errs []error
	for _, cmd := range cmds {
		if c, ok := cmd.(cut.Export); ok {
			errs = append(errs, e.export(ctx, c, dir))
			continue
		}
		errs = append(errs, e.execute(ctx, cmd))
	}
	return errors.Join(errs...)
}

// Execute runs one parsed input. It returns quit=true for OpQuit.
func (e *Editor) Execute(ctx context.Context, in Input) (quit bool, err error) {
	switch in.Op {
	case OpNone:
	case OpQuit:
		e.stopTicker()
		e.player.Pause()
		return true, nil
	case OpHelp:
		fmt.Fprintln(e.output, Help)
	case OpOpen:
		return false, e.Open(ctx, in.Arg)
	case OpSave:
		if err := e.requireLoaded(); err != nil {
			return false, err
		}
		return false, e.Save(ctx, in.Arg)
	case OpList:
		e.printList()
	case OpStatus:
		e.printStatus()
	case OpDiscard:
		return false, e.Dispatch(ctx, cut.DiscardPending{})
	default:
		if err := e.requireLoaded(); err != nil {
			return false, err
		}
		return false, e.control(ctx, in)
	}
	return false, nil
}

func (e *Editor) control(ctx context.Context, in Input) error {
	switch in.Op {
	case OpPlay:
		e.player.Play()
	case OpPause:
		e.player.Pause()
	case OpToggle:
		if e.player.IsPlaying() {
			e.player.Pause()
		} else {
			e.player.Play()
		}
	case OpSeek:
		e.player.SetPosition(media.Clamp(in.At, e.player.Duration()))
	case OpForward:
		media.SeekBy(e.player, e.step(in, e.steps.Seek))
	case OpBack:
		media.SeekBy(e.player, -e.step(in, e.steps.Seek))
	case OpJump:
		media.SeekBy(e.player, e.steps.Jump)
	case OpNudge:
		media.SeekBy(e.player, -e.steps.Nudge)
	case OpSpeed:
		if err := e.player.SetPlaybackRate(media.NextRate(e.player.Rate())); err != nil {
			return err
		}
		fmt.Fprintf(e.output, "Speed %vx\n", e.player.Rate())
	case OpRate:
		if err := e.player.SetPlaybackRate(in.Rate); err != nil {
			return err
		}
		fmt.Fprintf(e.output, "Speed %vx\n", e.player.Rate())
	case OpStart:
		return e.mark(ctx, cut.MarkStart{})
	case OpEnd:
		return e.mark(ctx, cut.MarkEnd{})
	case OpNext:
		return e.mark(ctx, cut.MarkEndAndNewStart{})
	}
	return nil
}

func (e *Editor) step(in Input, def cut.Millis) cut.Millis {
	if in.HasAt {
		return in.At
	}
	return def
}

func (e *Editor) mark(ctx context.Context, ev cut.Event) error {
	e.syncPosition(ctx)
	if err := e.Dispatch(ctx, ev); err != nil {
		return err
	}
	fmt.Fprintln(e.output, e.state.Session.Summary())
	return nil
}

func (e *Editor) requireLoaded() error {
	if !e.state.Loaded() {
		return media.ErrNotLoaded
	}
	return nil
}

// syncPosition feeds the player's current position to the reducer so marks
// land where playback is now, not at the last seek
func (e *Editor) syncPosition(ctx context.Context) {
	_ = e.Dispatch(ctx, cut.PositionChanged{At: e.player.Position()})
}

func (e *Editor) printList() {
	lines := e.state.Session.Lines()
	if len(lines) == 0 {
		fmt.Fprintln(e.output, "No cuts")
		return
	}
	for _, l := range lines {
		fmt.Fprintln(e.output, l)
	}
}

func (e *Editor) printStatus() {
	if !e.state.Loaded() {
		fmt.Fprintln(e.output, "No file loaded")
		return
	}
	state := "paused"
	if e.player.IsPlaying() {
		state = "playing"
	}
	fmt.Fprintf(e.output, "%s / %s [%s %vx]\n", e.player.Position().Clock(), e.player.Duration().Clock(), state, e.player.Rate())
	fmt.Fprintln(e.output, e.state.Session.Summary())
	if d, ok := e.state.Session.LiveDuration(e.player.Position()); ok {
		fmt.Fprintf(e.output, "live duration: %.1fs\n", d.Seconds())
	}
}

func (e *Editor) startTicker() {
	if e.ticker != nil {
		return
	}
	e.ticker = e.newTicker(e.tickInterval)
}

func (e *Editor) stopTicker() {
	if e.ticker == nil {
		return
	}
	e.ticker.Stop()
	e.ticker = nil
}

// Ticking reports whether the live duration ticker is running
func (e *Editor) Ticking() bool {
	return e.ticker != nil
}

func (e *Editor) tickC() <-chan time.Time {
	if e.ticker == nil {
		return nil
	}
	return e.ticker.C()
}

// Tick publishes the live duration of the pending cut. It only reads the
// session and the player position.
func (e *Editor) Tick() {
	if e.live == nil {
		return
	}
	start, ok := e.state.Session.Pending()
	if !ok {
		return
	}
	if d, ok := e.state.Session.LiveDuration(e.player.Position()); ok {
		e.live.ShowLive(start, d)
	}
}

// Run is the editor event loop. It executes requests one at a time,
// interleaved with live duration ticks, until quit, the requests channel is
// closed or ctx is done.
func (e *Editor) Run(ctx context.Context, requests <-chan Request) error {
	defer e.stopTicker()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-e.tickC():
			e.Tick()

		case req, ok := <-requests:
			if !ok {
				return nil
			}
			quit, err := e.Execute(ctx, req.Input)
			if err != nil {
				e.logger.Debug().Err(err).Msg("command failed")
			}
			if req.Done != nil {
				req.Done <- err
			}
			if quit {
				return nil
			}
		}
	}
}

func isMark(ev cut.Event) bool {
	switch ev.(type) {
	case cut.MarkStart, cut.MarkEnd, cut.MarkEndAndNewStart:
		return true
	}
	return false
}

func sameSession(a, b cut.Session) bool {
	pa, oka := a.Pending()
	pb, okb := b.Pending()
	return pa == pb && oka == okb && a.Len() == b.Len()
}
