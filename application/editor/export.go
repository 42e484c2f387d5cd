package editor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"media-cutter/domain/cut"
	"media-cutter/domain/media"
	"media-cutter/infrastructure/logging"

	"github.com/rs/zerolog"
)

// ErrNothingToExport is returned by ExportAll when there are no intervals
var ErrNothingToExport = errors.New("nothing to export")

// NameResolver confirms or overrides the output path of each cut before it
// is written. Returning ok=false skips the cut.
type NameResolver interface {
	ResolveName(ctx context.Context, index, total int, suggested string) (path string, ok bool, err error)
}

// AcceptSuggested is a NameResolver that always takes the suggested path
type AcceptSuggested struct{}

// ResolveName implements NameResolver
func (AcceptSuggested) ResolveName(ctx context.Context, index, total int, suggested string) (string, bool, error) {
	return suggested, true, nil
}

// DirectoryEnsurer creates the export directory
type DirectoryEnsurer interface {
	EnsureDir(dir string) error
}

// ExportRequest describes one export batch
type ExportRequest struct {
	Source    string
	Kind      media.Kind
	Intervals []cut.Interval
	// Directory defaults to the directory of Source
	Directory      string
	DroppedPending bool
}

// Status is the outcome of exporting one interval
type Status int

const (
	StatusSaved Status = iota + 1
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	}
	return "unknown"
}

// Outcome records what happened to one interval, Index counting from 1
type Outcome struct {
	Index      int
	Interval   cut.Interval
	OutputPath string
	Status     Status
	Err        error
}

// ExportResult aggregates the outcomes of an export batch
type ExportResult struct {
	Total          int
	Saved          int
	Failed         int
	Skipped        int
	Outcomes       []Outcome
	DroppedPending bool
	// BatchErr is set when every interval failed for one shared reason, such
	// as a missing transcoder. It is reported once instead of per outcome.
	BatchErr error
}

// String renders "N of M intervals saved"
func (r *ExportResult) String() string {
	return fmt.Sprintf("%d of %d intervals saved", r.Saved, r.Total)
}

func (r *ExportResult) record(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusSaved:
		r.Saved++
	case StatusFailed:
		r.Failed++
	case StatusSkipped:
		r.Skipped++
	}
}

// failRemaining marks intervals from index from onward with status and err
func (r *ExportResult) failRemaining(intervals []cut.Interval, from int, status Status, err error) {
	for i := from; i <= len(intervals); i++ {
		r.record(Outcome{Index: i, Interval: intervals[i-1], Status: status, Err: err})
	}
}

// Exporter writes confirmed intervals out one file per interval
type Exporter struct {
	transcoder media.Transcoder
	player     media.Playback
	names      NameResolver
	dirs       DirectoryEnsurer
	verifyTime time.Duration
	logger     zerolog.Logger
}

// ExporterOption configures an Exporter
type ExporterOption func(*Exporter)

// WithPlayback pauses p for the duration of each export
func WithPlayback(p media.Playback) ExporterOption {
	return func(e *Exporter) {
		e.player = p
	}
}

// WithNameResolver sets the per-file name confirmation
func WithNameResolver(r NameResolver) ExporterOption {
	return func(e *Exporter) {
		e.names = r
	}
}

// WithDirectoryEnsurer creates missing export directories before writing
func WithDirectoryEnsurer(d DirectoryEnsurer) ExporterOption {
	return func(e *Exporter) {
		e.dirs = d
	}
}

// WithVerifyTimeout bounds the up-front transcoder check
func WithVerifyTimeout(d time.Duration) ExporterOption {
	return func(e *Exporter) {
		e.verifyTime = d
	}
}

// WithExportLogger sets the logger for per-interval outcomes
func WithExportLogger(logger zerolog.Logger) ExporterOption {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// NewExporter creates an Exporter that trims through transcoder
func NewExporter(transcoder media.Transcoder, opts ...ExporterOption) *Exporter {
	e := &Exporter{
		transcoder: transcoder,
		names:      AcceptSuggested{},
		logger:     logging.WithComponent("export"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportAll trims every interval of req in list order. A failed interval is
// recorded and the remaining ones are still attempted. Playback is paused
// while exporting and restored to its previous state on return.
//
// The returned error is non-nil only when the batch stopped early, through
// cancellation or a name resolver error; the result is still valid then.
func (e *Exporter) ExportAll(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	if len(req.Intervals) == 0 {
		return nil, ErrNothingToExport
	}

	if e.player != nil {
		wasPlaying := e.player.IsPlaying()
		e.player.Pause()
		defer func() {
			if wasPlaying {
				e.player.Play()
			}
		}()
	}

	result := &ExportResult{
		Total:          len(req.Intervals),
		DroppedPending: req.DroppedPending,
	}

	if err := e.prepare(ctx, req); err != nil {
		e.logger.Error().Err(err).Int("intervals", result.Total).Msg("export aborted before the first cut")
		result.BatchErr = err
		result.failRemaining(req.Intervals, 1, StatusFailed, err)
		return result, nil
	}

	dir := exportDirectory(req)
	for i, iv := range req.Intervals {
		index := i + 1

		if err := ctx.Err(); err != nil {
			result.failRemaining(req.Intervals, index, StatusSkipped, err)
			return result, err
		}

		suggested := media.CutOutputPath(dir, req.Source, index, req.Kind)
		path, ok, err := e.names.ResolveName(ctx, index, result.Total, suggested)
		if err != nil {
			result.failRemaining(req.Intervals, index, StatusSkipped, err)
			return result, fmt.Errorf("failed to resolve name for cut %d: %w", index, err)
		}
		if !ok {
			e.logger.Info().Int("index", index).Msg("cut skipped")
			result.record(Outcome{Index: index, Interval: iv, Status: StatusSkipped})
			continue
		}

		result.record(e.exportOne(ctx, req.Source, index, iv, path))
	}

	e.logger.Info().
		Int("saved", result.Saved).
		Int("failed", result.Failed).
		Int("skipped", result.Skipped).
		Msg("export finished")
	return result, nil
}

func (e *Exporter) prepare(ctx context.Context, req ExportRequest) error {
	if v, ok := e.transcoder.(media.Verifier); ok {
		verifyCtx := ctx
		if e.verifyTime > 0 {
			var cancel context.CancelFunc
			verifyCtx, cancel = context.WithTimeout(ctx, e.verifyTime)
			defer cancel()
		}
		if err := v.VerifyInstalled(verifyCtx); err != nil {
			return &media.TranscodeError{Op: "trim", Output: req.Source, Err: err}
		}
	}
	if e.dirs != nil {
		if err := e.dirs.EnsureDir(exportDirectory(req)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Exporter) exportOne(ctx context.Context, source string, index int, iv cut.Interval, path string) Outcome {
	out := Outcome{Index: index, Interval: iv, OutputPath: path}

	treq, err := media.NewTrimRequest(source, iv, path)
	if err == nil {
		err = e.transcoder.Trim(ctx, treq)
	}
	if err != nil {
		e.logger.Warn().Err(err).Int("index", index).Str("output", path).Msg("cut failed")
		out.Status = StatusFailed
		out.Err = err
		return out
	}

	e.logger.Info().Int("index", index).Str("output", path).Str("range", iv.String()).Msg("cut saved")
	out.Status = StatusSaved
	return out
}

func exportDirectory(req ExportRequest) string {
	if req.Directory != "" {
		return req.Directory
	}
	return filepath.Dir(req.Source)
}
