package probe

import (
	"context"
	"fmt"

	"media-cutter/domain/media"
)

// ByKind dispatches to the prober registered for the kind of the file extension
type ByKind struct {
	Audio media.Prober
	Video media.Prober
}

// Probe implements media.Prober
func (b *ByKind) Probe(ctx context.Context, path string) (*media.Info, error) {
	kind, ok := media.KindForPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", media.ErrUnsupportedFormat, path)
	}
	if kind == media.Video && b.Video != nil {
		return b.Video.Probe(ctx, path)
	}
	return b.Audio.Probe(ctx, path)
}

var _ media.Prober = (*ByKind)(nil)
