package deckicon

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultSettle is how long an export waits for the offscreen surface before
// it reports the paint as slow. The export still completes once painting ends;
// only the context aborts it.
const DefaultSettle = time.Second

// Exporter renders compositions offscreen and delivers them as PNG files.
// Every export owns its surface, so an Exporter can run several exports
// concurrently.
type Exporter struct {
	composer *Composer
	settle   time.Duration
	sink     Sink
	name     string
	paint    func(Frame) *image.NRGBA
	live     atomic.Int64
}

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

// WithSettle sets the settle bound of the surface.
func WithSettle(d time.Duration) ExportOption {
	return func(e *Exporter) {
		if d > 0 {
			e.settle = d
		}
	}
}

// WithSink sets where the encoded icon is delivered.
func WithSink(s Sink) ExportOption {
	return func(e *Exporter) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithComposer sets the composer resolving the compositions.
func WithComposer(c *Composer) ExportOption {
	return func(e *Exporter) {
		if c != nil {
			e.composer = c
		}
	}
}

// WithFileName overrides ExportFileName.
func WithFileName(name string) ExportOption {
	return func(e *Exporter) {
		if name != "" {
			e.name = name
		}
	}
}

// NewExporter creates an exporter saving streamdeck-icon.png
// in the working directory.
func NewExporter(opts ...ExportOption) *Exporter {
	e := &Exporter{
		composer: defaultComposer,
		settle:   DefaultSettle,
		sink:     FileSink{Dir: "."},
		name:     ExportFileName,
		paint:    Rasterize,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Live returns the number of surfaces currently allocated by the exporter.
func (e *Exporter) Live() int64 {
	return e.live.Load()
}

// Export renders the composition and hands the PNG over to the sink.
// The surface is released on every path. Failures are logged and
// returned wrapped around ErrSurfaceUnavailable or ErrRasterize, or
// the sink and context errors.
func (e *Exporter) Export(ctx context.Context, c Composition) error {
	now := time.Now()
	log := Logger().With(zap.String("file", e.name))

	data, err := e.Encode(ctx, c)
	if err != nil {
		log.Error("export failed", zap.Error(err))
		return err
	}
	if err := e.sink.Save(e.name, data); err != nil {
		log.Error("saving export failed", zap.Error(err))
		return fmt.Errorf("export: %w", err)
	}
	log.Debug("icon exported",
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(now)),
	)
	return nil
}

// Encode renders the composition on a fresh surface and returns the PNG data.
func (e *Exporter) Encode(ctx context.Context, c Composition) ([]byte, error) {
	frame := e.composer.Compose(c)

	s, err := newSurface(frame.Size, e.paint, &e.live)
	if err != nil {
		return nil, err
	}
	defer func() {
		s.Close()
		Logger().Debug("surface released", zap.Int64("live", e.live.Load()))
	}()

	s.Load(frame)

	timer := time.NewTimer(e.settle)
	defer timer.Stop()

	select {
	case <-s.Ready():
		return s.Snapshot()
	case <-timer.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	// Past the settle bound the surface is left to finish on its own.
	Logger().Warn("surface still painting", zap.Duration("settle", e.settle))
	select {
	case <-s.Ready():
		return s.Snapshot()
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Render composes and rasterizes c with the default composer.
func Render(c Composition) (img *image.NRGBA, err error) {
	f := Compose(c)
	if f.Size <= 0 {
		return nil, ErrSurfaceUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			img, err = nil, fmt.Errorf("%w: %v", ErrRasterize, r)
		}
	}()
	return Rasterize(f), nil
}
