package deckicon

import (
	"bytes"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
)

// Surface is an offscreen painting context owned by a single export.
// It is never shown and never shared: the frame is loaded, painted in the
// background, snapshotted once ready and then released with Close.
type Surface struct {
	size  int
	paint func(Frame) *image.NRGBA
	live  *atomic.Int64

	loadOnce  sync.Once
	closeOnce sync.Once
	ready     chan struct{}

	mu     sync.Mutex
	img    *image.NRGBA
	err    error
	closed bool
}

// newSurface allocates a surface of the given side length and accounts
// for it in live until it gets closed.
func newSurface(size int, paint func(Frame) *image.NRGBA, live *atomic.Int64) (*Surface, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: invalid size %d", ErrSurfaceUnavailable, size)
	}
	if paint == nil {
		return nil, fmt.Errorf("%w: no painter", ErrSurfaceUnavailable)
	}
	live.Add(1)
	return &Surface{
		size:  size,
		paint: paint,
		live:  live,
		ready: make(chan struct{}),
	}, nil
}

// Load starts painting the frame in the background. Ready is closed once
// painting finished, successfully or not. Only the first call has an effect.
func (s *Surface) Load(f Frame) {
	s.loadOnce.Do(func() {
		go func() {
			defer close(s.ready)
			defer func() {
				if r := recover(); r != nil {
					s.mu.Lock()
					s.err = fmt.Errorf("%w: %v", ErrRasterize, r)
					s.mu.Unlock()
				}
			}()

			img := s.paint(f)
			s.mu.Lock()
			defer s.mu.Unlock()
			if s.closed {
				return
			}
			if img == nil {
				s.err = fmt.Errorf("%w: empty surface", ErrRasterize)
				return
			}
			s.img = img
		}()
	})
}

// Ready returns a channel closed when the loaded frame has been painted.
func (s *Surface) Ready() <-chan struct{} {
	return s.ready
}

// Snapshot encodes the painted surface as PNG.
func (s *Surface) Snapshot() ([]byte, error) {
	select {
	case <-s.ready:
	default:
		return nil, fmt.Errorf("%w: surface is not ready", ErrRasterize)
	}

	s.mu.Lock()
	img, err := s.img, s.err
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("%w: surface released", ErrRasterize)
	}

	var buf bytes.Buffer
	if err := encodePNG(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	return buf.Bytes(), nil
}

// Close releases the surface. It is safe to call Close more than once
// and while painting is still in progress.
func (s *Surface) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.img = nil
		s.closed = true
		s.mu.Unlock()
		s.live.Add(-1)
	})
	return nil
}
