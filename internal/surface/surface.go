// Package surface provides gg-backed drawing surfaces for progress rings.
//
// A Surface is owned by exactly one widget. Drawing happens inside Frame,
// which hands out a ring.Canvas valid only for the duration of the
// callback; transform and fill state are reset when the frame ends so
// nothing leaks into the next frame.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/gogpu/gg"

	"progressring/internal/ring"
)

// ErrSurfaceClosed is returned when drawing on a closed surface.
var ErrSurfaceClosed = errors.New("surface: closed")

// ErrInvalidSize is returned for non-positive surface sizes.
var ErrInvalidSize = errors.New("surface: invalid size")

var (
	errNoFrame    = errors.New("surface: no frame rendered")
	errStaleFrame = errors.New("surface: last frame failed")
)

// Surface is a square offscreen drawing area.
type Surface struct {
	size   int     // logical side length
	scale  float64 // device pixels per logical pixel
	dc     *gg.Context
	frame  image.Image
	frames uint64
	stale  bool // the context no longer holds frame
	closed bool
}

// New creates a surface of size×size logical pixels rendered at scale.
func New(size int, scale float64) (*Surface, error) {
	s := &Surface{}
	if err := s.alloc(size, scale); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Surface) alloc(size int, scale float64) error {
	if size <= 0 || scale <= 0 {
		return fmt.Errorf("%w: %d at scale %v", ErrInvalidSize, size, scale)
	}
	px := int(math.Ceil(float64(size) * scale))
	if s.dc != nil {
		_ = s.dc.Close()
	}
	s.size = size
	s.scale = scale
	s.dc = gg.NewContext(px, px)
	s.frame = nil
	s.stale = false
	return nil
}

// Size returns the logical side length.
func (s *Surface) Size() int { return s.size }

// Scale returns the device pixel ratio.
func (s *Surface) Scale() float64 { return s.scale }

// Pixels returns the device side length.
func (s *Surface) Pixels() int {
	if s.dc == nil {
		return 0
	}
	return s.dc.Width()
}

// Frames returns the number of completed frames.
func (s *Surface) Frames() uint64 { return s.frames }

// Resize reallocates the backing context when the scale changes.
// It reports whether a reallocation happened.
func (s *Surface) Resize(scale float64) (bool, error) {
	if s.closed {
		return false, ErrSurfaceClosed
	}
	if scale == s.scale {
		return false, nil
	}
	if err := s.alloc(s.size, scale); err != nil {
		return false, err
	}
	return true, nil
}

// Frame clears the surface and runs draw against it. The canvas passed to
// draw must not be retained.
func (s *Surface) Frame(draw func(ring.Canvas) error) (err error) {
	if s.closed {
		return ErrSurfaceClosed
	}

	s.dc.Clear()
	s.stale = true
	s.dc.Identity()
	s.dc.Scale(s.scale, s.scale)

	c := &canvas{dc: s.dc}
	defer func() {
		c.release()
		s.dc.ClearPath()
		s.dc.Identity()
		s.dc.SetFillRule(gg.FillRuleNonZero)
	}()

	if err := draw(c); err != nil {
		return err
	}
	if err := s.dc.FlushGPU(); err != nil {
		return &ring.DrawError{Op: "flush", Err: err}
	}

	s.frame = s.dc.Image()
	s.stale = false
	s.frames++
	return nil
}

// Overlay draws on top of the last completed frame in device pixels and
// makes the result the new frame. It fails if the most recent Frame did
// not complete.
func (s *Surface) Overlay(draw func(dc *gg.Context) error) error {
	switch {
	case s.closed:
		return ErrSurfaceClosed
	case s.frame == nil:
		return errNoFrame
	case s.stale:
		return errStaleFrame
	}

	s.dc.Identity()
	if err := draw(s.dc); err != nil {
		s.stale = true
		return err
	}
	if err := s.dc.FlushGPU(); err != nil {
		s.stale = true
		return &ring.DrawError{Op: "flush", Err: err}
	}
	s.frame = s.dc.Image()
	return nil
}

// Image returns the last completed frame, or nil before the first one.
func (s *Surface) Image() image.Image { return s.frame }

// EncodePNG writes the last completed frame as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if s.frame == nil {
		return errNoFrame
	}
	return png.Encode(w, s.frame)
}

// Close releases the backing context. Close is idempotent.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.frame = nil
	return s.dc.Close()
}
