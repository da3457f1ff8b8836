// Package ring draws an annular progress indicator through an
// immediate-mode 2D canvas.
//
// The ring is filled in two passes inside one rotated frame: a full
// background annulus, then the progress span. Each annulus is traced as two
// concentric loops from the same centre and filled with the even-odd rule,
// which leaves the inner disc empty.
package ring

import (
	"fmt"
	"math"
)

// FillRule selects how a path's interior is determined.
type FillRule int

const (
	FillRuleNonZero FillRule = iota
	FillRuleEvenOdd
)

// Canvas is the subset of an immediate-mode 2D context the renderer needs.
//
// Arc follows the common convention that a straight segment joins the
// current point to the start of the arc. Angle 0 is the backend's default
// (3 o'clock) and angles grow in the backend's positive direction.
type Canvas interface {
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(angle float64)
	MoveTo(x, y float64)
	Arc(cx, cy, r, angle1, angle2 float64)
	SetSourceRGB(r, g, b float64)
	SetFillRule(rule FillRule)
	Fill() error
}

// Style is the static appearance of one ring.
type Style struct {
	Clockwise bool
	Size      float64
	Thickness float64
	// StartAt is the effective start offset. It is converted with
	// PercentToRadians like a percentage, not as degrees.
	StartAt    float64
	Percentage Color
	Background Color
}

// DrawError wraps a backend failure that aborted a draw.
type DrawError struct {
	Op  string
	Err error
}

func (e *DrawError) Error() string {
	return fmt.Sprintf("draw %s: %v", e.Op, e.Err)
}

func (e *DrawError) Unwrap() error {
	return e.Err
}

// PercentToRadians maps a percentage of a full turn to radians.
func PercentToRadians(p float64) float64 {
	return p / 100 * 2 * math.Pi
}

// Span returns the angular range covered by the progress arc.
//
// Clockwise rings grow forward from angle 0. Counter-clockwise rings occupy
// the end of the circle and grow backward from a full turn.
func Span(clockwise bool, value float64) (start, end float64) {
	if clockwise {
		return 0, PercentToRadians(value)
	}
	return PercentToRadians(100 - value), 2 * math.Pi
}

// Radii returns the outer and inner radius for a ring of the given size.
func Radii(size, thickness float64) (outer, inner float64) {
	outer = size / 2
	return outer, outer - thickness
}

// Render draws the background annulus and the progress arc for value.
// The canvas state is restored before returning, also on failure.
func Render(c Canvas, s Style, value float64) error {
	cx, cy := s.Size/2, s.Size/2
	outer, inner := Radii(s.Size, s.Thickness)

	c.Save()
	defer c.Restore()

	c.Translate(cx, cy)
	c.Rotate(PercentToRadians(s.StartAt))
	c.Translate(-cx, -cy)

	if err := annulus(c, cx, cy, outer, inner, 0, PercentToRadians(100), s.Background); err != nil {
		return &DrawError{Op: "background", Err: err}
	}

	start, end := Span(s.Clockwise, value)
	if err := annulus(c, cx, cy, outer, inner, start, end, s.Percentage); err != nil {
		return &DrawError{Op: "progress", Err: err}
	}
	return nil
}

func annulus(c Canvas, cx, cy, outer, inner, start, end float64, col Color) error {
	c.MoveTo(cx, cy)
	c.Arc(cx, cy, outer, start, end)
	c.SetSourceRGB(col.R, col.G, col.B)
	c.MoveTo(cx, cy)
	c.Arc(cx, cy, inner, start, end)
	c.SetFillRule(FillRuleEvenOdd)
	return c.Fill()
}
