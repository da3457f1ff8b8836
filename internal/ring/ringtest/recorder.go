// Package ringtest provides a recording ring.Canvas for tests.
package ringtest

import (
	"fmt"
	"math"

	"progressring/internal/ring"
)

// Command is one recorded canvas call.
type Command struct {
	Name string
	Args []float64
	Rule ring.FillRule
}

func (c Command) String() string {
	if c.Name == "SetFillRule" {
		return fmt.Sprintf("%s(%d)", c.Name, c.Rule)
	}
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Matrix is a 2x3 affine transform.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

func (m Matrix) mul(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// Recorder implements ring.Canvas by recording every call.
type Recorder struct {
	Commands []Command

	// FailFill makes the n-th Fill call (1-based) return Err.
	FailFill int
	Err      error

	matrix Matrix
	stack  []Matrix
	fills  int
	rule   ring.FillRule
}

var _ ring.Canvas = (*Recorder)(nil)

// NewRecorder returns a recorder with an identity transform.
func NewRecorder() *Recorder {
	return &Recorder{matrix: Identity()}
}

// Transform returns the current transform.
func (r *Recorder) Transform() Matrix { return r.matrix }

// Depth returns the number of unmatched Save calls.
func (r *Recorder) Depth() int { return len(r.stack) }

// Reset forgets recorded commands but keeps the transform state.
func (r *Recorder) Reset() { r.Commands = nil }

func (r *Recorder) record(name string, args ...float64) {
	r.Commands = append(r.Commands, Command{Name: name, Args: args})
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.matrix)
	r.record("Save")
}

func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.matrix = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.record("Restore")
}

func (r *Recorder) Translate(x, y float64) {
	r.matrix = r.matrix.mul(Matrix{A: 1, C: x, E: 1, F: y})
	r.record("Translate", x, y)
}

func (r *Recorder) Rotate(angle float64) {
	sin, cos := math.Sincos(angle)
	r.matrix = r.matrix.mul(Matrix{A: cos, B: -sin, D: sin, E: cos})
	r.record("Rotate", angle)
}

func (r *Recorder) MoveTo(x, y float64) { r.record("MoveTo", x, y) }

func (r *Recorder) Arc(cx, cy, radius, angle1, angle2 float64) {
	r.record("Arc", cx, cy, radius, angle1, angle2)
}

func (r *Recorder) SetSourceRGB(red, green, blue float64) {
	r.record("SetSourceRGB", red, green, blue)
}

func (r *Recorder) SetFillRule(rule ring.FillRule) {
	r.rule = rule
	r.Commands = append(r.Commands, Command{Name: "SetFillRule", Rule: rule})
}

func (r *Recorder) Fill() error {
	r.fills++
	r.record("Fill")
	if r.FailFill > 0 && r.fills == r.FailFill {
		return r.Err
	}
	return nil
}

// Arcs returns the recorded Arc calls in order.
func (r *Recorder) Arcs() []Command {
	var arcs []Command
	for _, c := range r.Commands {
		if c.Name == "Arc" {
			arcs = append(arcs, c)
		}
	}
	return arcs
}
