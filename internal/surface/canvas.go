package surface

import (
	"errors"
	"math"

	"github.com/gogpu/gg"

	"progressring/internal/ring"
)

var errCanvasReleased = errors.New("surface: canvas used after frame ended")

// canvas adapts a gg.Context to ring.Canvas.
//
// gg's DrawArc maps only the centre through the current matrix, so arcs
// are emitted here as cubic segments in user space. That keeps rotations
// applied to the whole arc.
type canvas struct {
	dc       *gg.Context
	hasPoint bool
	released bool
	depth    int
}

var _ ring.Canvas = (*canvas)(nil)

func (c *canvas) release() {
	for ; c.depth > 0; c.depth-- {
		c.dc.Pop()
	}
	c.released = true
}

func (c *canvas) Save() {
	if c.released {
		return
	}
	c.dc.Push()
	c.depth++
}

func (c *canvas) Restore() {
	if c.released || c.depth == 0 {
		return
	}
	c.dc.Pop()
	c.depth--
}

func (c *canvas) Translate(x, y float64) {
	if c.released {
		return
	}
	c.dc.Translate(x, y)
}

func (c *canvas) Rotate(angle float64) {
	if c.released {
		return
	}
	c.dc.Rotate(angle)
}

func (c *canvas) MoveTo(x, y float64) {
	if c.released {
		return
	}
	c.dc.MoveTo(x, y)
	c.hasPoint = true
}

func (c *canvas) SetSourceRGB(r, g, b float64) {
	if c.released {
		return
	}
	c.dc.SetRGB(r, g, b)
}

func (c *canvas) SetFillRule(rule ring.FillRule) {
	if c.released {
		return
	}
	if rule == ring.FillRuleEvenOdd {
		c.dc.SetFillRule(gg.FillRuleEvenOdd)
		return
	}
	c.dc.SetFillRule(gg.FillRuleNonZero)
}

func (c *canvas) Fill() error {
	if c.released {
		return errCanvasReleased
	}
	c.hasPoint = false
	return c.dc.Fill()
}

// Arc appends a circular arc from angle1 to angle2 (radians, increasing).
// A line joins the current point, if any, to the arc start.
func (c *canvas) Arc(cx, cy, r, angle1, angle2 float64) {
	if c.released {
		return
	}
	sweep, ok := arcSweep(angle1, angle2)
	if !ok {
		return
	}

	x0, y0 := cx+r*math.Cos(angle1), cy+r*math.Sin(angle1)
	if c.hasPoint {
		c.dc.LineTo(x0, y0)
	} else {
		c.dc.MoveTo(x0, y0)
		c.hasPoint = true
	}
	if sweep == 0 {
		return
	}

	const maxSweep = math.Pi / 2
	n := int(math.Ceil(sweep / maxSweep))
	step := sweep / float64(n)
	for i := 0; i < n; i++ {
		a1 := angle1 + float64(i)*step
		arcSegment(c.dc, cx, cy, r, a1, a1+step)
	}
}

// arcSweep returns the angle the arc from angle1 to angle2 covers. An end
// before the start wraps forward into [0, 2π). Sweeps past a full turn keep
// at most one extra turn: whole turns beyond that come in pairs, which
// cancel under the even-odd rule. The result stays below 4π. ok is false
// for non-finite angles.
func arcSweep(angle1, angle2 float64) (sweep float64, ok bool) {
	const turn = 2 * math.Pi

	sweep = angle2 - angle1
	if math.IsNaN(sweep) || math.IsInf(sweep, 0) {
		return 0, false
	}
	if sweep < 0 {
		sweep = math.Mod(sweep, turn)
		if sweep < 0 {
			sweep += turn
		}
		return sweep, true
	}
	if sweep <= turn {
		return sweep, true
	}
	extra := math.Mod(math.Floor(sweep/turn), 2)
	return extra*turn + math.Mod(sweep, turn), true
}

// arcSegment appends one cubic approximating an arc of at most 90 degrees.
func arcSegment(dc *gg.Context, cx, cy, r, a1, a2 float64) {
	t := math.Tan((a2 - a1) / 2)
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*t*t) - 1) / 3

	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)

	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2

	dc.CubicTo(
		x1-alpha*r*sin1, y1+alpha*r*cos1,
		x2+alpha*r*sin2, y2-alpha*r*cos2,
		x2, y2,
	)
}
