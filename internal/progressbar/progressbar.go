// Package progressbar holds the state of one circular progress widget and
// turns its events into redraws.
package progressbar

import (
	"fmt"
	"log/slog"
	"strconv"

	"progressring/internal/ring"
)

// StartAngleBias is subtracted from the requested start angle at
// construction.
const StartAngleBias = 25

// Drawer runs one frame against a canvas it owns. The canvas is released
// when the callback returns, whatever its result.
type Drawer interface {
	Frame(draw func(ring.Canvas) error) error
}

// Init is the construction-time configuration of a progress bar.
type Init struct {
	Size      int
	Thickness int
	// StartAt is the requested start offset in degrees.
	StartAt         int
	Clockwise       bool
	Value           float64
	Label           *string
	BackgroundColor ring.Color
	PercentageColor ring.Color
}

// Event is an inbound widget event.
type Event interface {
	event()
}

// Draw asks for a repaint with the current state, typically after the
// drawing area was resized.
type Draw struct{}

// UpdateValue sets a new percentage.
type UpdateValue struct {
	Value float64
}

func (Draw) event()        {}
func (UpdateValue) event() {}

// ProgressBar is a single circular progress widget. It is not safe for
// concurrent use; all events are expected on the UI goroutine.
type ProgressBar struct {
	size      int
	thickness int
	startAt   int
	clockwise bool
	value     float64
	label     string
	useLabel  bool

	percentage ring.Color
	background ring.Color

	text    string
	surface Drawer
	logger  *slog.Logger
}

// Option configures a ProgressBar.
type Option func(*ProgressBar)

// WithLogger sets the logger used for state changes.
func WithLogger(l *slog.Logger) Option {
	return func(p *ProgressBar) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a progress bar drawing onto surface. Nothing is drawn until
// the first event arrives.
func New(in Init, surface Drawer, opts ...Option) *ProgressBar {
	p := &ProgressBar{
		size:       in.Size,
		thickness:  in.Thickness,
		startAt:    in.StartAt - StartAngleBias,
		clockwise:  in.Clockwise,
		value:      in.Value,
		percentage: in.PercentageColor,
		background: in.BackgroundColor,
		surface:    surface,
		logger:     slog.Default(),
	}
	if in.Label != nil {
		p.label = *in.Label
		p.useLabel = true
	}
	for _, opt := range opts {
		opt(p)
	}
	p.refreshText()
	return p
}

// Handle applies an event and redraws.
func (p *ProgressBar) Handle(ev Event) error {
	switch ev := ev.(type) {
	case UpdateValue:
		p.setValue(ev.Value)
	case Draw:
	default:
		return fmt.Errorf("progressbar: unknown event %T", ev)
	}
	return p.redraw()
}

// Draw repaints with the current state.
func (p *ProgressBar) Draw() error {
	return p.Handle(Draw{})
}

// UpdateValue sets the value and repaints. Once the value has gone above
// 100 it no longer changes.
func (p *ProgressBar) UpdateValue(v float64) error {
	return p.Handle(UpdateValue{Value: v})
}

func (p *ProgressBar) setValue(v float64) {
	if p.value > 100 {
		p.logger.Debug("value latched, update ignored",
			slog.Float64("value", p.value),
			slog.Float64("requested", v),
		)
		return
	}
	p.logger.Debug("value updated",
		slog.Float64("from", p.value),
		slog.Float64("to", v),
	)
	p.value = v
	p.refreshText()
}

func (p *ProgressBar) refreshText() {
	if p.useLabel {
		p.text = p.label
		return
	}
	p.text = FormatPercent(p.value)
}

func (p *ProgressBar) redraw() error {
	if p.surface == nil {
		return nil
	}
	if err := p.surface.Frame(p.Render); err != nil {
		return fmt.Errorf("redraw: %w", err)
	}
	return nil
}

// Render draws the ring for the current state onto c.
func (p *ProgressBar) Render(c ring.Canvas) error {
	return ring.Render(c, p.Style(), p.value)
}

// Style returns the static drawing parameters, including the effective
// start offset.
func (p *ProgressBar) Style() ring.Style {
	return ring.Style{
		Clockwise:  p.clockwise,
		Size:       float64(p.size),
		Thickness:  float64(p.thickness),
		StartAt:    float64(p.startAt),
		Percentage: p.percentage,
		Background: p.background,
	}
}

// Value returns the current percentage.
func (p *ProgressBar) Value() float64 { return p.value }

// Size returns the side length of the drawing area.
func (p *ProgressBar) Size() int { return p.size }

// StartAt returns the effective start offset.
func (p *ProgressBar) StartAt() int { return p.startAt }

// Clockwise reports the fill direction.
func (p *ProgressBar) Clockwise() bool { return p.clockwise }

// Text returns the overlay text: the fixed label when one was given,
// otherwise the live percentage.
func (p *ProgressBar) Text() string { return p.text }

// HasLabel reports whether a fixed label replaces the percentage.
func (p *ProgressBar) HasLabel() bool { return p.useLabel }

// Span returns the progress arc in radians.
func (p *ProgressBar) Span() (start, end float64) {
	return ring.Span(p.clockwise, p.value)
}

// FormatPercent renders v with the shortest exact representation
// followed by a percent sign.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
