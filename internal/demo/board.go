// Package demo assembles configured progress rings into a board and applies
// the Update button actions to it. The GUI and the headless CLI share it.
package demo

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"progressring/internal/config"
	"progressring/internal/metrics"
	"progressring/internal/progressbar"
	"progressring/internal/ring"
	"progressring/internal/surface"
)

// Ring is one progress bar together with the surface it owns.
type Ring struct {
	Name    string
	Bar     *progressbar.ProgressBar
	Surface *surface.Surface
}

// SpanDegrees returns the progress arc of r in degrees.
func (r *Ring) SpanDegrees() (start, end float64) {
	s, e := r.Bar.Span()
	return s * 180 / math.Pi, e * 180 / math.Pi
}

// Board holds the rings of the demo window in layout order.
type Board struct {
	rings   []*Ring
	updates []config.UpdateAction
	logger  *slog.Logger
	metrics *metrics.RingMetrics
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithMetrics records frame and update metrics for every ring in m.
func WithMetrics(m *metrics.RingMetrics) BoardOption {
	return func(b *Board) { b.metrics = m }
}

// InitFromConfig converts a ring configuration into widget init
// parameters. Malformed colours yield a *ring.FormatError.
func InitFromConfig(rc config.RingConfig) (progressbar.Init, error) {
	bg, err := ring.ParseColor(rc.BackgroundColor)
	if err != nil {
		return progressbar.Init{}, fmt.Errorf("background color: %w", err)
	}
	fg, err := ring.ParseColor(rc.PercentageColor)
	if err != nil {
		return progressbar.Init{}, fmt.Errorf("percentage color: %w", err)
	}

	in := progressbar.Init{
		Size:            rc.Size,
		Thickness:       rc.Thickness,
		StartAt:         rc.StartAt,
		Clockwise:       rc.Clockwise,
		Value:           rc.Value,
		BackgroundColor: bg,
		PercentageColor: fg,
	}
	if rc.Label != nil {
		l := *rc.Label
		in.Label = &l
	}
	return in, nil
}

// NewBoard builds one ring per configured entry, each with its own surface
// rendered at scale device pixels per logical pixel.
func NewBoard(cfg *config.Config, scale float64, logger *slog.Logger, opts ...BoardOption) (*Board, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.Clone()

	b := &Board{
		updates: cfg.Updates,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	for i, rc := range cfg.Rings {
		in, err := InitFromConfig(rc)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("ring %d: %w", i+1, err)
		}
		s, err := surface.New(rc.Size, scale)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("ring %d: %w", i+1, err)
		}

		name := rc.DisplayName(i + 1)
		var d progressbar.Drawer = s
		if b.metrics != nil {
			d = &meteredDrawer{Drawer: s, m: b.metrics}
		}
		bar := progressbar.New(in, d,
			progressbar.WithLogger(logger.With(slog.String("ring", name))),
		)
		b.rings = append(b.rings, &Ring{Name: name, Bar: bar, Surface: s})
	}
	if b.metrics != nil {
		b.metrics.Rings.Set(int64(len(b.rings)))
	}
	return b, nil
}

// Rings returns the rings in layout order.
func (b *Board) Rings() []*Ring { return b.rings }

// Ring returns the ring at the 1-based index i.
func (b *Board) Ring(i int) (*Ring, error) {
	if i < 1 || i > len(b.rings) {
		return nil, fmt.Errorf("ring %d out of range (1-%d)", i, len(b.rings))
	}
	return b.rings[i-1], nil
}

// DrawAll sends a Draw event to every ring.
func (b *Board) DrawAll() error {
	var errs []error
	for _, r := range b.rings {
		if err := r.Bar.Draw(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, err))
		}
	}
	return errors.Join(errs...)
}

// ApplyUpdates performs the Update button actions.
func (b *Board) ApplyUpdates() error {
	var errs []error
	for _, u := range b.updates {
		r, err := b.Ring(u.Ring)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if b.metrics != nil {
			b.metrics.UpdatesTotal.Inc()
			if r.Bar.Value() > 100 {
				b.metrics.LatchedTotal.Inc()
			}
		}
		if err := r.Bar.UpdateValue(u.Value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, err))
		}
	}
	b.logger.Debug("updates applied", slog.Int("actions", len(b.updates)))
	return errors.Join(errs...)
}

// Rescale resizes every surface to a new device scale and redraws the
// rings whose surface changed.
func (b *Board) Rescale(scale float64) error {
	var errs []error
	for _, r := range b.rings {
		changed, err := r.Surface.Resize(scale)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, err))
			continue
		}
		if !changed {
			continue
		}
		if err := r.Bar.Draw(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every surface.
func (b *Board) Close() error {
	var errs []error
	for _, r := range b.rings {
		if err := r.Surface.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Margin is the space around each ring in logical pixels.
const Margin = 10

// MinSize returns the logical size needed to show every ring side by side
// below a control row of controlHeight.
func (b *Board) MinSize(controlHeight int) (width, height int) {
	tallest := 0
	for _, r := range b.rings {
		width += r.Bar.Size() + 2*Margin
		tallest = max(tallest, r.Bar.Size()+2*Margin)
	}
	return width, tallest + controlHeight
}
