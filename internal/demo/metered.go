package demo

import (
	"time"

	"progressring/internal/metrics"
	"progressring/internal/progressbar"
	"progressring/internal/ring"
)

// meteredDrawer times and counts the frames of the Drawer it wraps.
type meteredDrawer struct {
	progressbar.Drawer
	m *metrics.RingMetrics
}

func (d *meteredDrawer) Frame(draw func(ring.Canvas) error) error {
	start := time.Now()
	err := d.Drawer.Frame(draw)
	d.m.FrameDuration.ObserveDuration(time.Since(start))
	if err != nil {
		d.m.FrameErrorsTotal.Inc()
		return err
	}
	d.m.FramesTotal.Inc()
	return nil
}
