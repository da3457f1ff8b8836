package metrics

// RingMetrics are the metrics recorded while drawing progress rings.
type RingMetrics struct {
	registry *Registry

	FramesTotal      *Counter
	FrameErrorsTotal *Counter
	UpdatesTotal     *Counter
	LatchedTotal     *Counter
	Rings            *Gauge
	FrameDuration    *Histogram
}

// NewRingMetrics registers the ring metrics in registry. A nil registry
// gets a fresh one under the "progressring" namespace.
func NewRingMetrics(registry *Registry) *RingMetrics {
	if registry == nil {
		registry = NewRegistry("progressring")
	}
	return &RingMetrics{
		registry: registry,
		FramesTotal: registry.Counter("frames_total",
			"Frames drawn to ring surfaces"),
		FrameErrorsTotal: registry.Counter("frame_errors_total",
			"Frames that failed to draw"),
		UpdatesTotal: registry.Counter("updates_total",
			"Value updates delivered to rings"),
		LatchedTotal: registry.Counter("latched_updates_total",
			"Updates ignored because the ring value had passed 100"),
		Rings: registry.Gauge("rings",
			"Rings on the board"),
		FrameDuration: registry.Histogram("frame_duration_seconds",
			"Time spent drawing one ring frame", nil),
	}
}

// Registry returns the registry the metrics live in.
func (m *RingMetrics) Registry() *Registry { return m.registry }
