package metrics

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryReturnsSameMetric(t *testing.T) {
	r := NewRegistry("test")
	a := r.Counter("hits_total", "hits")
	b := r.Counter("hits_total", "ignored")
	assert.Same(t, a, b)
	assert.Same(t, r.Gauge("g", ""), r.Gauge("g", ""))
	assert.Same(t, r.Histogram("h", "", nil), r.Histogram("h", "", nil))
}

func TestCounterConcurrent(t *testing.T) {
	c := NewRegistry("").Counter("c", "")
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Inc()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(1000), c.Value())
}

func TestGauge(t *testing.T) {
	g := NewRegistry("").Gauge("g", "")
	g.Set(5)
	g.Add(-2)
	assert.Equal(t, int64(3), g.Value())
}

func TestHistogramBuckets(t *testing.T) {
	h := NewRegistry("").Histogram("h", "", []float64{2, 1})
	h.Observe(0.5)
	h.Observe(1)
	h.Observe(1.5)
	h.Observe(10)
	h.ObserveDuration(time.Second)

	assert.Equal(t, uint64(5), h.Count())
	assert.InDelta(t, 14.0, h.Sum(), 1e-9)
	// le=1 holds 0.5, 1, 1; le=2 adds 1.5; +Inf adds 10.
	assert.Equal(t, []uint64{3, 1, 1}, h.counts)
}

func TestWritePrometheus(t *testing.T) {
	r := NewRegistry("ns")
	r.Counter("b_total", "second").Add(2)
	r.Counter("a_total", "first").Inc()
	r.Gauge("level", "a gauge").Set(7)
	h := r.Histogram("seconds", "a histogram", []float64{1})
	h.Observe(0.5)
	h.Observe(3)

	var buf bytes.Buffer
	require.NoError(t, r.WritePrometheus(&buf))
	out := buf.String()

	assert.Contains(t, out, "# TYPE ns_a_total counter\nns_a_total 1\n")
	assert.Contains(t, out, "ns_b_total 2\n")
	assert.Contains(t, out, "# HELP ns_level a gauge\n")
	assert.Contains(t, out, "ns_level 7\n")
	assert.Contains(t, out, `ns_seconds_bucket{le="1"} 1`)
	assert.Contains(t, out, `ns_seconds_bucket{le="+Inf"} 2`)
	assert.Contains(t, out, "ns_seconds_sum 3.5\n")
	assert.Contains(t, out, "ns_seconds_count 2\n")
	assert.Less(t, strings.Index(out, "ns_a_total"), strings.Index(out, "ns_b_total"))
}

func TestNewRingMetrics(t *testing.T) {
	m := NewRingMetrics(nil)
	m.FramesTotal.Inc()
	m.Rings.Set(5)

	var buf bytes.Buffer
	require.NoError(t, m.Registry().WritePrometheus(&buf))
	assert.Contains(t, buf.String(), "progressring_frames_total 1\n")
	assert.Contains(t, buf.String(), "progressring_rings 5\n")
	assert.Contains(t, buf.String(), "progressring_frame_duration_seconds_count 0\n")
}
