package ring_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progressring/internal/ring"
	"progressring/internal/ring/ringtest"
)

const eps = 1e-9

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

func testStyle(clockwise bool) ring.Style {
	return ring.Style{
		Clockwise:  clockwise,
		Size:       200,
		Thickness:  5,
		StartAt:    -25,
		Percentage: ring.MustParseColor("#ffffff"),
		Background: ring.MustParseColor("#555657"),
	}
}

func TestPercentToRadians(t *testing.T) {
	assert.InDelta(t, 0, ring.PercentToRadians(0), eps)
	assert.InDelta(t, math.Pi/2, ring.PercentToRadians(25), eps)
	assert.InDelta(t, 2*math.Pi, ring.PercentToRadians(100), eps)
	assert.InDelta(t, -math.Pi/2, ring.PercentToRadians(-25), eps)
}

func TestSpanClockwise(t *testing.T) {
	prev := -1.0
	for v := 0.0; v <= 100; v += 0.5 {
		start, end := ring.Span(true, v)
		require.InDelta(t, 0, start, eps)
		require.InDelta(t, v/100*2*math.Pi, end, eps)

		length := end - start
		require.Greater(t, length, prev, "value %v", v)
		prev = length
	}
}

func TestSpanCounterClockwise(t *testing.T) {
	prevStart := math.Inf(1)
	for v := 0.0; v <= 100; v += 0.5 {
		start, end := ring.Span(false, v)
		require.InDelta(t, (100-v)/100*2*math.Pi, start, eps)
		require.InDelta(t, 2*math.Pi, end, eps)

		require.Less(t, start, prevStart, "value %v", v)
		prevStart = start
	}
}

func TestSpanExamples(t *testing.T) {
	start, end := ring.Span(true, 64)
	assert.InDelta(t, 0, degrees(start), 1e-9)
	assert.InDelta(t, 230.4, degrees(end), 1e-9)

	start, end = ring.Span(false, 25)
	assert.InDelta(t, 270, degrees(start), 1e-9)
	assert.InDelta(t, 360, degrees(end), 1e-9)
}

func TestRadii(t *testing.T) {
	outer, inner := ring.Radii(200, 5)
	assert.Equal(t, 100.0, outer)
	assert.Equal(t, 95.0, inner)

	outer, inner = ring.Radii(200, 100)
	assert.Equal(t, 100.0, outer)
	assert.Equal(t, 0.0, inner)
}

func TestRenderCommandSequence(t *testing.T) {
	rec := ringtest.NewRecorder()
	s := testStyle(true)

	require.NoError(t, ring.Render(rec, s, 64))

	names := make([]string, 0, len(rec.Commands))
	for _, c := range rec.Commands {
		names = append(names, c.Name)
	}
	pass := []string{"MoveTo", "Arc", "SetSourceRGB", "MoveTo", "Arc", "SetFillRule", "Fill"}
	want := append([]string{"Save", "Translate", "Rotate", "Translate"}, pass...)
	want = append(want, pass...)
	want = append(want, "Restore")
	assert.Equal(t, want, names)

	assert.Equal(t, []float64{100, 100}, rec.Commands[1].Args)
	assert.InDelta(t, ring.PercentToRadians(-25), rec.Commands[2].Args[0], eps)
	assert.Equal(t, []float64{-100, -100}, rec.Commands[3].Args)

	for _, c := range rec.Commands {
		if c.Name == "MoveTo" {
			assert.Equal(t, []float64{100, 100}, c.Args)
		}
		if c.Name == "SetFillRule" {
			assert.Equal(t, ring.FillRuleEvenOdd, c.Rule)
		}
	}
}

func TestRenderArcs(t *testing.T) {
	rec := ringtest.NewRecorder()
	require.NoError(t, ring.Render(rec, testStyle(true), 64))

	arcs := rec.Arcs()
	require.Len(t, arcs, 4)

	// background: full outer and inner circles
	assert.Equal(t, 100.0, arcs[0].Args[2])
	assert.Equal(t, 95.0, arcs[1].Args[2])
	for _, a := range arcs[:2] {
		assert.InDelta(t, 0, a.Args[3], eps)
		assert.InDelta(t, 2*math.Pi, a.Args[4], eps)
	}

	// progress: 0 to 230.4 degrees
	assert.Equal(t, 100.0, arcs[2].Args[2])
	assert.Equal(t, 95.0, arcs[3].Args[2])
	for _, a := range arcs[2:] {
		assert.InDelta(t, 0, degrees(a.Args[3]), 1e-9)
		assert.InDelta(t, 230.4, degrees(a.Args[4]), 1e-9)
	}
}

func TestRenderColors(t *testing.T) {
	rec := ringtest.NewRecorder()
	s := testStyle(false)
	require.NoError(t, ring.Render(rec, s, 25))

	var sources [][]float64
	for _, c := range rec.Commands {
		if c.Name == "SetSourceRGB" {
			sources = append(sources, c.Args)
		}
	}
	require.Len(t, sources, 2)
	assert.Equal(t, []float64{s.Background.R, s.Background.G, s.Background.B}, sources[0])
	assert.Equal(t, []float64{1, 1, 1}, sources[1])

	arcs := rec.Arcs()
	assert.InDelta(t, 270, degrees(arcs[2].Args[3]), 1e-9)
	assert.InDelta(t, 360, degrees(arcs[2].Args[4]), 1e-9)
}

func TestRenderIdempotent(t *testing.T) {
	rec := ringtest.NewRecorder()
	rec.Translate(7, 3)
	before := rec.Transform()
	rec.Reset()

	s := testStyle(true)
	require.NoError(t, ring.Render(rec, s, 42))
	first := append([]ringtest.Command(nil), rec.Commands...)
	assert.Equal(t, before, rec.Transform())
	assert.Zero(t, rec.Depth())

	rec.Reset()
	require.NoError(t, ring.Render(rec, s, 42))
	assert.Equal(t, first, rec.Commands)
	assert.Equal(t, before, rec.Transform())
	assert.Zero(t, rec.Depth())
}

func TestRenderFillFailureRestores(t *testing.T) {
	backendErr := errors.New("surface lost")

	for _, tc := range []struct {
		failAt int
		op     string
	}{
		{1, "background"},
		{2, "progress"},
	} {
		t.Run(tc.op, func(t *testing.T) {
			rec := ringtest.NewRecorder()
			rec.FailFill = tc.failAt
			rec.Err = backendErr

			err := ring.Render(rec, testStyle(true), 50)
			require.Error(t, err)
			assert.ErrorIs(t, err, backendErr)

			var de *ring.DrawError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tc.op, de.Op)

			assert.Zero(t, rec.Depth())
			assert.Equal(t, ringtest.Identity(), rec.Transform())
			assert.Equal(t, "Restore", rec.Commands[len(rec.Commands)-1].Name)
		})
	}
}
