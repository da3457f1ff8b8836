package ui

import (
	"image"
	"testing"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progressring/cmd/progressring-gui/internal/theme"
	"progressring/internal/config"
	"progressring/internal/demo"
)

func newTestWindow(t *testing.T) *Window {
	t.Helper()
	board, err := demo.NewBoard(config.DefaultConfig(), 1, nil)
	require.NoError(t, err)
	t.Cleanup(func() { board.Close() })
	require.NoError(t, board.DrawAll())

	return NewWindow(theme.NewTheme(material.NewTheme()), board, nil)
}

func layoutHeight(w *Window) int {
	gtx := layout.Context{
		Ops:         new(op.Ops),
		Metric:      unit.Metric{PxPerDp: 1, PxPerSp: 1},
		Constraints: layout.Constraints{Max: image.Pt(1200, 800)},
	}
	return w.Layout(gtx).Size.Y
}

func TestWindowStatusLine(t *testing.T) {
	w := newTestWindow(t)
	require.Len(t, w.views, 5)

	plain := layoutHeight(w)
	// spacing plus one row of 200px rings with margins, under the button
	assert.Greater(t, plain, 8+220)

	w.SetStatus("reload config: validation failed")
	assert.Greater(t, layoutHeight(w), plain)

	w.SetStatus("")
	assert.Equal(t, plain, layoutHeight(w))
}

func TestWindowSetBoardReplacesViews(t *testing.T) {
	w := newTestWindow(t)

	cfg := config.DefaultConfig()
	cfg.Rings = cfg.Rings[:2]
	cfg.Updates = nil
	board, err := demo.NewBoard(cfg, 1, nil)
	require.NoError(t, err)
	defer board.Close()

	w.SetBoard(board)
	assert.Len(t, w.views, 2)
	assert.Same(t, board.Rings()[1], w.views[1].ring)
}
