package ui

import (
	"log/slog"

	"gioui.org/layout"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"progressring/cmd/progressring-gui/internal/theme"
	"progressring/internal/demo"
)

// Window is the demo's main UI: an Update button above a row of rings.
type Window struct {
	theme  *theme.Theme
	board  *demo.Board
	views  []*RingView
	update widget.Clickable
	status string
	logger *slog.Logger
}

// NewWindow creates the main UI for board.
func NewWindow(t *theme.Theme, board *demo.Board, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	w := &Window{theme: t, logger: logger}
	w.SetBoard(board)
	return w
}

// SetBoard replaces the rings shown, e.g. after a configuration reload.
func (w *Window) SetBoard(board *demo.Board) {
	w.board = board
	w.views = w.views[:0]
	for _, r := range board.Rings() {
		w.views = append(w.views, NewRingView(w.theme, r))
	}
}

// SetStatus shows msg below the Update button. An empty msg hides it.
func (w *Window) SetStatus(msg string) { w.status = msg }

// Layout handles input and renders the window.
func (w *Window) Layout(gtx layout.Context) layout.Dimensions {
	if w.update.Clicked(gtx) {
		if err := w.board.ApplyUpdates(); err != nil {
			w.logger.Error("update failed", slog.String("error", err.Error()))
		}
	}

	paint.Fill(gtx.Ops, w.theme.Palette.Background)

	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			gtx.Constraints.Min.X = gtx.Constraints.Max.X
			gtx.Constraints.Max.Y = gtx.Dp(w.theme.Config.ButtonHeight)
			return material.Button(w.theme.Theme, &w.update, "Update").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Height: w.theme.Config.Spacing}.Layout),
		layout.Rigid(w.layoutStatus),
		layout.Rigid(w.layoutRings),
	)
}

func (w *Window) layoutRings(gtx layout.Context) layout.Dimensions {
	children := make([]layout.FlexChild, 0, len(w.views))
	for _, v := range w.views {
		children = append(children, layout.Rigid(v.Layout))
	}
	return layout.Flex{Axis: layout.Horizontal}.Layout(gtx, children...)
}

func (w *Window) layoutStatus(gtx layout.Context) layout.Dimensions {
	if w.status == "" {
		return layout.Dimensions{}
	}
	l := material.Caption(w.theme.Theme, w.status)
	l.Color = w.theme.Palette.TextMuted
	return layout.UniformInset(w.theme.Config.Margin).Layout(gtx, l.Layout)
}
