package ui

import (
	"image"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget/material"

	"progressring/cmd/progressring-gui/internal/theme"
	"progressring/internal/demo"
)

// RingView paints one ring's surface with its text overlaid in the centre.
type RingView struct {
	theme  *theme.Theme
	ring   *demo.Ring
	img    paint.ImageOp
	frames uint64
	ready  bool
}

// NewRingView creates a view for r.
func NewRingView(t *theme.Theme, r *demo.Ring) *RingView {
	return &RingView{theme: t, ring: r}
}

// Layout renders the ring.
func (v *RingView) Layout(gtx layout.Context) layout.Dimensions {
	return layout.UniformInset(v.theme.Config.Margin).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Stack{Alignment: layout.Center}.Layout(gtx,
			layout.Stacked(v.layoutRing),
			layout.Stacked(v.layoutText),
		)
	})
}

func (v *RingView) layoutRing(gtx layout.Context) layout.Dimensions {
	side := gtx.Dp(unit.Dp(v.ring.Bar.Size()))
	size := image.Pt(side, side)

	if f := v.ring.Surface.Frames(); !v.ready || f != v.frames {
		if img := v.ring.Surface.Image(); img != nil {
			v.img = paint.NewImageOp(img)
			v.frames = f
			v.ready = true
		}
	}
	if !v.ready {
		return layout.Dimensions{Size: size}
	}

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	v.img.Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)
	return layout.Dimensions{Size: size}
}

func (v *RingView) layoutText(gtx layout.Context) layout.Dimensions {
	l := material.Body1(v.theme.Theme, v.ring.Bar.Text())
	l.Color = v.theme.Palette.Text
	l.Alignment = text.Middle
	return l.Layout(gtx)
}
