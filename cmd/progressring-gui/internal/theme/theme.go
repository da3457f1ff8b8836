package theme

import (
	"image/color"
	"runtime"

	"gioui.org/unit"
	"gioui.org/widget/material"
)

// Palette defines the window colors.
type Palette struct {
	Background color.NRGBA
	Primary    color.NRGBA
	Text       color.NRGBA
	TextMuted  color.NRGBA
}

// Config defines the window metrics.
type Config struct {
	Margin       unit.Dp
	Spacing      unit.Dp
	ButtonHeight unit.Dp
	FontBody     unit.Sp
}

// Theme wraps the material theme with the demo's styling.
type Theme struct {
	*material.Theme
	Palette Palette
	Config  Config
}

// NewTheme creates a new theme for the current OS.
func NewTheme(mtheme *material.Theme) *Theme {
	t := &Theme{
		Theme: mtheme,
		Palette: Palette{
			Background: color.NRGBA{R: 0x24, G: 0x24, B: 0x24, A: 0xFF},
			Primary:    color.NRGBA{R: 0x35, G: 0x84, B: 0xE4, A: 0xFF},
			Text:       color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
			TextMuted:  color.NRGBA{R: 0xA0, G: 0xA0, B: 0xA0, A: 0xFF},
		},
		Config: Config{
			Margin:       unit.Dp(10),
			Spacing:      unit.Dp(8),
			ButtonHeight: unit.Dp(48),
			FontBody:     unit.Sp(14),
		},
	}

	// macOS system text runs slightly smaller
	if runtime.GOOS == "darwin" {
		t.Config.FontBody = unit.Sp(13)
	}

	t.Theme.Palette.Bg = t.Palette.Background
	t.Theme.Palette.Fg = t.Palette.Text
	t.Theme.Palette.ContrastBg = t.Palette.Primary
	t.Theme.Palette.ContrastFg = t.Palette.Text
	t.Theme.TextSize = t.Config.FontBody
	return t
}
