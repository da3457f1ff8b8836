package ring

import (
	"fmt"
	"image/color"
	"strconv"
)

// Color is an RGB triple with channels normalized to [0,1].
type Color struct {
	R, G, B float64
}

// FormatError reports a malformed "#RRGGBB" color string.
type FormatError struct {
	Input  string
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("color %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("color %q: %s", e.Input, e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// ParseColor parses a 7 character "#RRGGBB" string. Hex digits are case
// insensitive.
func ParseColor(text string) (Color, error) {
	if len(text) != 7 || text[0] != '#' {
		return Color{}, &FormatError{Input: text, Reason: "expected #RRGGBB"}
	}

	var channels [3]float64
	for i := range channels {
		pair := text[1+2*i : 3+2*i]
		v, err := strconv.ParseUint(pair, 16, 8)
		if err != nil {
			return Color{}, &FormatError{Input: text, Reason: "invalid hex pair " + strconv.Quote(pair), Err: err}
		}
		channels[i] = float64(v) / 255
	}

	return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// MustParseColor is ParseColor for pre-validated constants.
func MustParseColor(text string) Color {
	c, err := ParseColor(text)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// NRGBA converts the color to an opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: channel8(c.R), G: channel8(c.G), B: channel8(c.B), A: 0xFF}
}

func channel8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xFF
	}
	return uint8(v*255 + 0.5)
}
