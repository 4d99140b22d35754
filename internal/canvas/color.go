package canvas

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an RGBA colour with 0–255 colour channels and a 0–1 alpha, the
// same ranges CSS rgba() uses. Values outside the legal ranges are clamped
// whenever the colour is converted for drawing.
type Color struct {
	R, G, B float64
	A       float64
}

// Common colours.
var (
	Transparent = Color{}
	Black       = RGBA(0, 0, 0, 1)
	White       = RGBA(255, 255, 255, 1)
)

// RGBA builds a Color.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Clamp returns c with every channel forced into its legal range.
func (c Color) Clamp() Color {
	return Color{
		R: clamp(c.R, 0, 255),
		G: clamp(c.G, 0, 255),
		B: clamp(c.B, 0, 255),
		A: clamp(c.A, 0, 1),
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// NRGBA converts c to a non-premultiplied 8-bit colour.
func (c Color) NRGBA() color.NRGBA {
	c = c.Clamp()
	return color.NRGBA{
		R: uint8(math.Round(c.R)),
		G: uint8(math.Round(c.G)),
		B: uint8(math.Round(c.B)),
		A: uint8(math.Round(c.A * 255)),
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// CSS formats c as an rgba() string.
func (c Color) CSS() string {
	c = c.Clamp()
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

// Lerp interpolates between a and b; t is clamped to [0, 1].
func Lerp(a, b Color, t float64) Color {
	t = clamp(t, 0, 1)
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
