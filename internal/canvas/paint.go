package canvas

import "sort"

// Stop is one colour stop of a gradient. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  Color
}

// LinearGradient interpolates colour stops along the line (X0,Y0)-(X1,Y1)
// in surface coordinates.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}

// NewLinearGradient returns an empty gradient along the given line.
func NewLinearGradient(x0, y0, x1, y1 float64) *LinearGradient {
	return &LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// AddStop appends a stop. Offsets are clamped to [0, 1] and stops are kept
// sorted; equal offsets keep insertion order.
func (g *LinearGradient) AddStop(offset float64, c Color) *LinearGradient {
	g.Stops = append(g.Stops, Stop{Offset: clamp(offset, 0, 1), Color: c.Clamp()})
	sort.SliceStable(g.Stops, func(i, j int) bool {
		return g.Stops[i].Offset < g.Stops[j].Offset
	})
	return g
}

// Offset projects (x, y) onto the gradient line and returns the clamped
// position along it.
func (g *LinearGradient) Offset(x, y float64) float64 {
	dx, dy := g.X1-g.X0, g.Y1-g.Y0
	den := dx*dx + dy*dy
	if den == 0 {
		return 0
	}
	return clamp(((x-g.X0)*dx+(y-g.Y0)*dy)/den, 0, 1)
}

// ColorAt returns the interpolated colour at offset t.
func (g *LinearGradient) ColorAt(t float64) Color {
	switch len(g.Stops) {
	case 0:
		return Transparent
	case 1:
		return g.Stops[0].Color
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		lo, hi := g.Stops[i-1], g.Stops[i]
		if t > hi.Offset {
			continue
		}
		span := hi.Offset - lo.Offset
		if span <= 0 {
			return hi.Color
		}
		return Lerp(lo.Color, hi.Color, (t-lo.Offset)/span)
	}
	return g.Stops[len(g.Stops)-1].Color
}

// Paint is what strokes and fills are drawn with: a solid colour, or a
// linear gradient when Gradient is non-nil.
type Paint struct {
	Color    Color
	Gradient *LinearGradient
}

// Solid returns a solid paint.
func Solid(c Color) Paint {
	return Paint{Color: c}
}

// Gradient returns a gradient paint.
func Gradient(g *LinearGradient) Paint {
	return Paint{Gradient: g}
}

// IsGradient reports whether p is a gradient paint.
func (p Paint) IsGradient() bool { return p.Gradient != nil }

// At returns the paint colour at a surface point.
func (p Paint) At(x, y float64) Color {
	if p.Gradient == nil {
		return p.Color
	}
	return p.Gradient.ColorAt(p.Gradient.Offset(x, y))
}
