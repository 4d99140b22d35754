// Package geom maps sample values and ordinals onto surface pixels.
package geom

import "math"

// Bounds is the visible value range. Lower > Upper is allowed and yields
// an inverted mapping.
type Bounds struct {
	Lower, Upper float64
}

// Stats is the part of a sample buffer bounds are derived from.
type Stats interface {
	Min() float64
	Max() float64
}

// Overrides pins either bound to an explicit value.
type Overrides struct {
	UseLower bool
	Lower    float64
	UseUpper bool
	Upper    float64
}

// ResolveBounds picks each bound from the override when set, otherwise
// from the buffer statistics. No ordering between the two is enforced.
func ResolveBounds(s Stats, o Overrides) Bounds {
	b := Bounds{Lower: s.Min(), Upper: s.Max()}
	if o.UseLower {
		b.Lower = o.Lower
	}
	if o.UseUpper {
		b.Upper = o.Upper
	}
	return b
}

// Frame holds the inputs of one mapping.
type Frame struct {
	SurfaceWidth   float64
	SurfaceHeight  float64
	LineWidth      float64
	EndpointRadius float64
	Bounds         Bounds
	// Slots is the number of x positions across the render width, normally
	// the buffer capacity.
	Slots    int
	CapAbove bool
	CapBelow bool
}

// Mapper converts values and ordinals to surface coordinates. It is a
// plain value recomputed for every render pass.
type Mapper struct {
	RenderWidth  float64
	RenderHeight float64
	XStep        float64
	YStep        float64

	lower    float64
	radius   float64
	capAbove bool
	capBelow bool
}

// NewMapper derives the render area and step sizes for f.
func NewMapper(f Frame) Mapper {
	m := Mapper{
		RenderWidth:  f.SurfaceWidth - f.LineWidth/2 - f.EndpointRadius,
		RenderHeight: f.SurfaceHeight - f.LineWidth - f.EndpointRadius,
		lower:        f.Bounds.Lower,
		radius:       f.EndpointRadius,
		capAbove:     f.CapAbove,
		capBelow:     f.CapBelow,
	}
	m.XStep = m.RenderWidth / float64(max(1, f.Slots-1))
	if m.RenderHeight != 0 {
		m.YStep = (f.Bounds.Upper - f.Bounds.Lower) / m.RenderHeight
	}
	return m
}

// Degenerate reports whether values cannot be spread vertically, either
// because the render height is zero or the bounds have zero width.
func (m Mapper) Degenerate() bool {
	return m.YStep == 0 || math.IsNaN(m.YStep) || math.IsInf(m.YStep, 0)
}

// ToY maps a value to a y coordinate, applying the cap flags. A
// degenerate mapping puts every value on the bottom edge.
func (m Mapper) ToY(v float64) float64 {
	if m.Degenerate() {
		return m.RenderHeight
	}
	y := m.RenderHeight - (v-m.lower)/m.YStep
	if m.capAbove && y < 0 {
		y = m.radius
	}
	if m.capBelow && y > m.RenderHeight {
		y = m.RenderHeight - m.radius
	}
	return y
}

// Value is the inverse of ToY for uncapped, non-degenerate mappings.
func (m Mapper) Value(y float64) float64 {
	if m.Degenerate() {
		return m.lower
	}
	return m.lower + (m.RenderHeight-y)*m.YStep
}

// X returns the x coordinate of an ordinal.
func (m Mapper) X(ordinal int) float64 {
	return float64(ordinal) * m.XStep
}
