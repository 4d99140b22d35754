package series

import (
	"fmt"
	"strings"

	"github.com/bamsammich/sparkline/internal/canvas"
)

// Kind selects the series representation.
type Kind int

const (
	Line Kind = iota
	Bar
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Bar:
		return "bar"
	default:
		return "unknown"
	}
}

// ParseKind parses "line" or "bar".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return Line, nil
	case "bar":
		return Bar, nil
	default:
		return Line, fmt.Errorf("unknown chart type %q", s)
	}
}

// LineScheme colours strokes. It is one of SolidLine, AboveBelowLine or
// TrendLine.
type LineScheme interface {
	lineScheme()
}

// SolidLine strokes everything in one colour.
type SolidLine struct {
	Color canvas.Color
}

// AboveBelowLine strokes the parts of the series above the reference line
// in Above and the parts below it in Below, splitting segments that cross.
type AboveBelowLine struct {
	Above, Below canvas.Color
}

// TrendLine strokes the whole series in Up when the newest sample is at
// least the oldest, otherwise in Down.
type TrendLine struct {
	Up, Down canvas.Color
}

func (SolidLine) lineScheme()      {}
func (AboveBelowLine) lineScheme() {}
func (TrendLine) lineScheme()      {}

// FillScheme paints the area between the series and the reference line.
// It is one of SolidFill, AboveBelowFill or GradientFill.
type FillScheme interface {
	fillScheme()
}

// SolidFill uses one flat colour. A transparent colour disables the fill.
type SolidFill struct {
	Color canvas.Color
}

// AboveBelowFill uses Above over the reference line and Below under it,
// with a hard edge at the line.
type AboveBelowFill struct {
	Above, Below canvas.Color
}

// GradientFill fades Above and Below to transparent at the reference line.
type GradientFill struct {
	Above, Below canvas.Color
}

func (SolidFill) fillScheme()      {}
func (AboveBelowFill) fillScheme() {}
func (GradientFill) fillScheme()   {}

// SchemeName returns the attribute name of a line or fill scheme.
func SchemeName(scheme any) string {
	switch scheme.(type) {
	case SolidLine, SolidFill:
		return "solid"
	case AboveBelowLine, AboveBelowFill:
		return "abovebelow"
	case TrendLine:
		return "firstlastdiff"
	case GradientFill:
		return "gradient"
	default:
		return "unknown"
	}
}

// Endpoint is the marker drawn on the newest sample in line mode.
type Endpoint struct {
	Radius float64
	Color  canvas.Color
}

// Style is a per-render snapshot of everything that shapes the series.
// Renderers read it and never modify it.
type Style struct {
	Kind      Kind
	LineWidth float64
	Line      LineScheme
	Fill      FillScheme
	Endpoint  Endpoint
}

// DefaultStyle matches the defaults of the attribute parser.
func DefaultStyle() Style {
	return Style{
		Kind:      Line,
		LineWidth: 1,
		Line:      SolidLine{Color: canvas.Black},
		Fill:      SolidFill{Color: canvas.Transparent},
		Endpoint:  Endpoint{Radius: 3, Color: canvas.RGBA(255, 0, 0, 0.75)},
	}
}

// strokeColors is a LineScheme resolved against the data of one render.
type strokeColors struct {
	split        bool
	solid        canvas.Color
	above, below canvas.Color
}

func resolveStroke(scheme LineScheme, first, last float64) strokeColors {
	switch s := scheme.(type) {
	case SolidLine:
		return strokeColors{solid: s.Color}
	case AboveBelowLine:
		return strokeColors{split: true, above: s.Above, below: s.Below}
	case TrendLine:
		if first <= last {
			return strokeColors{solid: s.Up}
		}
		return strokeColors{solid: s.Down}
	default:
		return strokeColors{solid: canvas.Black}
	}
}

// side returns the stroke colour for a point at row y.
func (c strokeColors) side(y, refY float64) canvas.Color {
	if y <= refY {
		return c.above
	}
	return c.below
}

// FillPaint builds the fill paint for a reference line at refY on a
// surface of the given height.
func FillPaint(scheme FillScheme, refY, surfaceHeight float64) canvas.Paint {
	switch s := scheme.(type) {
	case SolidFill:
		return canvas.Solid(s.Color)
	case AboveBelowFill:
		p := refOffset(refY, surfaceHeight)
		g := canvas.NewLinearGradient(0, 0, 0, surfaceHeight).
			AddStop(0, s.Above).
			AddStop(p-0.001, s.Above).
			AddStop(p, canvas.Transparent).
			AddStop(p+0.001, s.Below).
			AddStop(1, s.Below)
		return canvas.Gradient(g)
	case GradientFill:
		p := refOffset(refY, surfaceHeight)
		g := canvas.NewLinearGradient(0, 0, 0, surfaceHeight).
			AddStop(0, s.Above).
			AddStop(p, s.Above.WithAlpha(0)).
			AddStop(p+0.0001, s.Below.WithAlpha(0)).
			AddStop(1, s.Below)
		return canvas.Gradient(g)
	default:
		return canvas.Solid(canvas.Transparent)
	}
}

// refOffset is the reference line's relative position on the gradient
// axis, kept strictly inside (0, 1).
func refOffset(refY, surfaceHeight float64) float64 {
	if surfaceHeight <= 0 {
		return 0.5
	}
	return max(0.0001, min(0.9999, refY/surfaceHeight))
}
