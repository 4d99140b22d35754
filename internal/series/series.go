// Package series draws a sample series as a line or as bars, colour-split
// at a reference line.
package series

import (
	"math"

	"github.com/bamsammich/sparkline/internal/canvas"
	"github.com/bamsammich/sparkline/internal/geom"
)

// Scene is the data side of one render pass.
type Scene struct {
	// Values holds the live samples, oldest first.
	Values        []float64
	Slots         int
	Mapper        geom.Mapper
	RefY          float64
	SurfaceHeight float64
}

// Draw renders the series described by sc with style st. Fewer than two
// samples draw nothing.
func Draw(ctx canvas.Context, sc Scene, st Style) {
	if len(sc.Values) < 2 {
		return
	}
	switch st.Kind {
	case Bar:
		drawBars(ctx, sc, st)
	default:
		drawLine(ctx, sc, st)
	}
}

// snap rounds a coordinate to the nearest whole pixel, halves up.
func snap(v float64) float64 {
	return math.Floor(v + 0.5)
}

func snapPoint(p canvas.Point) canvas.Point {
	return canvas.Point{X: snap(p.X), Y: snap(p.Y)}
}

// SplitSegment returns where the segment a-b crosses row refY. ok is false
// unless a and b lie strictly on opposite sides of the row.
func SplitSegment(a, b canvas.Point, refY float64) (canvas.Point, bool) {
	straddles := (a.Y < refY && b.Y > refY) || (a.Y > refY && b.Y < refY)
	if !straddles {
		return canvas.Point{}, false
	}
	x := a.X + (refY-a.Y)*(b.X-a.X)/(b.Y-a.Y)
	return canvas.Point{X: x, Y: refY}, true
}

// linePoints maps the samples to surface points, dropping samples that
// round to the same pixel column as their predecessor.
func linePoints(sc Scene) []canvas.Point {
	m := sc.Mapper
	pts := make([]canvas.Point, 0, len(sc.Values))
	pts = append(pts, canvas.Point{X: 0, Y: m.ToY(sc.Values[0])})
	for i := 1; i < len(sc.Values); i++ {
		x := m.X(i)
		if snap(x) <= snap(m.X(i-1)) {
			continue
		}
		pts = append(pts, canvas.Point{X: x, Y: m.ToY(sc.Values[i])})
	}
	return pts
}

func drawLine(ctx canvas.Context, sc Scene, st Style) {
	pts := linePoints(sc)
	colors := resolveStroke(st.Line, sc.Values[0], sc.Values[len(sc.Values)-1])

	ctx.SetLineWidth(st.LineWidth)
	if colors.split {
		strokeSplit(ctx, pts, sc.RefY, colors)
	} else {
		ctx.SetStrokePaint(canvas.Solid(colors.solid))
		ctx.BeginPath()
		first := snapPoint(pts[0])
		ctx.MoveTo(first.X, first.Y)
		for _, p := range pts[1:] {
			p = snapPoint(p)
			ctx.LineTo(p.X, p.Y)
		}
		ctx.Stroke()
	}

	last := pts[len(pts)-1]

	ctx.BeginPath()
	ctx.MoveTo(0, sc.RefY)
	for _, p := range pts {
		p = snapPoint(p)
		ctx.LineTo(p.X, p.Y)
	}
	ctx.LineTo(snap(last.X), sc.RefY)
	ctx.ClosePath()
	ctx.SetFillPaint(FillPaint(st.Fill, sc.RefY, sc.SurfaceHeight))
	ctx.Fill()

	if st.Endpoint.Radius > 0 {
		ctx.BeginPath()
		ctx.Arc(last.X, last.Y, st.Endpoint.Radius, 0, 2*math.Pi)
		ctx.SetFillPaint(canvas.Solid(st.Endpoint.Color))
		ctx.Fill()
	}
}

// runStroker strokes consecutive pieces of the same colour as one path.
type runStroker struct {
	ctx    canvas.Context
	open   bool
	color  canvas.Color
	cursor canvas.Point
}

func (r *runStroker) add(from, to canvas.Point, c canvas.Color) {
	from, to = snapPoint(from), snapPoint(to)
	if !r.open || c != r.color || from != r.cursor {
		r.flush()
		r.ctx.SetStrokePaint(canvas.Solid(c))
		r.ctx.BeginPath()
		r.ctx.MoveTo(from.X, from.Y)
		r.open = true
		r.color = c
	}
	r.ctx.LineTo(to.X, to.Y)
	r.cursor = to
}

func (r *runStroker) flush() {
	if r.open {
		r.ctx.Stroke()
		r.open = false
	}
}

func strokeSplit(ctx canvas.Context, pts []canvas.Point, refY float64, colors strokeColors) {
	r := &runStroker{ctx: ctx}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		switch {
		case a.Y <= refY && b.Y <= refY:
			r.add(a, b, colors.above)
		case a.Y >= refY && b.Y >= refY:
			r.add(a, b, colors.below)
		default:
			z, _ := SplitSegment(a, b, refY)
			r.add(a, z, colors.side(a.Y, refY))
			r.add(z, b, colors.side(b.Y, refY))
		}
	}
	r.flush()
}

// barGap is the space left between bars.
func barGap(xStep, lineWidth float64, slots int) float64 {
	if xStep < 2*lineWidth || slots < 2 {
		return 0
	}
	n := float64(slots)
	return 2 * lineWidth * n / (n - 1)
}

// drawBars draws one bar per sample after the first. Bar i spans the step
// that ends at sample i, between the reference line and the sample.
func drawBars(ctx canvas.Context, sc Scene, st Style) {
	m := sc.Mapper
	colors := resolveStroke(st.Line, sc.Values[0], sc.Values[len(sc.Values)-1])
	gap := barGap(m.XStep, st.LineWidth, sc.Slots)
	refY := snap(sc.RefY)

	ctx.SetLineWidth(st.LineWidth)
	ctx.SetFillPaint(FillPaint(st.Fill, sc.RefY, sc.SurfaceHeight))
	if !colors.split {
		ctx.SetStrokePaint(canvas.Solid(colors.solid))
	}

	x, prevX := 0.0, -1.0
	for i := 1; i < len(sc.Values); i++ {
		if snap(x) > snap(prevX) {
			space := gap
			if i == sc.Slots-1 {
				space = 0
			}
			y := m.ToY(sc.Values[i])
			left, top := snap(x), snap(y)
			right := snap(math.Max(x, x+m.XStep-space))

			ctx.BeginPath()
			barPath(ctx, left, right, top, refY)
			ctx.ClosePath()
			ctx.Fill()

			if colors.split {
				ctx.SetStrokePaint(canvas.Solid(colors.side(y, sc.RefY)))
			}
			ctx.BeginPath()
			barPath(ctx, left, right, top, refY)
			ctx.Stroke()
		}
		prevX = x
		x += m.XStep
	}
}

// barPath traces a bar outline that is open along the reference edge.
func barPath(ctx canvas.Context, left, right, top, base float64) {
	ctx.MoveTo(left, base)
	ctx.LineTo(left, top)
	ctx.LineTo(right, top)
	ctx.LineTo(right, base)
}
