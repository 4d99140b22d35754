// Package vector collects drawing calls as shapes and writes them out as
// SVG through the go-chart vector renderer.
//
// SVG output is append-only and go-chart has no gradient paint, so two
// things differ from a raster surface: only a ClearRect covering the whole
// surface has an effect (it drops every shape drawn so far), and vertical
// gradient fills are approximated by horizontal bands of solid colour.
package vector

import (
	"io"
	"math"
	"slices"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bamsammich/sparkline/internal/canvas"
)

// gradientBands is the number of solid bands a gradient is split into
// between its end points, on top of one band edge per colour stop.
const gradientBands = 24

// arcSegments is the number of line segments per full turn when an arc
// has to be flattened.
const arcSegments = 32

type shapeKind int

const (
	shapeStroke shapeKind = iota
	shapeFill
	shapeCircle
)

type subpath struct {
	pts    []canvas.Point
	closed bool
}

type circle struct {
	x, y, r float64
}

type shape struct {
	kind     shapeKind
	subpaths []subpath
	circle   circle
	color    drawing.Color
	width    float64
}

// Surface is an SVG backing store.
type Surface struct {
	width, height int
	ctx           *Context
}

// New returns an empty surface of width x height.
func New(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Context implements surface.Surface.
func (s *Surface) Context() canvas.Context { return s.ctx }

// Size implements surface.Surface.
func (s *Surface) Size() (int, int) { return s.width, s.height }

// Resize implements surface.Surface. All shapes are dropped.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = max(0, width), max(0, height)
	s.ctx = &Context{surface: s, lineWidth: 1}
}

// Len returns the number of shapes that will be written.
func (s *Surface) Len() int { return len(s.ctx.shapes) }

// Render writes the surface as an SVG document.
func (s *Surface) Render(w io.Writer) error {
	r, err := chart.SVG(s.width, s.height)
	if err != nil {
		return err
	}
	for _, sh := range s.ctx.shapes {
		r.ResetStyle()
		switch sh.kind {
		case shapeCircle:
			r.SetFillColor(sh.color)
			r.SetStrokeColor(drawing.ColorTransparent)
			r.Circle(sh.circle.r, px(sh.circle.x), px(sh.circle.y))
		case shapeStroke:
			r.SetStrokeColor(sh.color)
			r.SetStrokeWidth(sh.width)
			r.SetFillColor(drawing.ColorTransparent)
			trace(r, sh.subpaths)
			r.Stroke()
		case shapeFill:
			r.SetFillColor(sh.color)
			r.SetStrokeColor(drawing.ColorTransparent)
			trace(r, sh.subpaths)
			r.Fill()
		}
	}
	return r.Save(w)
}

func trace(r chart.Renderer, subpaths []subpath) {
	for _, sp := range subpaths {
		if len(sp.pts) == 0 {
			continue
		}
		r.MoveTo(px(sp.pts[0].X), px(sp.pts[0].Y))
		for _, p := range sp.pts[1:] {
			r.LineTo(px(p.X), px(p.Y))
		}
		if sp.closed {
			r.Close()
		}
	}
}

func px(v float64) int { return int(math.Round(v)) }

// Color converts a canvas colour to a go-chart colour.
func Color(c canvas.Color) drawing.Color {
	n := c.NRGBA()
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// Context implements canvas.Context by collecting shapes.
type Context struct {
	surface   *Surface
	shapes    []shape
	subpaths  []subpath
	circles   []circle
	lineWidth float64
	stroke    canvas.Paint
	fill      canvas.Paint
}

func (c *Context) BeginPath() {
	c.subpaths = nil
	c.circles = nil
}

func (c *Context) MoveTo(x, y float64) {
	c.subpaths = append(c.subpaths, subpath{pts: []canvas.Point{{X: x, Y: y}}})
}

func (c *Context) LineTo(x, y float64) {
	sp := c.current()
	sp.pts = append(sp.pts, canvas.Point{X: x, Y: y})
}

// current returns the open subpath, starting one after a ClosePath at the
// closed subpath's first point.
func (c *Context) current() *subpath {
	n := len(c.subpaths)
	switch {
	case n == 0:
		c.subpaths = append(c.subpaths, subpath{})
	case c.subpaths[n-1].closed:
		start := c.subpaths[n-1].pts[:1]
		c.subpaths = append(c.subpaths, subpath{pts: slices.Clone(start)})
	}
	return &c.subpaths[len(c.subpaths)-1]
}

func (c *Context) Arc(x, y, radius, startAngle, endAngle float64) {
	full := math.Abs(endAngle-startAngle) >= 2*math.Pi
	n := len(c.subpaths)
	if full && (n == 0 || len(c.subpaths[n-1].pts) == 0 || c.subpaths[n-1].closed) {
		c.circles = append(c.circles, circle{x: x, y: y, r: radius})
		return
	}
	steps := max(1, int(math.Ceil(arcSegments*math.Abs(endAngle-startAngle)/(2*math.Pi))))
	sp := c.current()
	for i := 0; i <= steps; i++ {
		a := startAngle + (endAngle-startAngle)*float64(i)/float64(steps)
		sp.pts = append(sp.pts, canvas.Point{X: x + radius*math.Cos(a), Y: y + radius*math.Sin(a)})
	}
}

func (c *Context) ClosePath() {
	if n := len(c.subpaths); n > 0 && len(c.subpaths[n-1].pts) > 0 {
		c.subpaths[n-1].closed = true
	}
}

func (c *Context) SetLineWidth(width float64) { c.lineWidth = width }

func (c *Context) SetStrokePaint(p canvas.Paint) { c.stroke = p }

func (c *Context) SetFillPaint(p canvas.Paint) { c.fill = p }

func (c *Context) Stroke() {
	for _, ci := range c.circles {
		c.add(shape{
			kind:     shapeStroke,
			subpaths: []subpath{{pts: flattenCircle(ci), closed: true}},
			color:    Color(c.stroke.At(ci.x, ci.y)),
			width:    c.lineWidth,
		})
	}
	var paths []subpath
	for _, sp := range c.subpaths {
		if len(sp.pts) > 1 {
			paths = append(paths, clone(sp))
		}
	}
	if len(paths) == 0 {
		return
	}
	cx, cy := centre(paths)
	c.add(shape{kind: shapeStroke, subpaths: paths, color: Color(c.stroke.At(cx, cy)), width: c.lineWidth})
}

func (c *Context) Fill() {
	for _, ci := range c.circles {
		c.add(shape{kind: shapeCircle, circle: ci, color: Color(c.fill.At(ci.x, ci.y))})
	}
	for _, sp := range c.subpaths {
		if len(sp.pts) > 2 {
			c.fillPolygon(sp.pts, c.fill)
		}
	}
}

// ClearRect drops every shape when the rectangle covers the surface.
// Partial clears cannot be expressed and are ignored.
func (c *Context) ClearRect(x, y, width, height float64) {
	if x <= 0 && y <= 0 && x+width >= float64(c.surface.width) && y+height >= float64(c.surface.height) {
		c.shapes = nil
	}
}

func (c *Context) FillRect(x, y, width, height float64) {
	c.fillPolygon([]canvas.Point{
		{X: x, Y: y}, {X: x + width, Y: y}, {X: x + width, Y: y + height}, {X: x, Y: y + height},
	}, c.fill)
}

func (c *Context) add(s shape) {
	if s.color.A == 0 {
		return
	}
	c.shapes = append(c.shapes, s)
}

func (c *Context) fillPolygon(pts []canvas.Point, p canvas.Paint) {
	g := p.Gradient
	if g == nil || g.X0 != g.X1 {
		cx, cy := centre([]subpath{{pts: pts}})
		c.add(shape{
			kind:     shapeFill,
			subpaths: []subpath{{pts: slices.Clone(pts), closed: true}},
			color:    Color(p.At(cx, cy)),
		})
		return
	}
	for _, b := range Bands(pts, g) {
		c.add(shape{
			kind:     shapeFill,
			subpaths: []subpath{{pts: b.Points, closed: true}},
			color:    Color(b.Color),
		})
	}
}

// Band is one solid slice of a gradient-filled polygon.
type Band struct {
	Points []canvas.Point
	Color  canvas.Color
}

// Bands splits polygon pts into horizontal slices of a vertical gradient,
// each painted with the gradient colour at its middle row.
func Bands(pts []canvas.Point, g *canvas.LinearGradient) []Band {
	if len(pts) < 3 {
		return nil
	}
	lo, hi := pts[0].Y, pts[0].Y
	for _, p := range pts {
		lo, hi = math.Min(lo, p.Y), math.Max(hi, p.Y)
	}

	edges := []float64{lo, hi}
	for _, s := range g.Stops {
		edges = append(edges, g.Y0+s.Offset*(g.Y1-g.Y0))
	}
	for i := 0; i <= gradientBands; i++ {
		edges = append(edges, g.Y0+float64(i)*(g.Y1-g.Y0)/gradientBands)
	}
	slices.Sort(edges)
	edges = slices.Compact(edges)

	var out []Band
	for i := 1; i < len(edges); i++ {
		top, bottom := edges[i-1], edges[i]
		if top < lo || bottom > hi || bottom-top < 1e-9 {
			continue
		}
		slice := clipY(clipY(pts, top, true), bottom, false)
		if len(slice) < 3 {
			continue
		}
		out = append(out, Band{Points: slice, Color: g.ColorAt(g.Offset(g.X0, (top+bottom)/2))})
	}
	return out
}

// clipY keeps the part of polygon pts on one side of row y: below it
// (larger y) when keepBelow, above it otherwise.
func clipY(pts []canvas.Point, y float64, keepBelow bool) []canvas.Point {
	inside := func(p canvas.Point) bool {
		if keepBelow {
			return p.Y >= y
		}
		return p.Y <= y
	}
	var out []canvas.Point
	for i, cur := range pts {
		prev := pts[(i+len(pts)-1)%len(pts)]
		cin, pin := inside(cur), inside(prev)
		switch {
		case cin && !pin:
			out = append(out, crossY(prev, cur, y), cur)
		case cin:
			out = append(out, cur)
		case pin:
			out = append(out, crossY(prev, cur, y))
		}
	}
	return out
}

func crossY(a, b canvas.Point, y float64) canvas.Point {
	t := (y - a.Y) / (b.Y - a.Y)
	return canvas.Point{X: a.X + t*(b.X-a.X), Y: y}
}

func centre(paths []subpath) (float64, float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sp := range paths {
		for _, p := range sp.pts {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	return (minX + maxX) / 2, (minY + maxY) / 2
}

func flattenCircle(ci circle) []canvas.Point {
	pts := make([]canvas.Point, 0, arcSegments)
	for i := 0; i < arcSegments; i++ {
		a := 2 * math.Pi * float64(i) / arcSegments
		pts = append(pts, canvas.Point{X: ci.x + ci.r*math.Cos(a), Y: ci.y + ci.r*math.Sin(a)})
	}
	return pts
}

func clone(sp subpath) subpath {
	return subpath{pts: slices.Clone(sp.pts), closed: sp.closed}
}
