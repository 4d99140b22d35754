// Package raster draws charts into an in-memory RGBA image with fogleman/gg
// and encodes them as PNG.
package raster

import (
	"image"
	"image/draw"
	"io"

	"github.com/fogleman/gg"

	"github.com/bamsammich/sparkline/internal/canvas"
)

type segKind int

const (
	segMove segKind = iota
	segLine
	segArc
	segClose
)

type segment struct {
	kind       segKind
	x, y       float64
	radius     float64
	start, end float64
}

// Surface is a raster backing store.
type Surface struct {
	dc  *gg.Context
	ctx *Context
}

// New returns a transparent surface of width x height pixels.
func New(width, height int) *Surface {
	s := &Surface{}
	s.Resize(width, height)
	return s
}

// Context implements surface.Surface.
func (s *Surface) Context() canvas.Context { return s.ctx }

// Size implements surface.Surface.
func (s *Surface) Size() (int, int) { return s.dc.Width(), s.dc.Height() }

// Resize implements surface.Surface. The new store starts transparent.
func (s *Surface) Resize(width, height int) {
	s.dc = gg.NewContext(max(0, width), max(0, height))
	s.ctx = &Context{dc: s.dc, lineWidth: 1}
}

// Image returns the backing image. It is shared with the surface.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the surface as a PNG image.
func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// Context adapts gg to canvas.Context. gg consumes its path on Stroke and
// Fill, so the path is kept here and replayed for each paint operation.
type Context struct {
	dc        *gg.Context
	path      []segment
	lineWidth float64
	stroke    canvas.Paint
	fill      canvas.Paint
}

func (c *Context) BeginPath() { c.path = c.path[:0] }

func (c *Context) MoveTo(x, y float64) {
	c.path = append(c.path, segment{kind: segMove, x: x, y: y})
}

func (c *Context) LineTo(x, y float64) {
	c.path = append(c.path, segment{kind: segLine, x: x, y: y})
}

func (c *Context) Arc(x, y, radius, startAngle, endAngle float64) {
	c.path = append(c.path, segment{
		kind:   segArc,
		x:      x,
		y:      y,
		radius: radius,
		start:  startAngle,
		end:    endAngle,
	})
}

func (c *Context) ClosePath() {
	c.path = append(c.path, segment{kind: segClose})
}

func (c *Context) SetLineWidth(width float64) { c.lineWidth = width }

func (c *Context) SetStrokePaint(p canvas.Paint) { c.stroke = p }

func (c *Context) SetFillPaint(p canvas.Paint) { c.fill = p }

func (c *Context) Stroke() {
	if len(c.path) == 0 {
		return
	}
	c.replay()
	c.dc.SetLineWidth(c.lineWidth)
	c.dc.SetStrokeStyle(Pattern(c.stroke))
	c.dc.Stroke()
}

func (c *Context) Fill() {
	if len(c.path) == 0 {
		return
	}
	c.replay()
	c.dc.SetFillStyle(Pattern(c.fill))
	c.dc.Fill()
}

// ClearRect resets the rectangle to transparent black.
func (c *Context) ClearRect(x, y, width, height float64) {
	img, ok := c.dc.Image().(draw.Image)
	if !ok {
		return
	}
	r := image.Rect(int(x), int(y), int(x+width), int(y+height))
	draw.Draw(img, r, image.Transparent, image.Point{}, draw.Src)
}

func (c *Context) FillRect(x, y, width, height float64) {
	c.dc.ClearPath()
	c.dc.DrawRectangle(x, y, width, height)
	c.dc.SetFillStyle(Pattern(c.fill))
	c.dc.Fill()
}

func (c *Context) replay() {
	c.dc.ClearPath()
	for _, s := range c.path {
		switch s.kind {
		case segMove:
			c.dc.MoveTo(s.x, s.y)
		case segLine:
			c.dc.LineTo(s.x, s.y)
		case segArc:
			c.dc.DrawArc(s.x, s.y, s.radius, s.start, s.end)
		case segClose:
			c.dc.ClosePath()
		}
	}
}

// Pattern converts a paint to a gg pattern.
func Pattern(p canvas.Paint) gg.Pattern {
	if !p.IsGradient() {
		return gg.NewSolidPattern(p.Color.NRGBA())
	}
	g := p.Gradient
	grad := gg.NewLinearGradient(g.X0, g.Y0, g.X1, g.Y1)
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, s.Color.NRGBA())
	}
	return grad
}
