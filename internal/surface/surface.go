// Package surface owns the drawing surface of one chart: it sizes the
// backing store for the host's device pixel ratio and runs render passes.
package surface

import (
	"math"

	"github.com/bamsammich/sparkline/internal/canvas"
	"github.com/bamsammich/sparkline/internal/geom"
	"github.com/bamsammich/sparkline/internal/refline"
	"github.com/bamsammich/sparkline/internal/series"
)

// Surface is a host-owned backing store with a drawing context.
type Surface interface {
	Context() canvas.Context
	// Size reports the backing size in device pixels.
	Size() (width, height int)
	Resize(width, height int)
}

// Samples is what a render pass reads from the sample buffer.
type Samples interface {
	geom.Stats
	refline.Samples
	Capacity() int
}

// RefLine configures the reference line stroke.
type RefLine struct {
	Policy refline.Policy
	Custom float64
	Color  canvas.Color
	Width  float64
}

// Config is the full per-render configuration.
type Config struct {
	Style      series.Style
	Bounds     geom.Overrides
	CapAbove   bool
	CapBelow   bool
	RefLine    RefLine
	Background canvas.Color
}

// DefaultConfig returns the configuration of a freshly created chart.
func DefaultConfig() Config {
	return Config{
		Style: series.DefaultStyle(),
		RefLine: RefLine{
			Policy: refline.None,
			Color:  canvas.RGBA(255, 0, 0, 0),
			Width:  1,
		},
		Background: canvas.Transparent,
	}
}

// Controller runs render passes against a surface. The zero value has no
// surface and renders nothing.
type Controller struct {
	surface Surface
	mapper  geom.Mapper
	refY    float64
}

// New returns a controller drawing to s.
func New(s Surface) *Controller {
	return &Controller{surface: s}
}

// Attach replaces the surface. A nil surface turns renders into no-ops.
func (c *Controller) Attach(s Surface) { c.surface = s }

// Surface returns the attached surface, or nil.
func (c *Controller) Surface() Surface { return c.surface }

// Geometry returns the mapper of the last render pass that drew a series.
func (c *Controller) Geometry() geom.Mapper { return c.mapper }

// RefY returns the reference line row of the last render pass that drew a
// series.
func (c *Controller) RefY() float64 { return c.refY }

// BackingSize converts a host size in logical pixels to device pixels.
// Negative or non-finite results collapse to 0.
func BackingSize(hostW, hostH, dpr float64) (int, int) {
	return devicePixels(hostW * dpr), devicePixels(hostH * dpr)
}

func devicePixels(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return int(math.Round(v))
}

// Resize sizes the backing store for a host of hostW x hostH logical
// pixels at device pixel ratio dpr, then renders.
func (c *Controller) Resize(hostW, hostH, dpr float64, s Samples, cfg Config) {
	if c.surface == nil {
		return
	}
	w, h := BackingSize(hostW, hostH, dpr)
	c.surface.Resize(w, h)
	c.Render(s, cfg)
}

// Render redraws the whole surface from s and cfg. It always clears and
// paints the background; the series and reference line need at least two
// samples and two slots.
func (c *Controller) Render(s Samples, cfg Config) {
	if c.surface == nil {
		return
	}
	ctx := c.surface.Context()
	if ctx == nil {
		return
	}
	iw, ih := c.surface.Size()
	w, h := float64(iw), float64(ih)

	ctx.ClearRect(0, 0, w, h)
	ctx.SetFillPaint(canvas.Solid(cfg.Background))
	ctx.FillRect(0, 0, w, h)

	if s == nil || s.Count() < 2 || s.Capacity() < 2 {
		return
	}

	m := geom.NewMapper(geom.Frame{
		SurfaceWidth:   w,
		SurfaceHeight:  h,
		LineWidth:      cfg.Style.LineWidth,
		EndpointRadius: cfg.Style.Endpoint.Radius,
		Bounds:         geom.ResolveBounds(s, cfg.Bounds),
		Slots:          s.Capacity(),
		CapAbove:       cfg.CapAbove,
		CapBelow:       cfg.CapBelow,
	})
	refY := refline.Resolve(refline.Input{
		Policy:        cfg.RefLine.Policy,
		Custom:        cfg.RefLine.Custom,
		Samples:       s,
		Mapper:        m,
		SurfaceHeight: h,
		LineWidth:     cfg.RefLine.Width,
	})
	c.mapper, c.refY = m, refY

	series.Draw(ctx, series.Scene{
		Values:        s.Values(),
		Slots:         s.Capacity(),
		Mapper:        m,
		RefY:          refY,
		SurfaceHeight: h,
	}, cfg.Style)

	ctx.BeginPath()
	ctx.SetStrokePaint(canvas.Solid(cfg.RefLine.Color))
	ctx.SetLineWidth(cfg.RefLine.Width)
	ctx.MoveTo(0, refY)
	ctx.LineTo(m.RenderWidth, refY)
	ctx.Stroke()
}
