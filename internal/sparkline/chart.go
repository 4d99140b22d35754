// Package sparkline is the chart facade: it owns one sample buffer and one
// render configuration and draws them onto a host surface on demand.
//
// A Chart is not safe for concurrent use. Mutations never trigger a
// render; callers decide when to call Render.
package sparkline

import (
	"github.com/bamsammich/sparkline/internal/buffer"
	"github.com/bamsammich/sparkline/internal/canvas"
	"github.com/bamsammich/sparkline/internal/geom"
	"github.com/bamsammich/sparkline/internal/refline"
	"github.com/bamsammich/sparkline/internal/series"
	"github.com/bamsammich/sparkline/internal/surface"
)

// MinLineWidth is the smallest accepted series or reference line width.
const MinLineWidth = 0.1

// DefaultCapacity is the buffer size of a chart created without data.
const DefaultCapacity = 100

// Chart is a single sparkline.
type Chart struct {
	buf  *buffer.Buffer
	cfg  surface.Config
	ctrl *surface.Controller
}

// New returns a chart with an empty buffer of the given capacity drawing
// to s. s may be nil and attached later.
func New(s surface.Surface, capacity int) *Chart {
	return &Chart{
		buf:  buffer.New(capacity),
		cfg:  surface.DefaultConfig(),
		ctrl: surface.New(s),
	}
}

// Attach replaces the drawing surface.
func (c *Chart) Attach(s surface.Surface) { c.ctrl.Attach(s) }

// Surface returns the attached drawing surface, or nil.
func (c *Chart) Surface() surface.Surface { return c.ctrl.Surface() }

// Config returns a copy of the render configuration.
func (c *Chart) Config() surface.Config { return c.cfg }

// Configure replaces the whole render configuration. Line widths are
// clamped the same way the individual setters clamp them.
func (c *Chart) Configure(cfg surface.Config) {
	cfg.Style.LineWidth = max(MinLineWidth, cfg.Style.LineWidth)
	cfg.RefLine.Width = max(MinLineWidth, cfg.RefLine.Width)
	cfg.Style.Endpoint.Radius = max(0, cfg.Style.Endpoint.Radius)
	if cfg.Style.Line == nil {
		cfg.Style.Line = series.DefaultStyle().Line
	}
	if cfg.Style.Fill == nil {
		cfg.Style.Fill = series.DefaultStyle().Fill
	}
	c.cfg = cfg
}

func (c *Chart) SetType(k series.Kind) { c.cfg.Style.Kind = k }

func (c *Chart) SetLineWidth(w float64) {
	c.cfg.Style.LineWidth = max(MinLineWidth, w)
}

func (c *Chart) SetLineScheme(s series.LineScheme) {
	if s != nil {
		c.cfg.Style.Line = s
	}
}

func (c *Chart) SetFill(s series.FillScheme) {
	if s != nil {
		c.cfg.Style.Fill = s
	}
}

// SetLowerBound pins the lower bound of the visible range.
func (c *Chart) SetLowerBound(v float64) {
	c.cfg.Bounds.UseLower, c.cfg.Bounds.Lower = true, v
}

// SetUpperBound pins the upper bound of the visible range.
func (c *Chart) SetUpperBound(v float64) {
	c.cfg.Bounds.UseUpper, c.cfg.Bounds.Upper = true, v
}

// ClearBounds returns both bounds to the buffer statistics.
func (c *Chart) ClearBounds() { c.cfg.Bounds = geom.Overrides{} }

// SetCap controls whether values beyond the bounds are pulled back onto
// the surface.
func (c *Chart) SetCap(above, below bool) {
	c.cfg.CapAbove, c.cfg.CapBelow = above, below
}

// SetReferenceLine selects the reference line policy. custom is used only
// by refline.Custom.
func (c *Chart) SetReferenceLine(p refline.Policy, custom float64) {
	c.cfg.RefLine.Policy, c.cfg.RefLine.Custom = p, custom
}

func (c *Chart) SetReferenceLineColor(col canvas.Color) { c.cfg.RefLine.Color = col }

func (c *Chart) SetReferenceLineWidth(w float64) {
	c.cfg.RefLine.Width = max(MinLineWidth, w)
}

func (c *Chart) SetBackgroundColor(col canvas.Color) { c.cfg.Background = col }

// SetEndpoint configures the marker on the newest sample. A radius of 0
// hides it.
func (c *Chart) SetEndpoint(radius float64, col canvas.Color) {
	c.cfg.Style.Endpoint = series.Endpoint{Radius: max(0, radius), Color: col}
}

// SetCapacity resizes the buffer, keeping the newest samples.
func (c *Chart) SetCapacity(n float64) { c.buf.SetCapacity(n) }

func (c *Chart) SetEvictPolicy(p buffer.EvictPolicy) { c.buf.SetEvictPolicy(p) }

// Push appends one sample.
func (c *Chart) Push(v float64) { c.buf.Push(v) }

// SetData replaces all samples; the capacity becomes len(values).
func (c *Chart) SetData(values []float64) { c.buf.ReplaceAll(values) }

func (c *Chart) Count() int { return c.buf.Count() }

func (c *Chart) Capacity() int { return c.buf.Capacity() }

// Values returns the live samples, oldest first.
func (c *Chart) Values() []float64 { return c.buf.Values() }

// Last returns the newest sample, or 0 when empty.
func (c *Chart) Last() float64 { return c.buf.Last() }

// Bounds returns the visible range the next render would use.
func (c *Chart) Bounds() geom.Bounds { return geom.ResolveBounds(c.buf, c.cfg.Bounds) }

// Render redraws the whole surface.
func (c *Chart) Render() { c.ctrl.Render(c.buf, c.cfg) }

// Resize resizes the backing surface for a host of hostW x hostH logical
// pixels at device pixel ratio dpr, then renders.
func (c *Chart) Resize(hostW, hostH, dpr float64) {
	c.ctrl.Resize(hostW, hostH, dpr, c.buf, c.cfg)
}

// Geometry returns the mapper of the last render that drew a series.
func (c *Chart) Geometry() geom.Mapper { return c.ctrl.Geometry() }

// RefY returns the reference line row of the last render that drew a
// series.
func (c *Chart) RefY() float64 { return c.ctrl.RefY() }
