// Package canvas defines the immediate-mode drawing contract the sparkline
// engine draws through, plus the colour and paint types it uses.
//
// The contract mirrors a browser 2D context: a path is built with MoveTo,
// LineTo, Arc and ClosePath, then stroked or filled with the current paint.
// Stroke and Fill do not discard the path; BeginPath does.
package canvas

// Context is a 2D immediate-mode drawing context owned by the host.
type Context interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc centred on (x, y). Angles are in radians.
	// When a current point exists, a straight line joins it to the arc start.
	Arc(x, y, radius, startAngle, endAngle float64)
	ClosePath()

	SetLineWidth(width float64)
	SetStrokePaint(p Paint)
	SetFillPaint(p Paint)
	Stroke()
	Fill()

	// ClearRect resets the rectangle to fully transparent pixels.
	ClearRect(x, y, width, height float64)
	// FillRect fills the rectangle with the current fill paint without
	// touching the current path.
	FillRect(x, y, width, height float64)
}
