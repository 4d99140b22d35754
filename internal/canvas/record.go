package canvas

// Point is a surface coordinate.
type Point struct {
	X, Y float64
}

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpBeginPath OpKind = iota + 1
	OpMoveTo
	OpLineTo
	OpArc
	OpClosePath
	OpSetLineWidth
	OpSetStrokePaint
	OpSetFillPaint
	OpStroke
	OpFill
	OpClearRect
	OpFillRect
)

var opNames = [...]string{
	OpBeginPath:      "BeginPath",
	OpMoveTo:         "MoveTo",
	OpLineTo:         "LineTo",
	OpArc:            "Arc",
	OpClosePath:      "ClosePath",
	OpSetLineWidth:   "SetLineWidth",
	OpSetStrokePaint: "SetStrokePaint",
	OpSetFillPaint:   "SetFillPaint",
	OpStroke:         "Stroke",
	OpFill:           "Fill",
	OpClearRect:      "ClearRect",
	OpFillRect:       "FillRect",
}

func (k OpKind) String() string {
	if int(k) < len(opNames) && opNames[k] != "" {
		return opNames[k]
	}
	return "Unknown"
}

// Op is one recorded call. Stroke and Fill carry a snapshot of the path,
// paint and line width in effect when they were issued.
type Op struct {
	Kind   OpKind
	Points []Point // MoveTo/LineTo target, Arc centre, rect origin+size, path snapshot
	Radius float64
	Start  float64
	End    float64
	Width  float64
	Paint  Paint
	Closed bool
}

// Recorder is a Context that records every call instead of drawing. It
// stands in for a host surface in tests and diagnostics.
type Recorder struct {
	Ops []Op

	path        []Point
	closed      bool
	lineWidth   float64
	strokePaint Paint
	fillPaint   Paint
	width       int
	height      int
}

// NewRecorder returns a recorder reporting the given surface size.
func NewRecorder(width, height int) *Recorder {
	return &Recorder{lineWidth: 1, width: width, height: height}
}

// Context implements surface.Surface.
func (r *Recorder) Context() Context { return r }

// Size implements surface.Surface.
func (r *Recorder) Size() (int, int) { return r.width, r.height }

// Resize implements surface.Surface. Recorded ops are kept.
func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
}

// Reset drops all recorded ops and path state.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.path = nil
	r.closed = false
}

func (r *Recorder) BeginPath() {
	r.path = nil
	r.closed = false
	r.Ops = append(r.Ops, Op{Kind: OpBeginPath})
}

func (r *Recorder) MoveTo(x, y float64) {
	r.path = append(r.path, Point{x, y})
	r.Ops = append(r.Ops, Op{Kind: OpMoveTo, Points: []Point{{x, y}}})
}

func (r *Recorder) LineTo(x, y float64) {
	r.path = append(r.path, Point{x, y})
	r.Ops = append(r.Ops, Op{Kind: OpLineTo, Points: []Point{{x, y}}})
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.path = append(r.path, Point{x, y})
	r.Ops = append(r.Ops, Op{
		Kind:   OpArc,
		Points: []Point{{x, y}},
		Radius: radius,
		Start:  startAngle,
		End:    endAngle,
	})
}

func (r *Recorder) ClosePath() {
	r.closed = true
	r.Ops = append(r.Ops, Op{Kind: OpClosePath})
}

func (r *Recorder) SetLineWidth(width float64) {
	r.lineWidth = width
	r.Ops = append(r.Ops, Op{Kind: OpSetLineWidth, Width: width})
}

func (r *Recorder) SetStrokePaint(p Paint) {
	r.strokePaint = p
	r.Ops = append(r.Ops, Op{Kind: OpSetStrokePaint, Paint: p})
}

func (r *Recorder) SetFillPaint(p Paint) {
	r.fillPaint = p
	r.Ops = append(r.Ops, Op{Kind: OpSetFillPaint, Paint: p})
}

func (r *Recorder) Stroke() {
	r.Ops = append(r.Ops, Op{
		Kind:   OpStroke,
		Points: append([]Point(nil), r.path...),
		Width:  r.lineWidth,
		Paint:  r.strokePaint,
		Closed: r.closed,
	})
}

func (r *Recorder) Fill() {
	r.Ops = append(r.Ops, Op{
		Kind:   OpFill,
		Points: append([]Point(nil), r.path...),
		Paint:  r.fillPaint,
		Closed: r.closed,
	})
}

func (r *Recorder) ClearRect(x, y, width, height float64) {
	r.Ops = append(r.Ops, Op{Kind: OpClearRect, Points: []Point{{x, y}, {width, height}}})
}

func (r *Recorder) FillRect(x, y, width, height float64) {
	r.Ops = append(r.Ops, Op{
		Kind:   OpFillRect,
		Points: []Point{{x, y}, {width, height}},
		Paint:  r.fillPaint,
	})
}

// Strokes returns the recorded Stroke ops in order.
func (r *Recorder) Strokes() []Op { return r.filter(OpStroke) }

// Fills returns the recorded Fill ops in order.
func (r *Recorder) Fills() []Op { return r.filter(OpFill) }

// Count returns how many ops of kind k were recorded.
func (r *Recorder) Count(k OpKind) int { return len(r.filter(k)) }

func (r *Recorder) filter(k OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op)
		}
	}
	return out
}
