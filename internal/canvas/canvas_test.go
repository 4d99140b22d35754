package canvas_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/sparkline/internal/canvas"
)

func TestColorClamp(t *testing.T) {
	c := canvas.RGBA(-20, 300, 128, 1.7).Clamp()
	assert.Equal(t, canvas.RGBA(0, 255, 128, 1), c)

	c = canvas.RGBA(math.NaN(), 10, 10, -0.5).Clamp()
	assert.Equal(t, canvas.RGBA(0, 10, 10, 0), c)
}

func TestColorNRGBA(t *testing.T) {
	got := canvas.RGBA(255, 0, 127.6, 0.5).NRGBA()
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 128, A: 128}, got)

	got = canvas.RGBA(400, -1, 0, 2).NRGBA()
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 0, A: 255}, got)
}

func TestColorCSS(t *testing.T) {
	assert.Equal(t, "rgba(255, 0, 0, 0.75)", canvas.RGBA(255, 0, 0, 0.75).CSS())
	assert.Equal(t, "rgba(0, 0, 0, 1)", canvas.RGBA(-5, 0, 0, 3).CSS())
}

func TestLinearGradientColorAt(t *testing.T) {
	g := canvas.NewLinearGradient(0, 0, 0, 100).
		AddStop(1, canvas.RGBA(0, 0, 255, 1)).
		AddStop(0, canvas.RGBA(255, 0, 0, 1))

	require.Len(t, g.Stops, 2)
	assert.InDelta(t, 0.0, g.Stops[0].Offset, 1e-12, "stops sorted by offset")

	mid := g.ColorAt(0.5)
	assert.InDelta(t, 127.5, mid.R, 1e-9)
	assert.InDelta(t, 127.5, mid.B, 1e-9)

	assert.Equal(t, canvas.RGBA(255, 0, 0, 1), g.ColorAt(-1))
	assert.Equal(t, canvas.RGBA(0, 0, 255, 1), g.ColorAt(2))
}

func TestLinearGradientHardEdge(t *testing.T) {
	above := canvas.RGBA(0, 255, 0, 1)
	below := canvas.RGBA(255, 0, 0, 1)
	g := canvas.NewLinearGradient(0, 0, 0, 10).
		AddStop(0, above).
		AddStop(0.499, above).
		AddStop(0.5, canvas.Transparent).
		AddStop(0.501, below).
		AddStop(1, below)

	assert.Equal(t, above, g.ColorAt(0.2))
	assert.Equal(t, below, g.ColorAt(0.8))
	assert.InDelta(t, 0.0, g.ColorAt(0.5).A, 1e-6)
}

func TestLinearGradientOffset(t *testing.T) {
	g := canvas.NewLinearGradient(0, 0, 0, 200)
	assert.InDelta(t, 0.25, g.Offset(33, 50), 1e-12)
	assert.InDelta(t, 0.0, g.Offset(0, -10), 1e-12)
	assert.InDelta(t, 1.0, g.Offset(0, 500), 1e-12)

	degenerate := canvas.NewLinearGradient(5, 5, 5, 5)
	assert.Zero(t, degenerate.Offset(1, 1))
}

func TestPaintAt(t *testing.T) {
	red := canvas.RGBA(255, 0, 0, 1)
	assert.Equal(t, red, canvas.Solid(red).At(10, 10))
	assert.False(t, canvas.Solid(red).IsGradient())

	g := canvas.NewLinearGradient(0, 0, 0, 10).
		AddStop(0, red).
		AddStop(1, canvas.Black)
	p := canvas.Gradient(g)
	assert.True(t, p.IsGradient())
	assert.Equal(t, canvas.Black, p.At(0, 10))
}

func TestRecorderSnapshotsPath(t *testing.T) {
	r := canvas.NewRecorder(10, 10)
	r.SetStrokePaint(canvas.Solid(canvas.Black))
	r.SetLineWidth(2)
	r.BeginPath()
	r.MoveTo(0, 0)
	r.LineTo(5, 5)
	r.Stroke()
	r.LineTo(9, 1)
	r.Stroke()
	r.BeginPath()
	r.FillRect(0, 0, 10, 10)

	strokes := r.Strokes()
	require.Len(t, strokes, 2)
	assert.Len(t, strokes[0].Points, 2)
	assert.Len(t, strokes[1].Points, 3, "stroke keeps the path")
	assert.InDelta(t, 2.0, strokes[1].Width, 1e-12)
	assert.Equal(t, 1, r.Count(canvas.OpFillRect))
	assert.Equal(t, "FillRect", canvas.OpFillRect.String())

	r.Reset()
	assert.Empty(t, r.Ops)
}
