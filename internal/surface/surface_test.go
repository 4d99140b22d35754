package surface_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/sparkline/internal/buffer"
	"github.com/bamsammich/sparkline/internal/canvas"
	"github.com/bamsammich/sparkline/internal/refline"
	"github.com/bamsammich/sparkline/internal/series"
	"github.com/bamsammich/sparkline/internal/surface"
)

var refColor = canvas.RGBA(0, 0, 255, 1)

func averageConfig() surface.Config {
	cfg := surface.DefaultConfig()
	cfg.RefLine = surface.RefLine{Policy: refline.Average, Color: refColor, Width: 2}
	cfg.Background = canvas.White
	return cfg
}

func TestRenderAverageEndToEnd(t *testing.T) {
	b := buffer.New(5)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		b.Push(v)
	}
	rec := canvas.NewRecorder(104, 54)
	c := surface.New(rec)
	c.Render(b, averageConfig())

	m := c.Geometry()
	assert.InDelta(t, 100.5, m.RenderWidth, 1e-12)
	assert.InDelta(t, 50.0, m.RenderHeight, 1e-12)
	wantY := m.ToY(3)
	assert.InDelta(t, 25.0, wantY, 1e-9)
	assert.InDelta(t, wantY, c.RefY(), 1e-12)

	strokes := rec.Strokes()
	var refStrokes []canvas.Op
	for _, s := range strokes {
		if s.Paint.Color == refColor {
			refStrokes = append(refStrokes, s)
		}
	}
	require.Len(t, refStrokes, 1)
	ref := refStrokes[0]
	assert.Equal(t, strokes[len(strokes)-1], ref, "reference line is drawn last")
	assert.InDelta(t, 2.0, ref.Width, 1e-12)
	require.Len(t, ref.Points, 2)
	assert.Equal(t, canvas.Point{X: 0, Y: wantY}, ref.Points[0])
	assert.Equal(t, canvas.Point{X: m.RenderWidth, Y: wantY}, ref.Points[1])

	line := strokes[0]
	require.Len(t, line.Points, 5)
	for i := 1; i < len(line.Points); i++ {
		assert.Greater(t, line.Points[i].X, line.Points[i-1].X)
		assert.Less(t, line.Points[i].Y, line.Points[i-1].Y)
	}
}

func TestRenderClearsAndPaintsBackgroundFirst(t *testing.T) {
	b := buffer.FromValues([]float64{1, 2})
	rec := canvas.NewRecorder(40, 20)
	surface.New(rec).Render(b, averageConfig())

	require.GreaterOrEqual(t, len(rec.Ops), 3)
	assert.Equal(t, canvas.OpClearRect, rec.Ops[0].Kind)
	assert.Equal(t, []canvas.Point{{X: 0, Y: 0}, {X: 40, Y: 20}}, rec.Ops[0].Points)
	assert.Equal(t, canvas.OpFillRect, rec.Ops[2].Kind)
	assert.Equal(t, canvas.White, rec.Ops[2].Paint.Color)
}

func TestRenderUnderflowDrawsOnlyBackground(t *testing.T) {
	for _, values := range [][]float64{nil, {7}} {
		b := buffer.New(5)
		for _, v := range values {
			b.Push(v)
		}
		rec := canvas.NewRecorder(40, 20)
		surface.New(rec).Render(b, averageConfig())

		kinds := make([]canvas.OpKind, 0, len(rec.Ops))
		for _, op := range rec.Ops {
			kinds = append(kinds, op.Kind)
		}
		assert.Equal(t, []canvas.OpKind{canvas.OpClearRect, canvas.OpSetFillPaint, canvas.OpFillRect}, kinds)
		assert.Zero(t, rec.Count(canvas.OpStroke))
		assert.Zero(t, rec.Count(canvas.OpFill))
	}
}

func TestRenderWithoutSurfaceIsNoop(t *testing.T) {
	var c surface.Controller
	assert.NotPanics(t, func() {
		c.Render(buffer.FromValues([]float64{1, 2, 3}), surface.DefaultConfig())
		c.Resize(10, 10, 2, nil, surface.DefaultConfig())
	})
	assert.Nil(t, c.Surface())
}

func TestRenderZeroSizeSurface(t *testing.T) {
	rec := canvas.NewRecorder(0, 0)
	c := surface.New(rec)
	assert.NotPanics(t, func() {
		c.Render(buffer.FromValues([]float64{1, 5, 3}), averageConfig())
	})
	for _, op := range rec.Ops {
		for _, p := range op.Points {
			assert.False(t, math.IsNaN(p.X) || math.IsNaN(p.Y), op.Kind.String())
		}
	}
}

func TestResizeUsesDevicePixelRatio(t *testing.T) {
	rec := canvas.NewRecorder(1, 1)
	c := surface.New(rec)
	c.Resize(50.4, 20, 2, buffer.FromValues([]float64{1, 2, 3}), surface.DefaultConfig())

	w, h := rec.Size()
	assert.Equal(t, 101, w)
	assert.Equal(t, 40, h)
	assert.Equal(t, canvas.OpClearRect, rec.Ops[0].Kind)
	assert.Equal(t, canvas.Point{X: 101, Y: 40}, rec.Ops[0].Points[1])
}

func TestBackingSize(t *testing.T) {
	tests := []struct {
		w, h, dpr    float64
		wantW, wantH int
	}{
		{100, 30, 1, 100, 30},
		{100, 30, 1.5, 150, 45},
		{33.3, 10, 3, 100, 30},
		{-5, 10, 2, 0, 20},
		{10, 10, math.NaN(), 0, 0},
		{10, 10, math.Inf(1), 0, 0},
	}
	for _, tt := range tests {
		w, h := surface.BackingSize(tt.w, tt.h, tt.dpr)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}

func TestRenderBarsReferenceOnTop(t *testing.T) {
	b := buffer.FromValues([]float64{3, 1, 4, 1, 5})
	cfg := averageConfig()
	cfg.Style.Kind = series.Bar
	rec := canvas.NewRecorder(100, 30)
	surface.New(rec).Render(b, cfg)

	strokes := rec.Strokes()
	require.NotEmpty(t, strokes)
	assert.Equal(t, refColor, strokes[len(strokes)-1].Paint.Color)
	assert.Zero(t, rec.Count(canvas.OpArc))
}
