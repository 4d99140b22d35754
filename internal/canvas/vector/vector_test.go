package vector_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/bamsammich/sparkline/internal/canvas"
	"github.com/bamsammich/sparkline/internal/canvas/vector"
	"github.com/bamsammich/sparkline/internal/series"
	"github.com/bamsammich/sparkline/internal/sparkline"
)

func TestColor(t *testing.T) {
	assert.Equal(t, drawing.Color{R: 255, G: 0, B: 0, A: 191}, vector.Color(canvas.RGBA(255, 0, 0, 0.75)))
	assert.Equal(t, drawing.Color{R: 255, G: 0, B: 0, A: 255}, vector.Color(canvas.RGBA(300, -4, 0, 2)))
}

func TestBands(t *testing.T) {
	square := []canvas.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	g := canvas.NewLinearGradient(0, 0, 0, 10).
		AddStop(0, canvas.RGBA(0, 200, 0, 1)).
		AddStop(1, canvas.RGBA(200, 0, 0, 1))

	bands := vector.Bands(square, g)
	require.Len(t, bands, 24)
	for i, b := range bands {
		top := float64(i) * 10 / 24
		bottom := float64(i+1) * 10 / 24
		require.Len(t, b.Points, 4)
		for _, p := range b.Points {
			assert.GreaterOrEqual(t, p.Y, top-1e-9)
			assert.LessOrEqual(t, p.Y, bottom+1e-9)
		}
	}
	assert.Greater(t, bands[0].Color.G, bands[23].Color.G)
	assert.Less(t, bands[0].Color.R, bands[23].Color.R)
}

func TestBandsClipsTriangle(t *testing.T) {
	tri := []canvas.Point{{X: 0, Y: 10}, {X: 5, Y: 0}, {X: 10, Y: 10}}
	g := canvas.NewLinearGradient(0, 0, 0, 10).
		AddStop(0, canvas.Black).
		AddStop(1, canvas.White)

	bands := vector.Bands(tri, g)
	require.NotEmpty(t, bands)
	assert.Len(t, bands[0].Points, 3, "apex slice is a triangle")
	assert.Len(t, bands[len(bands)-1].Points, 4)
}

func TestChartRendersSVG(t *testing.T) {
	s := vector.New(120, 30)
	c := sparkline.New(s, 5)
	c.SetLineScheme(series.SolidLine{Color: canvas.Black})
	for _, v := range []float64{1, 3, 2, 5, 4} {
		c.Push(v)
	}
	c.Render()
	assert.Equal(t, 2, s.Len(), "line stroke and endpoint; transparent shapes are dropped")

	c.Render()
	assert.Equal(t, 2, s.Len(), "a full clear drops earlier shapes")

	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf))
	out := buf.String()
	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<svg"))
	assert.Contains(t, out, "<path")
	assert.Contains(t, out, "<circle")
	assert.Contains(t, out, "</svg>")
}

func TestGradientFillIsBanded(t *testing.T) {
	s := vector.New(100, 40)
	c := sparkline.New(s, 4)
	c.SetEndpoint(0, canvas.Transparent)
	c.SetFill(series.GradientFill{Above: canvas.RGBA(0, 200, 0, 1), Below: canvas.RGBA(200, 0, 0, 1)})
	c.SetData([]float64{0, 10, -10, 5})
	c.Render()

	assert.Greater(t, s.Len(), 3, "fill split into several solid bands")
}
