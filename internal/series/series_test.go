package series_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/sparkline/internal/canvas"
	"github.com/bamsammich/sparkline/internal/geom"
	"github.com/bamsammich/sparkline/internal/series"
)

var (
	green = canvas.RGBA(0, 200, 0, 1)
	red   = canvas.RGBA(200, 0, 0, 1)
	blue  = canvas.RGBA(0, 0, 200, 1)
)

// scene builds a 101x41 surface scene with line width 1 and no endpoint
// radius: render area 100.5 x 40.
func scene(values []float64, refValue float64) series.Scene {
	lower, upper := values[0], values[0]
	for _, v := range values {
		lower = min(lower, v)
		upper = max(upper, v)
	}
	m := geom.NewMapper(geom.Frame{
		SurfaceWidth:  101,
		SurfaceHeight: 41,
		LineWidth:     1,
		Bounds:        geom.Bounds{Lower: lower, Upper: upper},
		Slots:         len(values),
	})
	return series.Scene{
		Values:        values,
		Slots:         len(values),
		Mapper:        m,
		RefY:          m.ToY(refValue),
		SurfaceHeight: 41,
	}
}

func lineStyle(scheme series.LineScheme) series.Style {
	st := series.DefaultStyle()
	st.Line = scheme
	st.Endpoint.Radius = 0
	return st
}

func TestParseKind(t *testing.T) {
	k, err := series.ParseKind(" BAR ")
	require.NoError(t, err)
	assert.Equal(t, series.Bar, k)
	assert.Equal(t, "bar", k.String())

	k, err = series.ParseKind("pie")
	require.Error(t, err)
	assert.Equal(t, series.Line, k)
}

func TestSplitSegment(t *testing.T) {
	a := canvas.Point{X: 0, Y: 40}
	b := canvas.Point{X: 100.5, Y: 0}

	z, ok := series.SplitSegment(a, b, 30)
	require.True(t, ok)
	assert.Greater(t, z.X, a.X)
	assert.Less(t, z.X, b.X)
	assert.InDelta(t, 25.125, z.X, 1e-9)
	assert.InDelta(t, 30.0, z.Y, 1e-12)

	_, ok = series.SplitSegment(a, b, 50)
	assert.False(t, ok, "both below the row")
	_, ok = series.SplitSegment(a, b, 40)
	assert.False(t, ok, "touching the row is not a crossing")
}

func TestDrawNeedsTwoSamples(t *testing.T) {
	rec := canvas.NewRecorder(101, 41)
	sc := scene([]float64{4}, 4)
	series.Draw(rec, sc, series.DefaultStyle())
	assert.Empty(t, rec.Ops)
}

func TestLineStraddleSplitsColours(t *testing.T) {
	rec := canvas.NewRecorder(101, 41)
	sc := scene([]float64{-1, 3}, 0)
	series.Draw(rec, sc, lineStyle(series.AboveBelowLine{Above: green, Below: red}))

	strokes := rec.Strokes()
	require.Len(t, strokes, 2)

	// First half starts below the reference line.
	assert.Equal(t, red, strokes[0].Paint.Color)
	assert.Equal(t, []canvas.Point{{X: 0, Y: 40}, {X: 25, Y: 30}}, strokes[0].Points)

	assert.Equal(t, green, strokes[1].Paint.Color)
	assert.Equal(t, []canvas.Point{{X: 25, Y: 30}, {X: 101, Y: 0}}, strokes[1].Points)
}

func TestLineAboveBelowMergesRuns(t *testing.T) {
	rec := canvas.NewRecorder(101, 41)
	// 5, 6, 7 stay above 2; 1 crosses below; 0 stays below.
	sc := scene([]float64{5, 6, 7, 1, 0}, 2)
	series.Draw(rec, sc, lineStyle(series.AboveBelowLine{Above: green, Below: red}))

	strokes := rec.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, green, strokes[0].Paint.Color)
	assert.Len(t, strokes[0].Points, 4, "three segments above plus the crossing")
	assert.Equal(t, red, strokes[1].Paint.Color)
	assert.Len(t, strokes[1].Points, 3)
}

func TestLineSolidSingleStroke(t *testing.T) {
	rec := canvas.NewRecorder(101, 41)
	sc := scene([]float64{1, 2, 3, 4, 5}, 3)
	series.Draw(rec, sc, lineStyle(series.SolidLine{Color: blue}))

	strokes := rec.Strokes()
	require.Len(t, strokes, 1)
	assert.Equal(t, blue, strokes[0].Paint.Color)
	require.Len(t, strokes[0].Points, 5)
	for i := 1; i < len(strokes[0].Points); i++ {
		assert.Greater(t, strokes[0].Points[i].X, strokes[0].Points[i-1].X)
		assert.Less(t, strokes[0].Points[i].Y, strokes[0].Points[i-1].Y, "rising series")
	}
}

func TestLineTrendColour(t *testing.T) {
	scheme := series.TrendLine{Up: green, Down: red}

	rec := canvas.NewRecorder(101, 41)
	series.Draw(rec, scene([]float64{1, 9, 1}, 0), lineStyle(scheme))
	assert.Equal(t, green, rec.Strokes()[0].Paint.Color, "first <= last is up")

	rec = canvas.NewRecorder(101, 41)
	series.Draw(rec, scene([]float64{5, 9, 4}, 0), lineStyle(scheme))
	assert.Equal(t, red, rec.Strokes()[0].Paint.Color)
}

func TestLineFillPathClosesOnReference(t *testing.T) {
	rec := canvas.NewRecorder(101, 41)
	sc := scene([]float64{-1, 3}, 0)
	st := lineStyle(series.SolidLine{Color: blue})
	st.Fill = series.SolidFill{Color: green}
	series.Draw(rec, sc, st)

	fills := rec.Fills()
	require.Len(t, fills, 1)
	f := fills[0]
	assert.True(t, f.Closed)
	assert.Equal(t, green, f.Paint.Color)
	assert.Equal(t, []canvas.Point{
		{X: 0, Y: 30}, {X: 0, Y: 40}, {X: 101, Y: 0}, {X: 101, Y: 30},
	}, f.Points)
}

func TestLineEndpoint(t *testing.T) {
	rec := canvas.NewRecorder(101, 41)
	st := lineStyle(series.SolidLine{Color: blue})
	st.Endpoint = series.Endpoint{Radius: 2.5, Color: red}
	series.Draw(rec, scene([]float64{0, 2}, 1), st)

	require.Equal(t, 1, rec.Count(canvas.OpArc))
	fills := rec.Fills()
	require.Len(t, fills, 2)
	assert.Equal(t, red, fills[1].Paint.Color)
	for _, op := range rec.Ops {
		if op.Kind == canvas.OpArc {
			assert.InDelta(t, 2.5, op.Radius, 1e-12)
			assert.InDelta(t, 100.5, op.Points[0].X, 1e-9)
			assert.InDelta(t, 0.0, op.Points[0].Y, 1e-9)
		}
	}
}

func TestLineDecimatesDenseSamples(t *testing.T) {
	values := make([]float64, 400)
	for i := range values {
		values[i] = float64(i % 7)
	}
	rec := canvas.NewRecorder(101, 41)
	series.Draw(rec, scene(values, 3), lineStyle(series.SolidLine{Color: blue}))

	strokes := rec.Strokes()
	require.Len(t, strokes, 1)
	assert.LessOrEqual(t, len(strokes[0].Points), 102, "at most one point per pixel column")
}

func TestBars(t *testing.T) {
	rec := canvas.NewRecorder(101, 41)
	sc := scene([]float64{1, 2, 3, 4, 5}, 1)
	st := series.DefaultStyle()
	st.Kind = series.Bar
	st.Line = series.SolidLine{Color: blue}
	series.Draw(rec, sc, st)

	fills := rec.Fills()
	strokes := rec.Strokes()
	require.Len(t, fills, 4, "one bar per sample after the first")
	require.Len(t, strokes, 4)
	assert.Zero(t, rec.Count(canvas.OpArc), "bars have no endpoint")

	// xStep 25.125, gap 2*1*5/4 = 2.5 except on the last slot.
	assert.Equal(t, []canvas.Point{{X: 0, Y: 40}, {X: 0, Y: 30}, {X: 23, Y: 30}, {X: 23, Y: 40}}, fills[0].Points)
	assert.Equal(t, []canvas.Point{{X: 75, Y: 40}, {X: 75, Y: 0}, {X: 101, Y: 0}, {X: 101, Y: 40}}, fills[3].Points)
	assert.False(t, strokes[0].Closed, "outline is open along the reference edge")
	for _, s := range strokes {
		assert.Equal(t, blue, s.Paint.Color)
	}
}

func TestBarsNoGapWhenNarrow(t *testing.T) {
	values := make([]float64, 60)
	for i := range values {
		values[i] = float64(i)
	}
	rec := canvas.NewRecorder(101, 41)
	st := series.DefaultStyle()
	st.Kind = series.Bar
	st.LineWidth = 1
	series.Draw(rec, scene(values, 0), st)

	fills := rec.Fills()
	require.NotEmpty(t, fills)
	// xStep ~1.7 < 2*lineWidth: bars touch.
	first := fills[0].Points
	second := fills[1].Points
	assert.Equal(t, first[2].X, second[0].X)
}

func TestBarsAboveBelowOutline(t *testing.T) {
	rec := canvas.NewRecorder(101, 41)
	sc := scene([]float64{0, 4, -4, 2}, 0)
	st := series.DefaultStyle()
	st.Kind = series.Bar
	st.Line = series.AboveBelowLine{Above: green, Below: red}
	series.Draw(rec, sc, st)

	strokes := rec.Strokes()
	require.Len(t, strokes, 3)
	assert.Equal(t, green, strokes[0].Paint.Color)
	assert.Equal(t, red, strokes[1].Paint.Color)
	assert.Equal(t, green, strokes[2].Paint.Color)
}

func TestFillPaint(t *testing.T) {
	p := series.FillPaint(series.SolidFill{Color: red}, 10, 40)
	assert.False(t, p.IsGradient())
	assert.Equal(t, red, p.Color)

	p = series.FillPaint(series.AboveBelowFill{Above: green, Below: red}, 10, 40)
	require.True(t, p.IsGradient())
	g := p.Gradient
	require.Len(t, g.Stops, 5)
	assert.InDelta(t, 40.0, g.Y1, 1e-12)
	assert.InDelta(t, 0.25, g.Stops[2].Offset, 1e-12)
	assert.Equal(t, canvas.Transparent, g.Stops[2].Color)
	assert.Equal(t, green, p.At(0, 5))
	assert.Equal(t, red, p.At(0, 30))

	p = series.FillPaint(series.GradientFill{Above: green, Below: red}, 20, 40)
	g = p.Gradient
	require.Len(t, g.Stops, 4)
	assert.Equal(t, green, g.Stops[0].Color)
	assert.Equal(t, green.WithAlpha(0), g.Stops[1].Color)
	assert.Equal(t, red.WithAlpha(0), g.Stops[2].Color)
	assert.Equal(t, red, g.Stops[3].Color)
	assert.InDelta(t, 0.5, p.At(0, 10).A, 1e-9, "fades toward the reference line")
}

func TestFillPaintClampsOffset(t *testing.T) {
	p := series.FillPaint(series.GradientFill{Above: green, Below: red}, -50, 40)
	assert.InDelta(t, 0.0001, p.Gradient.Stops[1].Offset, 1e-12)

	p = series.FillPaint(series.GradientFill{Above: green, Below: red}, 500, 40)
	assert.InDelta(t, 0.9999, p.Gradient.Stops[1].Offset, 1e-12)
}

func TestSchemeName(t *testing.T) {
	assert.Equal(t, "solid", series.SchemeName(series.SolidLine{}))
	assert.Equal(t, "abovebelow", series.SchemeName(series.AboveBelowFill{}))
	assert.Equal(t, "firstlastdiff", series.SchemeName(series.TrendLine{}))
	assert.Equal(t, "gradient", series.SchemeName(series.GradientFill{}))
}
