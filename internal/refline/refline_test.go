package refline_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/sparkline/internal/buffer"
	"github.com/bamsammich/sparkline/internal/geom"
	"github.com/bamsammich/sparkline/internal/refline"
)

func mapperFor(b *buffer.Buffer) geom.Mapper {
	return geom.NewMapper(geom.Frame{
		SurfaceWidth:  101,
		SurfaceHeight: 51,
		LineWidth:     1,
		Bounds:        geom.ResolveBounds(b, geom.Overrides{}),
		Slots:         b.Capacity(),
	})
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want refline.Policy
	}{
		{"none", refline.None},
		{" Average ", refline.Average},
		{"MEDIAN", refline.Median},
		{"middle", refline.Middle},
		{"custom", refline.Custom},
		{"firstdatapoint", refline.FirstSample},
	}
	for _, tt := range tests {
		got, err := refline.ParsePolicy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.want.String(), got.String())
	}

	_, err := refline.ParsePolicy("mean")
	require.Error(t, err)
}

func TestMedianOf(t *testing.T) {
	assert.Zero(t, refline.MedianOf(nil))
	assert.InDelta(t, 4.0, refline.MedianOf([]float64{4}), 1e-12)
	assert.InDelta(t, 3.0, refline.MedianOf([]float64{9, 1, 3}), 1e-12)
	assert.InDelta(t, 2.5, refline.MedianOf([]float64{4, 1, 3, 2}), 1e-12)

	in := []float64{5, 2, 8}
	refline.MedianOf(in)
	assert.Equal(t, []float64{5, 2, 8}, in, "input must not be reordered")
}

func TestMedianOfOddMatchesSortedMiddle(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 50; i++ {
		n := 2*r.Intn(20) + 1
		values := make([]float64, n)
		for i := range values {
			values[i] = r.NormFloat64() * 100
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		assert.InDelta(t, sorted[n/2], refline.MedianOf(values), 1e-12)
	}
}

func TestMedianAfterPushAndResize(t *testing.T) {
	b := buffer.New(4)
	for _, v := range []float64{7, 1, 9, 4, 6} {
		b.Push(v)
	}
	b.SetCapacity(3) // keeps 9, 4, 6
	b.Push(2)        // 4, 6, 2
	assert.InDelta(t, 4.0, refline.MedianOf(b.Values()), 1e-12)

	b.SetCapacity(6)
	b.Push(10) // 4, 6, 2, 10
	assert.InDelta(t, 5.0, refline.MedianOf(b.Values()), 1e-12)
}

func TestResolvePolicies(t *testing.T) {
	b := buffer.New(5)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		b.Push(v)
	}
	m := mapperFor(b)
	in := refline.Input{Samples: b, Mapper: m, SurfaceHeight: 51, LineWidth: 1}

	tests := []struct {
		policy refline.Policy
		custom float64
		want   float64
	}{
		{refline.None, 0, 51},
		{refline.Average, 0, m.ToY(3)},
		{refline.Median, 0, m.ToY(3)},
		{refline.Middle, 0, 25},
		{refline.Custom, 4.5, m.ToY(4.5)},
		{refline.FirstSample, 0, m.ToY(1)},
	}
	for _, tt := range tests {
		t.Run(tt.policy.String(), func(t *testing.T) {
			in.Policy = tt.policy
			in.Custom = tt.custom
			assert.InDelta(t, tt.want, refline.Resolve(in), 1e-9)
		})
	}
}

func TestResolveMiddleIgnoresData(t *testing.T) {
	for _, data := range [][]float64{{1, 2}, {-50, 50, 0}, nil} {
		b := buffer.FromValues(data)
		got := refline.Resolve(refline.Input{
			Policy:        refline.Middle,
			Samples:       b,
			Mapper:        mapperFor(b),
			SurfaceHeight: 40,
			LineWidth:     2,
		})
		assert.InDelta(t, 19.0, got, 1e-12)
	}
}

func TestResolveEmptyFallsOffscreen(t *testing.T) {
	b := buffer.New(3)
	for _, p := range []refline.Policy{refline.Average, refline.Median, refline.FirstSample} {
		got := refline.Resolve(refline.Input{
			Policy:        p,
			Samples:       b,
			Mapper:        mapperFor(b),
			SurfaceHeight: 50,
			LineWidth:     2,
		})
		assert.InDelta(t, -3.0, got, 1e-12, p.String())
	}

	got := refline.Resolve(refline.Input{Policy: refline.Average, SurfaceHeight: 50, LineWidth: 1})
	assert.InDelta(t, -2.0, got, 1e-12, "nil samples")
}
