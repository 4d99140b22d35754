package ui

import (
	"math"

	"github.com/bamsammich/sparkline/internal/geom"
)

var blocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a slice of float64 values as Unicode block characters.
// The output is exactly width runes wide. Values are scaled between the
// smallest and largest sample shown.
func Sparkline(data []float64, width int) string {
	if width <= 0 {
		return ""
	}
	shown := data
	if len(shown) > width {
		shown = shown[len(shown)-width:]
	}
	b := geom.Bounds{Lower: math.Inf(1), Upper: math.Inf(-1)}
	for _, v := range shown {
		b.Lower = min(b.Lower, v)
		b.Upper = max(b.Upper, v)
	}
	return SparklineBounds(data, width, b)
}

// SparklineBounds renders data against a fixed value range. The last width
// samples are drawn; shorter input is padded on the left with spaces.
// Values outside the range are clipped to the lowest or highest block and an
// empty or inverted range draws every sample at full height.
func SparklineBounds(data []float64, width int, b geom.Bounds) string {
	if width <= 0 {
		return ""
	}

	out := make([]rune, width)
	offset := 0
	if len(data) >= width {
		data = data[len(data)-width:]
	} else {
		offset = width - len(data)
		for i := 0; i < offset; i++ {
			out[i] = ' '
		}
	}

	span := b.Upper - b.Lower
	top := len(blocks) - 1
	for i, v := range data {
		if !(span > 0) {
			out[offset+i] = blocks[top]
			continue
		}
		idx := int(math.Round((v - b.Lower) / span * float64(top)))
		out[offset+i] = blocks[max(0, min(top, idx))]
	}
	return string(out)
}
