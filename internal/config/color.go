package config

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/bamsammich/sparkline/internal/canvas"
)

// ParseColor parses the colour forms accepted in attributes: rgba(r, g, b, a),
// rgb(r, g, b), #rgb, #rrggbb, #rrggbbaa and "transparent". Channels are
// clamped to their legal ranges.
func ParseColor(s string) (canvas.Color, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "transparent":
		return canvas.Transparent, nil
	case strings.HasPrefix(v, "rgba(") || strings.HasPrefix(v, "rgb("):
		return parseFunctional(v)
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	default:
		return canvas.Color{}, fmt.Errorf("unsupported colour %q", s)
	}
}

func parseFunctional(v string) (canvas.Color, error) {
	open := strings.IndexByte(v, '(')
	if !strings.HasSuffix(v, ")") {
		return canvas.Color{}, fmt.Errorf("unterminated colour %q", v)
	}
	name := v[:open]
	parts := strings.Split(v[open+1:len(v)-1], ",")
	want := 4
	if name == "rgb" {
		want = 3
	}
	if len(parts) != want {
		return canvas.Color{}, fmt.Errorf("colour %q: want %d channels, got %d", v, want, len(parts))
	}

	ch := make([]float64, 4)
	ch[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return canvas.Color{}, fmt.Errorf("colour %q: %w", v, err)
		}
		ch[i] = f
	}
	return canvas.RGBA(ch[0], ch[1], ch[2], ch[3]).Clamp(), nil
}

func parseHex(v string) (canvas.Color, error) {
	alpha := 1.0
	if len(v) == 9 {
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return canvas.Color{}, fmt.Errorf("colour %q: %w", v, err)
		}
		alpha = float64(a) / 255
		v = v[:7]
	}
	c, err := colorful.Hex(v)
	if err != nil {
		return canvas.Color{}, fmt.Errorf("colour %q: %w", v, err)
	}
	r, g, b := c.RGB255()
	return canvas.RGBA(float64(r), float64(g), float64(b), alpha), nil
}

// HexColor formats c as #rrggbb, dropping alpha. Terminal renderers use it.
func HexColor(c canvas.Color) string {
	c = c.Clamp()
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}.Hex()
}
