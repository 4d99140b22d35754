package ui

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// minAlpha is the coverage below which a pixel is left to the terminal
// background.
const minAlpha = 0x20

// HalfBlocks renders img as text, two pixel rows per line. Each cell is an
// upper half block coloured with the top pixel over the bottom pixel;
// uncovered pixels keep the terminal's own colours.
func HalfBlocks(img image.Image) string {
	r := img.Bounds()
	var b strings.Builder
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		if y > r.Min.Y {
			b.WriteByte('\n')
		}
		for x := r.Min.X; x < r.Max.X; x++ {
			top, topOK := pixel(img.At(x, y))
			var bottom colorful.Color
			bottomOK := false
			if y+1 < r.Max.Y {
				bottom, bottomOK = pixel(img.At(x, y+1))
			}
			b.WriteString(cell(top, topOK, bottom, bottomOK))
		}
	}
	return b.String()
}

func pixel(c color.Color) (colorful.Color, bool) {
	_, _, _, a := c.RGBA()
	if a>>8 < minAlpha {
		return colorful.Color{}, false
	}
	cf, ok := colorful.MakeColor(c)
	return cf, ok
}

func cell(top colorful.Color, topOK bool, bottom colorful.Color, bottomOK bool) string {
	switch {
	case topOK && bottomOK:
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(top.Hex())).
			Background(lipgloss.Color(bottom.Hex())).
			Render("▀")
	case topOK:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(top.Hex())).Render("▀")
	case bottomOK:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(bottom.Hex())).Render("▄")
	default:
		return " "
	}
}
