package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatRate formats a samples-per-second rate as a human-readable string.
func FormatRate(perSec float64) string {
	if !(perSec > 0) {
		return "0/s"
	}
	units := []string{"/s", "k/s", "M/s", "G/s"}
	val := perSec
	for _, u := range units {
		if val < 1000 {
			if val < 10 {
				return fmt.Sprintf("%.2f%s", val, u)
			}
			if val < 100 {
				return fmt.Sprintf("%.1f%s", val, u)
			}
			return fmt.Sprintf("%.0f%s", val, u)
		}
		val /= 1000
	}
	return fmt.Sprintf("%.1fT/s", val)
}

// FormatValue formats a sample value compactly: four significant digits,
// with a k/M/G suffix for large magnitudes.
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 0):
		if v > 0 {
			return "+Inf"
		}
		return "-Inf"
	}
	abs := math.Abs(v)
	for _, s := range []struct {
		div    float64
		suffix string
	}{{1e9, "G"}, {1e6, "M"}, {1e3, "k"}} {
		if abs >= s.div {
			return strconv.FormatFloat(v/s.div, 'g', 4, 64) + s.suffix
		}
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// FormatCount formats an integer with comma separators.
func FormatCount(n int64) string {
	if n < 0 {
		return "-" + FormatCount(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ProgressBar renders a fill gauge of the given width using ▪/□ characters.
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	pct = max(0, min(1, pct))
	filled := min(width, int(pct*float64(width)))

	var b strings.Builder
	for i := 0; i < filled; i++ {
		b.WriteRune('\u25aa') // ▪ (filled)
	}
	for i := 0; i < width-filled; i++ {
		b.WriteRune('\u25a1') // □ (empty)
	}
	return b.String()
}

// FormatDuration formats elapsed time concisely.
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
