// Package output renders a chart to the supported file and terminal
// formats.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bamsammich/sparkline/internal/canvas/raster"
	"github.com/bamsammich/sparkline/internal/canvas/vector"
	"github.com/bamsammich/sparkline/internal/sparkline"
	"github.com/bamsammich/sparkline/internal/ui"
)

// Format identifies an output encoding.
type Format int

const (
	PNG Format = iota + 1
	SVG
	Text // unicode block characters, one per slot
	Term // ANSI half blocks
)

var formatNames = [...]string{
	PNG:  "png",
	SVG:  "svg",
	Text: "text",
	Term: "term",
}

func (f Format) String() string {
	if f > 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "unknown"
}

// ParseFormat parses a format name. "txt" is accepted for text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	case "text", "txt":
		return Text, nil
	case "term", "terminal":
		return Term, nil
	default:
		return 0, fmt.Errorf("unknown format %q (use png, svg, text or term)", s)
	}
}

// FormatFor picks the format for path: explicit wins, then the file
// extension, then fallback.
func FormatFor(path, explicit string, fallback Format) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" && path != "-" {
		return ParseFormat(ext)
	}
	return fallback, nil
}

// Size is the host size of an output. For Term it is in terminal cells; for
// the image formats it is in logical pixels multiplied by Scale.
type Size struct {
	Width  float64
	Height float64
	Scale  float64
}

// Write renders c in format f to w. The chart's own surface is restored
// afterwards.
func Write(w io.Writer, c *sparkline.Chart, f Format, sz Size) error {
	prev := c.Surface()
	defer c.Attach(prev)

	scale := sz.Scale
	if !(scale > 0) {
		scale = 1
	}

	switch f {
	case PNG:
		s := raster.New(0, 0)
		c.Attach(s)
		c.Resize(sz.Width, sz.Height, scale)
		return s.EncodePNG(w)
	case SVG:
		s := vector.New(0, 0)
		c.Attach(s)
		c.Resize(sz.Width, sz.Height, scale)
		return s.Render(w)
	case Text:
		_, err := fmt.Fprintln(w, ui.SparklineBounds(c.Values(), c.Capacity(), c.Bounds()))
		return err
	case Term:
		s := raster.New(0, 0)
		c.Attach(s)
		c.Resize(sz.Width, sz.Height*2, 1)
		_, err := fmt.Fprintln(w, ui.HalfBlocks(s.Image()))
		return err
	default:
		return fmt.Errorf("unsupported format %v", f)
	}
}

// WriteFile renders c to path through a temporary file in the same
// directory, so readers never observe a partial image.
func WriteFile(path string, c *sparkline.Chart, f Format, sz Size) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.sparkline-tmp", base, uuid.New().String()[:8]))

	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create tmp %s: %w", tmpPath, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err = Write(tmp, c, f, sz); err != nil {
		tmp.Close()
		return fmt.Errorf("render %s: %w", f, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close tmp %s: %w", tmpPath, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename %s -> %s: %w", tmpPath, path, err)
	}
	return nil
}
