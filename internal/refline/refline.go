// Package refline resolves the reference line policy to a pixel row.
package refline

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bamsammich/sparkline/internal/geom"
)

// Policy selects where the reference line sits.
type Policy int

const (
	None Policy = iota
	Average
	Median
	Middle
	Custom
	FirstSample
)

var policyNames = [...]string{
	None:        "none",
	Average:     "average",
	Median:      "median",
	Middle:      "middle",
	Custom:      "custom",
	FirstSample: "firstdatapoint",
}

func (p Policy) String() string {
	if p >= 0 && int(p) < len(policyNames) {
		return policyNames[p]
	}
	return "unknown"
}

// ParsePolicy maps the attribute vocabulary onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for p, n := range policyNames {
		if n == name {
			return Policy(p), nil
		}
	}
	return None, fmt.Errorf("unknown reference line type %q", s)
}

// Samples is the read side of a sample buffer.
type Samples interface {
	Count() int
	Sum() float64
	First() float64
	Values() []float64
}

// Input carries everything a resolution needs.
type Input struct {
	Policy        Policy
	Custom        float64
	Samples       Samples
	Mapper        geom.Mapper
	SurfaceHeight float64
	// LineWidth is the reference line stroke width.
	LineWidth float64
}

// Offscreen returns the row used when a data-driven policy has no data:
// just above the top edge, so the stroke is not visible.
func Offscreen(lineWidth float64) float64 {
	return -lineWidth - 1
}

// Resolve returns the y coordinate of the reference line.
func Resolve(in Input) float64 {
	count := 0
	if in.Samples != nil {
		count = in.Samples.Count()
	}

	switch in.Policy {
	case None:
		return in.SurfaceHeight
	case Average:
		if count == 0 {
			return Offscreen(in.LineWidth)
		}
		return in.Mapper.ToY(in.Samples.Sum() / float64(count))
	case Median:
		if count == 0 {
			return Offscreen(in.LineWidth)
		}
		return in.Mapper.ToY(MedianOf(in.Samples.Values()))
	case Middle:
		return (in.SurfaceHeight - in.LineWidth) / 2
	case Custom:
		return in.Mapper.ToY(in.Custom)
	case FirstSample:
		if count == 0 {
			return Offscreen(in.LineWidth)
		}
		return in.Mapper.ToY(in.Samples.First())
	default:
		return Offscreen(in.LineWidth)
	}
}

// MedianOf returns the median of values without modifying them. An even
// count averages the two middle values; an empty slice yields 0.
func MedianOf(values []float64) float64 {
	switch len(values) {
	case 0:
		return 0
	case 1:
		return values[0]
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
