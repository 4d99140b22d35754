package config

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"github.com/bamsammich/sparkline/internal/buffer"
	"github.com/bamsammich/sparkline/internal/canvas"
	"github.com/bamsammich/sparkline/internal/refline"
	"github.com/bamsammich/sparkline/internal/series"
	"github.com/bamsammich/sparkline/internal/sparkline"
	"github.com/bamsammich/sparkline/internal/surface"
)

var (
	// ErrUnknownAttribute reports an attribute name the parser does not know.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrInvalidValue reports an attribute whose value could not be parsed.
	// The attribute keeps its default.
	ErrInvalidValue = errors.New("invalid attribute value")
)

// Attribute names, matched case-insensitively.
const (
	AttrType           = "type"
	AttrLowerBound     = "lowerbound"
	AttrUpperBound     = "upperbound"
	AttrCapAbove       = "capabove"
	AttrCapBelow       = "capbelow"
	AttrRefLineType    = "reflinetype"
	AttrRefLineYPos    = "reflineypos"
	AttrRefLineCol     = "reflinecol"
	AttrRefLineWidth   = "reflinewidth"
	AttrBackgroundCol  = "bckgcol"
	AttrEndpointCol    = "endpointcol"
	AttrEndpointRadius = "endpointradius"
	AttrLineWidth      = "linewidth"
	AttrLineType       = "linetype"
	AttrLineCol        = "linecol"
	AttrLineAboveCol   = "lineabovecol"
	AttrLineBelowCol   = "linebelowcol"
	AttrFillType       = "filltype"
	AttrFillCol        = "fillcol"
	AttrFillAboveCol   = "fillabovecol"
	AttrFillBelowCol   = "fillbelowcol"
	AttrData           = "data"
	AttrCapacity       = "capacity"
	AttrEvictPolicy    = "evictpolicy"
)

// Attributes lists every accepted attribute name.
var Attributes = []string{
	AttrType, AttrLowerBound, AttrUpperBound, AttrCapAbove, AttrCapBelow,
	AttrRefLineType, AttrRefLineYPos, AttrRefLineCol, AttrRefLineWidth,
	AttrBackgroundCol, AttrEndpointCol, AttrEndpointRadius,
	AttrLineWidth, AttrLineType, AttrLineCol, AttrLineAboveCol, AttrLineBelowCol,
	AttrFillType, AttrFillCol, AttrFillAboveCol, AttrFillBelowCol,
	AttrData, AttrCapacity, AttrEvictPolicy,
}

// Options is the typed result of parsing chart attributes.
type Options struct {
	Render surface.Config
	// Capacity is the buffer size; 0 means "unset".
	Capacity int
	Evict    buffer.EvictPolicy
	Data     []float64
}

// DefaultOptions returns the attribute defaults.
func DefaultOptions() Options {
	cfg := surface.DefaultConfig()
	cfg.Background = canvas.White
	return Options{Render: cfg}
}

// attrSet collects the raw values of the multi-attribute settings.
type attrSet struct {
	lineType, fillType   string
	lineCol, lineAbove   canvas.Color
	lineBelow            canvas.Color
	fillCol              canvas.Color
	fillAbove, fillBelow canvas.Color
}

// Parse converts attribute strings into Options. Every malformed value
// falls back to its default and yields one error; the returned Options are
// always usable.
func Parse(attrs map[string]string) (Options, []error) {
	opts := DefaultOptions()
	r := &opts.Render
	set := attrSet{
		lineType:  "solid",
		fillType:  "solid",
		lineCol:   canvas.Black,
		lineAbove: canvas.Black,
		lineBelow: canvas.Black,
	}

	var errs []error
	bad := func(key, value string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w: %v", key, value, ErrInvalidValue, err))
		}
	}

	normalised := make(map[string]string, len(attrs))
	for k, v := range attrs {
		normalised[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}

	keys := make([]string, 0, len(normalised))
	for k := range normalised {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, key := range keys {
		v := normalised[key]
		var err error
		switch key {
		case AttrType:
			r.Style.Kind, err = series.ParseKind(v)
		case AttrLowerBound:
			if v != "" {
				r.Bounds.Lower, err = parseFinite(v)
				r.Bounds.UseLower = err == nil
			}
		case AttrUpperBound:
			if v != "" {
				r.Bounds.Upper, err = parseFinite(v)
				r.Bounds.UseUpper = err == nil
			}
		case AttrCapAbove:
			r.CapAbove, err = strconv.ParseBool(v)
		case AttrCapBelow:
			r.CapBelow, err = strconv.ParseBool(v)
		case AttrRefLineType:
			r.RefLine.Policy, err = refline.ParsePolicy(v)
		case AttrRefLineYPos:
			r.RefLine.Custom, err = parseFinite(v)
		case AttrRefLineCol:
			err = parseColorInto(v, &r.RefLine.Color)
		case AttrRefLineWidth:
			err = parseWidth(v, &r.RefLine.Width)
		case AttrBackgroundCol:
			err = parseColorInto(v, &r.Background)
		case AttrEndpointCol:
			err = parseColorInto(v, &r.Style.Endpoint.Color)
		case AttrEndpointRadius:
			var f float64
			if f, err = parseFinite(v); err == nil {
				r.Style.Endpoint.Radius = max(0, f)
			}
		case AttrLineWidth:
			err = parseWidth(v, &r.Style.LineWidth)
		case AttrLineType:
			set.lineType, err = oneOf(v, "solid", "abovebelow", "firstlastdiff")
		case AttrLineCol:
			err = parseColorInto(v, &set.lineCol)
		case AttrLineAboveCol:
			err = parseColorInto(v, &set.lineAbove)
		case AttrLineBelowCol:
			err = parseColorInto(v, &set.lineBelow)
		case AttrFillType:
			set.fillType, err = oneOf(v, "solid", "abovebelow", "gradient")
		case AttrFillCol:
			err = parseColorInto(v, &set.fillCol)
		case AttrFillAboveCol:
			err = parseColorInto(v, &set.fillAbove)
		case AttrFillBelowCol:
			err = parseColorInto(v, &set.fillBelow)
		case AttrData:
			var dataErrs []error
			opts.Data, dataErrs = ParseNumbers(v)
			err = errors.Join(dataErrs...)
		case AttrCapacity:
			var n int
			if n, err = strconv.Atoi(v); err == nil && n < 0 {
				err = fmt.Errorf("negative capacity %d", n)
			}
			if err == nil {
				opts.Capacity = n
			}
		case AttrEvictPolicy:
			opts.Evict, err = ParseEvictPolicy(v)
		default:
			errs = append(errs, fmt.Errorf("%q: %w", key, ErrUnknownAttribute))
			continue
		}
		bad(key, v, err)
	}

	switch set.lineType {
	case "abovebelow":
		r.Style.Line = series.AboveBelowLine{Above: set.lineAbove, Below: set.lineBelow}
	case "firstlastdiff":
		r.Style.Line = series.TrendLine{Up: set.lineAbove, Down: set.lineBelow}
	default:
		r.Style.Line = series.SolidLine{Color: set.lineCol}
	}
	switch set.fillType {
	case "abovebelow":
		r.Style.Fill = series.AboveBelowFill{Above: set.fillAbove, Below: set.fillBelow}
	case "gradient":
		r.Style.Fill = series.GradientFill{Above: set.fillAbove, Below: set.fillBelow}
	default:
		r.Style.Fill = series.SolidFill{Color: set.fillCol}
	}
	return opts, errs
}

// ParseNumbers parses a list of numbers separated by commas, whitespace or
// brackets. Tokens that are not finite numbers are skipped and reported.
func ParseNumbers(s string) ([]float64, []error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '[' || r == ']' || unicode.IsSpace(r)
	})
	out := make([]float64, 0, len(fields))
	var errs []error
	for _, f := range fields {
		v, err := parseFinite(f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, v)
	}
	return out, errs
}

// ParseEvictPolicy parses "widen" or "rescan".
func ParseEvictPolicy(s string) (buffer.EvictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case buffer.WidenOnly.String():
		return buffer.WidenOnly, nil
	case buffer.RescanOnEvict.String():
		return buffer.RescanOnEvict, nil
	default:
		return buffer.WidenOnly, fmt.Errorf("unknown evict policy %q", s)
	}
}

func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not finite", s)
	}
	return f, nil
}

func parseWidth(s string, dst *float64) error {
	f, err := parseFinite(s)
	if err != nil {
		return err
	}
	*dst = max(sparkline.MinLineWidth, f)
	return nil
}

func parseColorInto(s string, dst *canvas.Color) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	*dst = c
	return nil
}

func oneOf(s string, allowed ...string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if slices.Contains(allowed, v) {
		return v, nil
	}
	return allowed[0], fmt.Errorf("want one of %s", strings.Join(allowed, ", "))
}
