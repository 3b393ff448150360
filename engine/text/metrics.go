package text

import (
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
)

// Metrics are font-wide metrics in whole pixels. Descent is negative for
// fonts reaching below the baseline.
type Metrics struct {
	Ascent  int
	Descent int
	Height  int // distance between baselines
	XHeight int
}

// Decoration is a set of text decoration lines.
type Decoration uint8

// Text decorations, as in CSS property text-decoration-line.
const (
	DecorationUnderline Decoration = 1 << iota
	DecorationStrikeout
	DecorationOverline
	DecorationNone Decoration = 0
)

func (d Decoration) String() string {
	if d == DecorationNone {
		return "none"
	}
	var names []string
	if d&DecorationUnderline != 0 {
		names = append(names, "underline")
	}
	if d&DecorationOverline != 0 {
		names = append(names, "overline")
	}
	if d&DecorationStrikeout != 0 {
		names = append(names, "line-through")
	}
	return strings.Join(names, " ")
}

// ParseDecoration interprets the value of CSS property text-decoration(-line).
// Unknown keywords (colors, styles) are ignored.
func ParseDecoration(s string) Decoration {
	var d Decoration
	for _, word := range strings.Fields(strings.ToLower(s)) {
		switch word {
		case "underline":
			d |= DecorationUnderline
		case "line-through":
			d |= DecorationStrikeout
		case "overline":
			d |= DecorationOverline
		}
	}
	return d
}

// DecorationConfig holds the placement of decoration lines. Offsets are
// measured from the baseline, positive values pointing downwards; all values
// are in pixels, except for StrikeoutPosition.
type DecorationConfig struct {
	UnderlineOffset    float64
	UnderlineThickness float64
	StrikeoutPosition  float64 // fraction of the x-height above the baseline
	StrikeoutThickness float64
	OverlineThickness  float64
}

// DefaultDecorationConfig returns placement values which look right for
// common text fonts at screen sizes.
func DefaultDecorationConfig() DecorationConfig {
	return DecorationConfig{
		UnderlineOffset:    3,
		UnderlineThickness: 1.5,
		StrikeoutPosition:  0.5,
		StrikeoutThickness: 1.5,
		OverlineThickness:  1,
	}
}

// DecorationConfigFrom reads placement values from a configuration, keys
// font.underline-offset, font.underline-thickness and font.strikeout-position.
// Values missing or not parsable as numbers keep their defaults.
func DecorationConfigFrom(conf schuko.Configuration) DecorationConfig {
	dc := DefaultDecorationConfig()
	if conf == nil {
		return dc
	}
	get := func(key string, v *float64) {
		if !conf.IsSet(key) {
			return
		}
		if f, ok := toFloat(conf.GetString(key)); ok {
			*v = f
		} else {
			tracer().Errorf("configuration key %s is not a number: %q", key, conf.GetString(key))
		}
	}
	get("font.underline-offset", &dc.UnderlineOffset)
	get("font.underline-thickness", &dc.UnderlineThickness)
	get("font.strikeout-position", &dc.StrikeoutPosition)
	dc.StrikeoutThickness = dc.UnderlineThickness
	return dc
}

// DecorationLine is a horizontal line relative to the baseline of text:
// Center is the offset of its center line, positive downwards.
type DecorationLine struct {
	Center    float64
	Thickness float64
}

// Lines returns the decoration lines for text set in a font with metrics m.
func (dc DecorationConfig) Lines(d Decoration, m Metrics) []DecorationLine {
	var lines []DecorationLine
	if d&DecorationUnderline != 0 {
		lines = append(lines, DecorationLine{Center: dc.UnderlineOffset, Thickness: dc.UnderlineThickness})
	}
	if d&DecorationStrikeout != 0 {
		lines = append(lines, DecorationLine{
			Center:    -float64(m.XHeight) * dc.StrikeoutPosition,
			Thickness: dc.StrikeoutThickness,
		})
	}
	if d&DecorationOverline != 0 {
		lines = append(lines, DecorationLine{
			Center:    -float64(m.Ascent) + dc.OverlineThickness/2,
			Thickness: dc.OverlineThickness,
		})
	}
	return lines
}

func toFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}
