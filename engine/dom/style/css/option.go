package css

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/npillmayer/htmlpix/core/option"
	"github.com/npillmayer/htmlpix/engine/dom/style"
)

// PropertyType is a helper type for special values of properties, e.g.:
//
//     auto
//     initial
//     inherit
//
type PropertyType int

// Auto, Inherit and Initial are constant values for options-matching.
// Use with
//     option.Of{
//          css.Auto: …   // will match a CSS property option-type with value "auto"
//     }
const (
	Auto       PropertyType = 1 // for option matching
	Inherit    PropertyType = 2 // for option matching
	Initial    PropertyType = 3 // for option matching
	FontScaled PropertyType = 4 // for option matching: dimension is font-dependent
	ViewScaled PropertyType = 5 // for option matching: dimension is viewport-dependent
	Percentage PropertyType = 6 // for option matching: dimension is a percentage
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	dimenNumber   uint32 = 0x0005 // unit-less, e.g. line-height: 1.2
	keywordMask   uint32 = 0x000f

	dimenEM      uint32 = 0x0100
	dimenEX      uint32 = 0x0200
	dimenCH      uint32 = 0x0300
	dimenREM     uint32 = 0x0400
	dimenVW      uint32 = 0x0500
	dimenVH      uint32 = 0x0600
	dimenVMIN    uint32 = 0x0700
	dimenVMAX    uint32 = 0x0800
	dimenPRCNT   uint32 = 0x0900
	relativeMask uint32 = 0x0f00
)

// --- DimenT-----------------------------------------------------------------

// DimenT is an option type for CSS dimensions. Absolute dimensions are kept
// in CSS pixels (1/96 inch), relative ones in their unit.
type DimenT struct {
	d     float64
	flags uint32
}

// SomeDimen creates an optional dimen with an initial value of x pixels.
func SomeDimen(x float64) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Dimen creates an optional dimen without an initial value.
func Dimen() DimenT {
	return DimenT{d: 0, flags: dimenNone}
}

// Match is part of interface option.Type.
func (o DimenT) Match(choices interface{}) (value interface{}, err error) {
	return option.Match(o, choices)
}

// Equals is part of interface option.Type.
func (o DimenT) Equals(other interface{}) bool {
	tracer().Debugf("Dimen EQUALS %v ? %v", o, other)
	switch i := other.(type) {
	case DimenT:
		return o.d == i.d && o.flags == i.flags
	case float64:
		return o.IsAbsolute() && o.d == i
	case int:
		return o.IsAbsolute() && o.d == float64(i)
	case PropertyType:
		rel := o.flags & relativeMask
		switch i {
		case Auto:
			return o.flags == dimenAuto
		case Initial:
			return o.flags == dimenInitial
		case Inherit:
			return o.flags == dimenInherit
		case FontScaled:
			return rel == dimenEM || rel == dimenEX || rel == dimenREM || rel == dimenCH
		case ViewScaled:
			return rel == dimenVW || rel == dimenVH || rel == dimenVMIN || rel == dimenVMAX
		case Percentage:
			return rel == dimenPRCNT
		}
	case string:
		switch i {
		case "%":
			return o.IsRelative()
		}
	}
	return false
}

// Unwrap returns the underlying value of o, in pixels for absolute
// dimensions and in the dimension's unit for relative ones.
func (o DimenT) Unwrap() float64 {
	return o.d
}

// IsNone returns true if o is unset.
func (o DimenT) IsNone() bool {
	return o.flags == dimenNone
}

// IsRelative returns true if o represents a valid relative dimension (`%`, `em`, etc.).
func (o DimenT) IsRelative() bool {
	return o.flags&relativeMask > 0
}

// IsAbsolute returns true if o represents a valid absolute dimension.
func (o DimenT) IsAbsolute() bool {
	return o.flags == dimenAbsolute
}

// IsPercent returns true if o is a percentage.
func (o DimenT) IsPercent() bool {
	return o.flags&relativeMask == dimenPRCNT
}

// IsNumber is true for unit-less dimensions.
func (o DimenT) IsNumber() bool {
	return o.flags == dimenNumber
}

func (o DimenT) String() string {
	if o.IsNone() {
		return "DimenT.None"
	}
	switch o.flags & keywordMask {
	case dimenAuto:
		return "auto"
	case dimenInitial:
		return "initial"
	case dimenInherit:
		return "inherit"
	case dimenNumber:
		return strconv.FormatFloat(o.d, 'g', -1, 64)
	}
	if o.IsRelative() {
		if unit, ok := relUnitMap[o.flags&relativeMask]; ok {
			return fmt.Sprintf("%g%s", o.d, unit)
		}
	}
	return fmt.Sprintf("%gpx", o.d)
}

var relUnitMap map[uint32]string = map[uint32]string{
	dimenEM:    "em",
	dimenEX:    "ex",
	dimenCH:    "ch",
	dimenREM:   "rem",
	dimenVW:    "vw",
	dimenVH:    "vh",
	dimenVMIN:  "vmin",
	dimenVMAX:  "vmax",
	dimenPRCNT: "%",
}

var relUnitStringMap map[string]uint32 = map[string]uint32{
	"em":   dimenEM,
	"ex":   dimenEX,
	"ch":   dimenCH,
	"rem":  dimenREM,
	"vw":   dimenVW,
	"vh":   dimenVH,
	"vmin": dimenVMIN,
	"vmax": dimenVMAX,
	"%":    dimenPRCNT,
}

// pixels per absolute unit
var absUnitMap = map[string]float64{
	"px": 1,
	"pt": 96.0 / 72.0,
	"pc": 16,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 101.6,
}

// DimenOption returns an optional dimension type from a property string.
// It will never return an error, even with illegal input, but instead will then
// return an unset dimension.
func DimenOption(p style.Property) DimenT {
	switch strings.ToLower(strings.TrimSpace(string(p))) {
	case string(style.NullStyle):
		return Dimen()
	case "auto":
		return DimenT{flags: dimenAuto}
	case "initial":
		return DimenT{flags: dimenInitial}
	case "inherit":
		return DimenT{flags: dimenInherit}
	}
	d, err := ParseDimen(string(p))
	if err != nil {
		return Dimen()
	}
	return d
}

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]*\.?[0-9]+)(%|[a-zA-Z]{1,4})?$`)

// ParseDimen parses a string to return an optional dimension. Syntax is CSS Unit.
// Valid dimensions are
//
//     15px
//     80%
//     -3.3rem
//     1.2
//
func ParseDimen(s string) (DimenT, error) {
	d := dimenPattern.FindStringSubmatch(strings.TrimSpace(s))
	if len(d) < 2 {
		return Dimen(), errors.New("format error parsing dimension")
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil { // this cannot happen
		return Dimen(), errors.New("format error parsing dimension")
	}
	unit := strings.ToLower(d[2])
	if unit == "" {
		if n == 0 {
			return SomeDimen(0), nil
		}
		return DimenT{d: n, flags: dimenNumber}, nil
	}
	if scale, ok := absUnitMap[unit]; ok {
		return SomeDimen(n * scale), nil
	}
	if rel, ok := relUnitStringMap[unit]; ok {
		return DimenT{d: n, flags: rel}, nil
	}
	return Dimen(), fmt.Errorf("format error parsing dimension: unknown unit %q", d[2])
}

// Context holds the reference values needed to convert relative
// dimensions to pixels.
type Context struct {
	FontSize     float64 // em
	RootFontSize float64 // rem
	XHeight      float64 // ex, ch; defaults to half an em
	ViewportW    float64
	ViewportH    float64
	Percent      float64 // the value 100% refers to
}

// Px converts o to pixels. Unset dimensions and keywords yield false.
// Unit-less numbers are interpreted as multiples of the font size.
func (o DimenT) Px(ctx Context) (float64, bool) {
	if o.IsAbsolute() {
		return o.d, true
	}
	if o.IsNumber() {
		return o.d * ctx.FontSize, true
	}
	ex := ctx.XHeight
	if ex == 0 {
		ex = ctx.FontSize / 2
	}
	switch o.flags & relativeMask {
	case dimenEM:
		return o.d * ctx.FontSize, true
	case dimenREM:
		return o.d * ctx.RootFontSize, true
	case dimenEX, dimenCH:
		return o.d * ex, true
	case dimenVW:
		return o.d * ctx.ViewportW / 100, true
	case dimenVH:
		return o.d * ctx.ViewportH / 100, true
	case dimenVMIN:
		return o.d * math.Min(ctx.ViewportW, ctx.ViewportH) / 100, true
	case dimenVMAX:
		return o.d * math.Max(ctx.ViewportW, ctx.ViewportH) / 100, true
	case dimenPRCNT:
		return o.d * ctx.Percent / 100, true
	}
	return 0, false
}

// PxOr converts o to whole pixels, returning dflt if it has no pixel value.
func (o DimenT) PxOr(ctx Context, dflt int) int {
	px, ok := o.Px(ctx)
	if !ok {
		return dflt
	}
	return int(math.Round(px))
}

// MaxDimen returns the greater of two absolute dimensions. An unset
// dimension yields the other one.
func MaxDimen(d1, d2 DimenT) DimenT {
	max, _ := d1.Match(option.Maybe{
		option.None: d2,
		option.Some: option.Safe(d2.Match(option.Maybe{
			option.None: d1,
			option.Some: SomeDimen(math.Max(d1.Unwrap(), d2.Unwrap())),
		})),
	})
	return max.(DimenT)
}

// MinDimen returns the lesser of two absolute dimensions. An unset
// dimension yields the other one.
func MinDimen(d1, d2 DimenT) DimenT {
	min, _ := d1.Match(option.Maybe{
		option.None: d2,
		option.Some: option.Safe(d2.Match(option.Maybe{
			option.None: d1,
			option.Some: SomeDimen(math.Min(d1.Unwrap(), d2.Unwrap())),
		})),
	})
	return min.(DimenT)
}

// --- Font properties -------------------------------------------------------

var fontSizeKeywords = map[string]float64{
	"xx-small": 3.0 / 5.0,
	"x-small":  3.0 / 4.0,
	"small":    8.0 / 9.0,
	"medium":   1,
	"large":    6.0 / 5.0,
	"x-large":  3.0 / 2.0,
	"xx-large": 2,
}

// FontSize computes the font size in pixels from a font-size property.
// parent is the parent's font size, root the font size of the root element
// and medium the size of the "medium" keyword. Invalid values inherit the
// parent's size.
func FontSize(p style.Property, parent, root, medium float64) float64 {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	if f, ok := fontSizeKeywords[s]; ok {
		return medium * f
	}
	switch s {
	case "smaller":
		return parent / 1.2
	case "larger":
		return parent * 1.2
	}
	d := DimenOption(p)
	if d.IsNumber() { // unit-less font sizes are invalid
		return parent
	}
	px, ok := d.Px(Context{FontSize: parent, RootFontSize: root, Percent: parent})
	if !ok || px < 0 {
		return parent
	}
	return px
}

// LineHeight computes the line height in pixels from a line-height
// property. "normal" and invalid values yield false, meaning the height
// of the font is used.
func LineHeight(p style.Property, fontSize float64) (float64, bool) {
	if p.Is("normal") {
		return 0, false
	}
	d := DimenOption(p)
	px, ok := d.Px(Context{FontSize: fontSize, RootFontSize: fontSize, Percent: fontSize})
	if !ok || px <= 0 {
		return 0, false
	}
	return px, true
}
