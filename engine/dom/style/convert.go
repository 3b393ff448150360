package style

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/npillmayer/htmlpix/core/percent"
	"golang.org/x/image/colornames"
)

// Color interprets a property as a CSS color. Supported are the CSS color
// keywords, "transparent", "#rgb", "#rgba", "#rrggbb", "#rrggbbaa" and the
// functional notations rgb() and rgba() with numbers or percentages.
func (p Property) Color() (color.NRGBA, bool) {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	switch {
	case s == "":
		return color.NRGBA{}, false
	case s == "transparent":
		return color.NRGBA{}, true
	case s[0] == '#':
		return hexColor(s[1:])
	case strings.HasPrefix(s, "rgb"):
		return rgbFunction(s)
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, true
	}
	tracer().Debugf("not a color: %q", s)
	return color.NRGBA{}, false
}

func hexColor(h string) (color.NRGBA, bool) {
	var digits []uint8
	for _, r := range h {
		d, err := strconv.ParseUint(string(r), 16, 8)
		if err != nil {
			return color.NRGBA{}, false
		}
		digits = append(digits, uint8(d))
	}
	c := color.NRGBA{A: 0xff}
	switch len(digits) {
	case 3, 4:
		c.R, c.G, c.B = digits[0]*17, digits[1]*17, digits[2]*17
		if len(digits) == 4 {
			c.A = digits[3] * 17
		}
	case 6, 8:
		c.R = digits[0]<<4 | digits[1]
		c.G = digits[2]<<4 | digits[3]
		c.B = digits[4]<<4 | digits[5]
		if len(digits) == 8 {
			c.A = digits[6]<<4 | digits[7]
		}
	default:
		return color.NRGBA{}, false
	}
	return c, true
}

func rgbFunction(s string) (color.NRGBA, bool) {
	open, close := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || close < open {
		return color.NRGBA{}, false
	}
	args := strings.FieldsFunc(s[open+1:close], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(args) != 3 && len(args) != 4 {
		return color.NRGBA{}, false
	}
	var ch [4]uint8
	ch[3] = 0xff
	for i, a := range args {
		if strings.HasSuffix(a, "%") {
			pc, err := percent.FromString(a)
			if err != nil {
				return color.NRGBA{}, false
			}
			ch[i] = pc.Byte()
			continue
		}
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		if i == 3 { // alpha as a fraction
			f *= 255
		}
		ch[i] = clampByte(f)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, true
}

func clampByte(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	}
	return uint8(f + 0.5)
}
