package style

import "strings"

// Display is the CSS display type of an element, as far as the layout
// engine distinguishes them.
type Display int8

// Display types
const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayListItem
	DisplayNone
)

// DisplayOf interprets the display property. Unknown values are treated as
// inline.
func DisplayOf(p Property) Display {
	switch strings.ToLower(strings.TrimSpace(string(p))) {
	case "block", "flow-root", "table", "table-row", "flex", "grid":
		return DisplayBlock
	case "list-item":
		return DisplayListItem
	case "none":
		return DisplayNone
	}
	return DisplayInline
}

func (d Display) String() string {
	return [...]string{"inline", "block", "list-item", "none"}[d]
}

// user-agent style sheet, as declarations per element
var userAgent = map[string]string{
	"html":       "display: block",
	"body":       "display: block; margin: 8px",
	"head":       "display: none",
	"title":      "display: none",
	"style":      "display: none",
	"script":     "display: none",
	"meta":       "display: none",
	"link":       "display: none",
	"div":        "display: block",
	"section":    "display: block",
	"article":    "display: block",
	"header":     "display: block",
	"footer":     "display: block",
	"nav":        "display: block",
	"main":       "display: block",
	"address":    "display: block; font-style: italic",
	"p":          "display: block; margin-top: 1em; margin-bottom: 1em",
	"blockquote": "display: block; margin: 1em 40px",
	"pre":        "display: block; font-family: monospace; white-space: pre; margin-top: 1em; margin-bottom: 1em",
	"h1":         "display: block; font-size: 2em; font-weight: bold; margin-top: 0.67em; margin-bottom: 0.67em",
	"h2":         "display: block; font-size: 1.5em; font-weight: bold; margin-top: 0.83em; margin-bottom: 0.83em",
	"h3":         "display: block; font-size: 1.17em; font-weight: bold; margin-top: 1em; margin-bottom: 1em",
	"h4":         "display: block; font-weight: bold; margin-top: 1.33em; margin-bottom: 1.33em",
	"h5":         "display: block; font-size: 0.83em; font-weight: bold; margin-top: 1.67em; margin-bottom: 1.67em",
	"h6":         "display: block; font-size: 0.67em; font-weight: bold; margin-top: 2.33em; margin-bottom: 2.33em",
	"ul":         "display: block; list-style-type: disc; margin-top: 1em; margin-bottom: 1em; padding-left: 40px",
	"ol":         "display: block; list-style-type: decimal; margin-top: 1em; margin-bottom: 1em; padding-left: 40px",
	"li":         "display: list-item",
	"hr":         "display: block; border-top-width: 1px; border-top-color: gray; margin-top: 0.5em; margin-bottom: 0.5em",
	"b":          "font-weight: bold",
	"strong":     "font-weight: bold",
	"i":          "font-style: italic",
	"em":         "font-style: italic",
	"cite":       "font-style: italic",
	"var":        "font-style: italic",
	"u":          "text-decoration: underline",
	"ins":        "text-decoration: underline",
	"s":          "text-decoration: line-through",
	"strike":     "text-decoration: line-through",
	"del":        "text-decoration: line-through",
	"a":          "color: blue; text-decoration: underline",
	"code":       "font-family: monospace",
	"kbd":        "font-family: monospace",
	"tt":         "font-family: monospace",
	"small":      "font-size: smaller",
	"big":        "font-size: larger",
	"center":     "display: block; text-align: center",
}

// UserAgentDeclarations returns the default style declarations for an HTML
// element, in CSS declaration syntax. Unknown elements have none.
func UserAgentDeclarations(tag string) string {
	return userAgent[strings.ToLower(tag)]
}

// Shorthands expands the box shorthand properties margin, padding,
// border-width and border-color, as well as the border shorthands, into
// their longhand forms. Other properties are returned unchanged.
func Shorthands(key string, value Property) map[string]Property {
	switch key {
	case "margin", "padding":
		return boxSides(key+"-%s", value)
	case "border-width":
		return boxSides("border-%s-width", value)
	case "border-color":
		return boxSides("border-%s-color", value)
	case "border":
		return borderParts("border-%s-width", "border-%s-color", value, boxSides)
	case "border-top", "border-right", "border-bottom", "border-left":
		return borderParts(key+"-width", key+"-color", value, func(pattern string, v Property) map[string]Property {
			return map[string]Property{pattern: v}
		})
	}
	return map[string]Property{key: value}
}

// borderParts splits a border shorthand into widths and colors. Line styles
// are dropped, except for none and hidden, which set the width to 0.
func borderParts(width, color string, value Property,
	expand func(string, Property) map[string]Property) map[string]Property {
	//
	m := make(map[string]Property)
	for _, part := range strings.Fields(string(value)) {
		pattern := width
		if _, ok := Property(part).Color(); ok {
			pattern = color
		} else if st := strings.ToLower(part); borderStyles[st] {
			if st != "none" && st != "hidden" {
				continue
			}
			part = "0"
		}
		for k, v := range expand(pattern, Property(part)) {
			m[k] = v
		}
	}
	return m
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "solid": true, "dotted": true, "dashed": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

// boxSides distributes one to four values onto top, right, bottom, left.
func boxSides(pattern string, value Property) map[string]Property {
	v := strings.Fields(string(value))
	var t, r, b, l string
	switch len(v) {
	case 1:
		t, r, b, l = v[0], v[0], v[0], v[0]
	case 2:
		t, r, b, l = v[0], v[1], v[0], v[1]
	case 3:
		t, r, b, l = v[0], v[1], v[2], v[1]
	case 4:
		t, r, b, l = v[0], v[1], v[2], v[3]
	default:
		return nil
	}
	return map[string]Property{
		strings.Replace(pattern, "%s", "top", 1):    Property(t),
		strings.Replace(pattern, "%s", "right", 1):  Property(r),
		strings.Replace(pattern, "%s", "bottom", 1): Property(b),
		strings.Replace(pattern, "%s", "left", 1):   Property(l),
	}
}
