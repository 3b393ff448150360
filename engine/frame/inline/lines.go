package inline

import "strings"

// Item is an unbreakable piece of inline content.
type Item struct {
	Width   int         // advance width
	Space   int         // width of the white space following the item, if any
	Break   bool        // forced line break after the item
	Ascent  int         // above the baseline
	Descent int         // below the baseline, positive
	Leading int         // line height minus font height, may be negative
	Payload interface{} // client data
}

// Strut describes the minimum extent of every line of a block, derived
// from the block's font and line height.
type Strut struct {
	Ascent, Descent, Leading int
}

// Align is a horizontal alignment of lines.
type Align int8

// Alignments, as for CSS property text-align.
const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
	AlignJustify
)

// ParseAlign interprets the value of CSS property text-align. Unknown
// values align left.
func ParseAlign(s string) Align {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "right", "end":
		return AlignRight
	case "center":
		return AlignCenter
	case "justify":
		return AlignJustify
	}
	return AlignLeft
}

func (a Align) String() string {
	return [...]string{"left", "right", "center", "justify"}[a]
}

// Placed is an item positioned on a line.
type Placed struct {
	*Item
	X int // offset from the start of the line
}

// Line is a line box.
type Line struct {
	Items    []Placed
	Width    int // width of the content, without trailing white space
	Baseline int // offset of the baseline from the top of the line
	Height   int
}

// Break breaks items into lines of the given width, filling each line
// with as many items as fit. An item wider than width is set on a line of
// its own. Lines are aligned within width.
//
// Vertical metrics follow the CSS inline formatting model: each item
// contributes its height plus leading, half of it above and half below,
// and so does the strut.
func Break(items []Item, width int, strut Strut, align Align) []Line {
	var lines []Line
	var cur []Placed
	x := 0
	flush := func(last bool) {
		lines = append(lines, finish(cur, x, width, strut, align, last))
		cur, x = nil, 0
	}
	for i := range items {
		it := &items[i]
		if len(cur) > 0 {
			next := x + cur[len(cur)-1].Space
			if next+it.Width > width {
				flush(false)
			} else {
				x = next
			}
		}
		cur = append(cur, Placed{Item: it, X: x})
		x += it.Width
		if it.Break {
			flush(true)
		}
	}
	if len(cur) > 0 {
		flush(true)
	}
	tracer().Debugf("broke %d items into %d lines of width %d", len(items), len(lines), width)
	return lines
}

// finish aligns a line and computes its vertical metrics. last is set for
// lines which end a paragraph or a forced break, which are not justified.
func finish(items []Placed, w, width int, strut Strut, align Align, last bool) Line {
	line := Line{Items: items, Width: w}
	above, below := halfLeading(strut.Ascent, strut.Descent, strut.Leading)
	for _, p := range items {
		a, b := halfLeading(p.Ascent, p.Descent, p.Leading)
		if a > above {
			above = a
		}
		if b > below {
			below = b
		}
	}
	line.Baseline = above
	if line.Height = above + below; line.Height < 0 {
		line.Height = 0
	}
	extra := width - w
	if extra <= 0 {
		return line
	}
	switch align {
	case AlignRight:
		shift(items, extra)
	case AlignCenter:
		shift(items, extra/2)
	case AlignJustify:
		if last || len(items) < 2 {
			break
		}
		gaps := len(items) - 1
		for k := range items {
			items[k].X += extra * k / gaps
		}
		line.Width = width
	}
	return line
}

func halfLeading(ascent, descent, leading int) (int, int) {
	return ascent + leading/2, descent + leading - leading/2
}

func shift(items []Placed, dx int) {
	for k := range items {
		items[k].X += dx
	}
}
