package frame

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/htmlpix/engine/container"
	"github.com/npillmayer/htmlpix/engine/dom/style"
	"github.com/npillmayer/htmlpix/engine/dom/style/css"
	"github.com/npillmayer/htmlpix/engine/dom/styledtree"
	"github.com/npillmayer/htmlpix/engine/frame/inline"
	htmlinput "github.com/npillmayer/htmlpix/input/html"
)

// Block layout is a single pass: the width of a block is known from its
// containing block, its height from its children. Vertical margins of
// siblings collapse, margins of parents and children do not.

// block lays out a block-level element into a containing block at (x, y)
// of width w. prev is the bottom margin of the preceding sibling. It returns
// the bottom of the element's border box and its bottom margin.
func (d *Document) block(sn *styledtree.StyNode, x, y, w, prev int) (int, int) {
	ts := TextStyleOf(sn, d.c.DefaultFontSize())
	f := BoxOf(sn).FixWidth(w, d.context(ts))
	gap := CollapseMargins(prev, f.Margins[Top])
	f.Content = f.Content.Translate(x, y+gap-f.Margins[Top])
	first := len(d.list)
	if style.DisplayOf(sn.Get("display")) == style.DisplayListItem {
		d.listMarker(sn, ts, f.Content.X)
	}
	bottom := d.children(sn, ts, f.Content)
	if !f.FixedHeight {
		f.Content.H = bottom - f.Content.Y
	}
	d.marker = nil
	d.decorate(sn, ts, f, first)
	return f.BorderBox().Bottom(), f.Margins[Bottom]
}

func (d *Document) context(ts TextStyle) css.Context {
	media := d.c.MediaFeatures()
	return css.Context{
		FontSize:     float64(ts.Size),
		RootFontSize: d.rootPx,
		ViewportW:    float64(media.Width),
		ViewportH:    float64(media.Height),
	}
}

// decorate inserts background and borders of a box in front of the items
// of its content.
func (d *Document) decorate(sn *styledtree.StyNode, ts TextStyle, f Frame, at int) {
	colors := BoxColorsOf(sn, ts.Color)
	bbox := f.BorderBox()
	var items []displayItem
	if colors.Background.A > 0 && sn != d.noBg {
		items = append(items, fillItem{rect: bbox, color: colors.Background})
	}
	pbox := f.PaddingBox()
	edges := [4]dimen.Rect{
		Top:    {X: bbox.X, Y: bbox.Y, W: bbox.W, H: f.Border[Top]},
		Right:  {X: pbox.Right(), Y: pbox.Y, W: f.Border[Right], H: pbox.H},
		Bottom: {X: bbox.X, Y: pbox.Bottom(), W: bbox.W, H: f.Border[Bottom]},
		Left:   {X: bbox.X, Y: pbox.Y, W: f.Border[Left], H: pbox.H},
	}
	for dir, r := range edges {
		if !r.Empty() && colors.Border[dir].A > 0 {
			items = append(items, fillItem{rect: r, color: colors.Border[dir]})
		}
	}
	d.insertItems(at, items...)
}

// children lays out the children of a block container into its content
// box and returns the bottom of the content. Consecutive inline-level
// children form an anonymous block of lines.
func (d *Document) children(sn *styledtree.StyNode, ts TextStyle, content dimen.Rect) int {
	y, prev := content.Y, 0
	var run []*styledtree.StyNode
	flush := func() {
		if len(run) == 0 {
			return
		}
		if bottom, n := d.lines(run, ts, content.X, y+prev, content.W); n > 0 {
			y, prev = bottom, 0
		}
		run = run[:0]
	}
	ordinal := start(sn)
	for _, ch := range sn.Children() {
		display := style.DisplayInline
		if !ch.IsText() {
			display = style.DisplayOf(ch.Get("display"))
		}
		switch display {
		case style.DisplayNone:
			continue
		case style.DisplayInline:
			run = append(run, ch)
			continue
		case style.DisplayListItem:
			d.ordinal = ordinal
			ordinal++
		}
		flush()
		y, prev = d.block(ch, content.X, y, content.W, prev)
	}
	flush()
	return y + prev
}

// start returns the number of the first item of a list element.
func start(sn *styledtree.StyNode) int {
	if sn.Tag() == "ol" {
		if n, err := strconv.Atoi(htmlinput.Attr(sn.HTMLNode(), "start")); err == nil {
			return n
		}
	}
	return 1
}

// --- Inline content --------------------------------------------------------

// word is the payload of inline items drawing text.
type word struct {
	text       string
	font       *container.Font
	color      gfx.Color
	background gfx.Color
}

// lines breaks inline content into lines at (x, y) of width w and emits
// them. It returns the bottom of the last line and the number of lines.
func (d *Document) lines(run []*styledtree.StyNode, ts TextStyle, x, y, w int) (int, int) {
	var items []inline.Item
	for _, n := range run {
		items = d.collect(n, gfx.Transparent, items)
	}
	if len(items) == 0 {
		return y, 0
	}
	var strut inline.Strut
	if f := d.font(ts); f != nil {
		strut = d.strut(ts, f)
	}
	lines := inline.Break(items, w, strut, ts.Align)
	for _, line := range lines {
		baseline := y + line.Baseline
		if d.marker != nil {
			d.placeMarker(baseline)
		}
		for i, p := range line.Items {
			wd, ok := p.Payload.(*word)
			if !ok {
				continue
			}
			m := wd.font.Metrics()
			width := p.Width
			txt := wd.text
			if i < len(line.Items)-1 && p.Space > 0 {
				width += p.Space
				if wd.font.Decoration() != 0 {
					txt += " " // decorations span the gap
				}
			}
			if wd.background.A > 0 {
				d.list = append(d.list, fillItem{
					rect:  dimen.R(x+p.X, y, width, line.Height),
					color: wd.background,
				})
			}
			if wd.text == "" {
				continue
			}
			d.list = append(d.list, textItem{
				rect:  dimen.R(x+p.X, baseline-m.Ascent, p.Width, m.Ascent-m.Descent),
				text:  txt,
				font:  wd.font,
				color: wd.color,
			})
		}
		y += line.Height
	}
	return y, len(lines)
}

// collect appends the inline items of a node. bg is the background of the
// innermost enclosing inline element.
func (d *Document) collect(n *styledtree.StyNode, bg gfx.Color, items []inline.Item) []inline.Item {
	ts := TextStyleOf(n, d.c.DefaultFontSize())
	if n.IsText() {
		return d.words(n.Text(), ts, bg, items)
	}
	if style.DisplayOf(n.Get("display")) == style.DisplayNone {
		return items
	}
	if c := BoxColorsOf(n, ts.Color).Background; c.A > 0 {
		bg = c
	}
	if n.Tag() == "br" {
		f := d.font(ts)
		if f == nil {
			return items
		}
		it := d.item(ts, f)
		it.Break = true
		return append(items, it)
	}
	for _, ch := range n.Children() {
		items = d.collect(ch, bg, items)
	}
	return items
}

// words appends the words of a text as inline items. Collapsible white
// space between words is attached to the preceding item.
func (d *Document) words(txt string, ts TextStyle, bg gfx.Color, items []inline.Item) []inline.Item {
	f := d.font(ts)
	if f == nil {
		return items
	}
	space := d.c.TextWidth(" ", f)
	for _, seg := range inline.Segments(txt, ts.WhiteSpace) {
		if seg.Text == "" && !seg.MustBreak {
			if seg.Space && len(items) > 0 && items[len(items)-1].Space == 0 {
				items[len(items)-1].Space = space
			}
			continue
		}
		it := d.item(ts, f)
		it.Width = d.c.TextWidth(seg.Text, f)
		it.Break = seg.MustBreak
		if seg.Space {
			it.Space = space
		}
		it.Payload = &word{text: seg.Text, font: f, color: ts.Color, background: bg}
		items = append(items, it)
	}
	return items
}

// item creates an empty inline item with the vertical metrics of a font.
func (d *Document) item(ts TextStyle, f *container.Font) inline.Item {
	s := d.strut(ts, f)
	return inline.Item{Ascent: s.Ascent, Descent: s.Descent, Leading: s.Leading}
}

// strut computes ascent, descent and leading for a font and line height.
// Line height "normal" is the font's height.
func (d *Document) strut(ts TextStyle, f *container.Font) inline.Strut {
	m := f.Metrics()
	s := inline.Strut{Ascent: m.Ascent, Descent: -m.Descent}
	lh := m.Height
	if px, ok := css.LineHeight(ts.LineHeight, float64(ts.Size)); ok {
		lh = int(math.Round(px))
	}
	s.Leading = lh - (s.Ascent + s.Descent)
	return s
}

// --- List markers ----------------------------------------------------------

type pendingMarker struct {
	x      int // left edge of the list item's content
	ts     TextStyle
	bullet container.MarkerType
	label  string
}

// listMarker prepares the marker of a list item, drawn with its first line.
func (d *Document) listMarker(sn *styledtree.StyNode, ts TextStyle, x int) {
	d.marker = nil
	typ := strings.ToLower(string(sn.Get("list-style-type")))
	m := &pendingMarker{x: x, ts: ts}
	if bullet, ok := container.ParseMarkerType(typ); ok {
		if bullet == container.MarkerNone {
			return
		}
		m.bullet = bullet
	} else {
		m.label = counter(d.ordinal, typ) + "."
	}
	d.marker = m
}

// placeMarker emits the pending marker for a line with the given baseline.
func (d *Document) placeMarker(baseline int) {
	m := d.marker
	d.marker = nil
	f := d.font(m.ts)
	if f == nil {
		return
	}
	metrics := f.Metrics()
	if m.label != "" {
		w := d.c.TextWidth(m.label, f)
		gap := dimen.Max(2, m.ts.Size/4)
		d.list = append(d.list, textItem{
			rect:  dimen.R(m.x-w-gap, baseline-metrics.Ascent, w, metrics.Ascent-metrics.Descent),
			text:  m.label,
			font:  f,
			color: m.ts.Color,
		})
		return
	}
	size := dimen.Max(3, m.ts.Size*2/5)
	xh := metrics.XHeight
	if xh <= 0 {
		xh = m.ts.Size / 2
	}
	d.list = append(d.list, markerItem{
		rect:   dimen.R(m.x-2*size, baseline-xh/2-size/2, size, size),
		marker: m.bullet,
		color:  m.ts.Color,
	})
}

// counter formats a list item number for a list-style-type.
func counter(n int, typ string) string {
	switch typ {
	case "lower-alpha", "lower-latin":
		return alpha(n, 'a')
	case "upper-alpha", "upper-latin":
		return alpha(n, 'A')
	case "lower-roman":
		return strings.ToLower(roman(n))
	case "upper-roman":
		return roman(n)
	}
	return strconv.Itoa(n)
}

func alpha(n int, base rune) string {
	if n <= 0 {
		return strconv.Itoa(n)
	}
	var s []rune
	for ; n > 0; n = (n - 1) / 26 {
		s = append([]rune{base + rune((n-1)%26)}, s...)
	}
	return string(s)
}

func roman(n int) string {
	if n <= 0 || n >= 4000 {
		return strconv.Itoa(n)
	}
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	symbols := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}
	var b strings.Builder
	for i, v := range values {
		for n >= v {
			b.WriteString(symbols[i])
			n -= v
		}
	}
	return b.String()
}
