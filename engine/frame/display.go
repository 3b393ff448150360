package frame

import (
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/htmlpix/engine/container"
)

// The layout result is a display list: drawing operations in document
// coordinates, in painting order.
type displayItem interface {
	// bounds is the area the item may paint
	bounds() dimen.Rect
	draw(c *container.Container, s gfx.Surface, dx, dy int)
}

type fillItem struct {
	rect  dimen.Rect
	color gfx.Color
}

func (f fillItem) bounds() dimen.Rect {
	return f.rect
}

func (f fillItem) draw(c *container.Container, s gfx.Surface, dx, dy int) {
	c.DrawBackground(s, f.rect.Translate(dx, dy), f.color)
}

type textItem struct {
	rect  dimen.Rect // ascent to descent, advance width
	text  string
	font  *container.Font
	color gfx.Color
}

// Glyphs may overhang their advance box, e.g. for italics.
func (t textItem) bounds() dimen.Rect {
	return t.rect.Inset(-(t.rect.H/2 + 2))
}

func (t textItem) draw(c *container.Container, s gfx.Surface, dx, dy int) {
	c.DrawText(s, t.text, t.font, t.color, t.rect.Translate(dx, dy))
}

type markerItem struct {
	rect   dimen.Rect
	marker container.MarkerType
	color  gfx.Color
}

func (m markerItem) bounds() dimen.Rect {
	return m.rect
}

func (m markerItem) draw(c *container.Container, s gfx.Surface, dx, dy int) {
	c.DrawListMarker(s, m.marker, m.rect.Translate(dx, dy), m.color)
}

// insertItems inserts items into the display list at index i.
func (d *Document) insertItems(i int, items ...displayItem) {
	if len(items) == 0 {
		return
	}
	d.list = append(d.list, items...)
	copy(d.list[i+len(items):], d.list[i:])
	copy(d.list[i:], items)
}
