package gfx

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/htmlpix/core/dimen"
)

// Base implements the pixel level operations common to all backends.
// Backends embed it and supply Kind and DrawGlyphs.
type Base struct {
	pix   *Pixmap
	color Color
	clip  dimen.Rect
	saved *arraystack.Stack // of dimen.Rect
}

// Attach binds b to a pixel buffer. The clip is reset to the buffer bounds,
// the clip stack is emptied and the color is reset to black.
func (b *Base) Attach(buf []byte, format Format, w, h, stride int) error {
	pm, err := NewPixmap(buf, format, w, h, stride)
	if err != nil {
		return err
	}
	b.AttachPixmap(pm)
	return nil
}

// AttachPixmap binds b to an existing pixmap.
func (b *Base) AttachPixmap(pm *Pixmap) {
	b.pix = pm
	b.clip = pm.Bounds()
	b.color = Black
	if b.saved == nil {
		b.saved = arraystack.New()
	}
	b.saved.Clear()
}

// Pixels returns the attached pixmap, or nil.
func (b *Base) Pixels() *Pixmap {
	return b.pix
}

// Attached is true if b is bound to a pixel buffer.
func (b *Base) Attached() bool {
	return b.pix != nil
}

// SetColor sets the color for subsequent drawing operations.
func (b *Base) SetColor(c Color) {
	b.color = c
}

// Color returns the current color.
func (b *Base) Color() Color {
	return b.color
}

// Clear overwrites the clip area with the current color.
func (b *Base) Clear() {
	if b.pix == nil {
		return
	}
	b.pix.FillRect(b.clip, b.color)
}

// FillRect composites the current color over r.
func (b *Base) FillRect(r dimen.Rect) {
	if b.pix == nil {
		return
	}
	r = r.Intersect(b.clip)
	if b.color.Opaque() {
		b.pix.FillRect(r, b.color)
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		b.pix.BlendSpan(r.X, y, r.Right(), b.color, 0xff)
	}
}

// BlendHSpan composites the current color with coverage over x1…x2-1 of row y.
func (b *Base) BlendHSpan(x1, y, x2 int, coverage uint8) {
	if b.pix == nil || y < b.clip.Y || y >= b.clip.Bottom() {
		return
	}
	b.pix.BlendSpan(dimen.Max(x1, b.clip.X), y, dimen.Min(x2, b.clip.Right()), b.color, coverage)
}

// CopyHSpan overwrites x1…x2-1 of row y with the current color.
func (b *Base) CopyHSpan(x1, y, x2 int) {
	if b.pix == nil {
		return
	}
	b.pix.FillRect(dimen.R(x1, y, x2-x1, 1).Intersect(b.clip), b.color)
}

// Save pushes the current clip rectangle.
func (b *Base) Save() {
	if b.saved == nil {
		b.saved = arraystack.New()
	}
	b.saved.Push(b.clip)
}

// Restore pops the clip rectangle saved last. Without a matching Save it
// does nothing.
func (b *Base) Restore() {
	if b.saved == nil {
		return
	}
	if r, ok := b.saved.Pop(); ok {
		b.clip = r.(dimen.Rect)
	} else {
		tracer().Debugf("surface restore without save")
	}
}

// Clip narrows the clip area to its intersection with r.
func (b *Base) Clip(r dimen.Rect) {
	b.clip = b.clip.Intersect(r)
}

// ClipRect returns the current clip rectangle.
func (b *Base) ClipRect() dimen.Rect {
	return b.clip
}

// CopyFrom copies the pixels of other, placing its origin at (dx, dy).
func (b *Base) CopyFrom(other Surface, dx, dy int) {
	if b.pix == nil || other == nil || other.Pixels() == nil {
		return
	}
	b.pix.CopyFrom(other.Pixels(), dx, dy, b.clip)
}

// BlendFrom composites c through the coverage of other, placing its origin
// at (dx, dy).
func (b *Base) BlendFrom(other Surface, c Color, dx, dy int) {
	if b.pix == nil || other == nil || other.Pixels() == nil {
		return
	}
	b.pix.BlendFrom(other.Pixels(), c, dx, dy, b.clip)
}

// GlyphLimit returns the area glyphs of a run with the given extents may
// cover: the extents within the clip. An empty extents rectangle means the
// run is limited by the clip only.
func (b *Base) GlyphLimit(extents dimen.Rect) dimen.Rect {
	if extents.Empty() {
		return b.clip
	}
	return extents.Intersect(b.clip)
}
