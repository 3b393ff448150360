package gfx

import (
	"image"
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// PathSink receives the contours of an outline, in pixel coordinates with
// y growing downwards. golang.org/x/image/vector.Rasterizer is a PathSink.
type PathSink interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(cx, cy, x, y float32)
	CubeTo(c1x, c1y, c2x, c2y, x, y float32)
	ClosePath()
}

// WalkOutline feeds the segments of a glyph outline to sink, shifting every
// point by offset. Each contour is closed explicitly before the next one
// starts and after the last one.
func WalkOutline(segs sfnt.Segments, offset fixed.Point26_6, sink PathSink) {
	pt := func(p fixed.Point26_6) (float32, float32) {
		p = p.Add(offset)
		return float32(p.X) / 64, float32(p.Y) / 64
	}
	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				sink.ClosePath()
			}
			x, y := pt(seg.Args[0])
			sink.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(seg.Args[0])
			sink.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(seg.Args[0])
			x, y := pt(seg.Args[1])
			sink.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(seg.Args[0])
			c2x, c2y := pt(seg.Args[1])
			x, y := pt(seg.Args[2])
			sink.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		sink.ClosePath()
	}
}

// --- Glyph placement -------------------------------------------------------

// Glyph is a glyph of a shaped run, positioned at its pen origin on the
// baseline in surface coordinates.
type Glyph struct {
	ID   uint32
	X, Y float32
}

// GlyphOutliner delivers glyph outlines of a scaled font, in pixels (26.6)
// relative to the glyph origin, y down.
type GlyphOutliner interface {
	GlyphOutline(gid uint32) (sfnt.Segments, bool)
}

// PlacedGlyph is a glyph outline prepared for glyph-local rasterization.
type PlacedGlyph struct {
	Outline sfnt.Segments
	Box     image.Rectangle // target pixels on the surface
	Offset  fixed.Point26_6 // shift from outline to mask coordinates
	Visible image.Rectangle // part of Box inside the drawing limit
}

// Size returns the dimensions of the glyph mask.
func (pg PlacedGlyph) Size() (int, int) {
	return pg.Box.Dx(), pg.Box.Dy()
}

// SplitPosition quantizes a position to 26.6 and splits it into an integer
// pixel origin and a fractional remainder in [0, 64).
func SplitPosition(x, y float32) (ix, iy int, frac fixed.Point26_6) {
	qx := fixed.Int26_6(math.Round(float64(x) * 64))
	qy := fixed.Int26_6(math.Round(float64(y) * 64))
	return int(qx >> 6), int(qy >> 6), fixed.Point26_6{X: qx & 63, Y: qy & 63}
}

// PlaceGlyph positions the outline of a glyph for rasterization. The mask of
// a glyph depends on the fractional part of its position only.
func PlaceGlyph(segs sfnt.Segments, x, y float32) PlacedGlyph {
	ix, iy, frac := SplitPosition(x, y)
	b := segs.Bounds()
	x0, y0 := (b.Min.X + frac.X).Floor(), (b.Min.Y + frac.Y).Floor()
	x1, y1 := (b.Max.X + frac.X).Ceil(), (b.Max.Y + frac.Y).Ceil()
	return PlacedGlyph{
		Outline: segs,
		Box:     image.Rect(ix+x0, iy+y0, ix+x1, iy+y1),
		Offset: fixed.Point26_6{
			X: frac.X - fixed.I(x0),
			Y: frac.Y - fixed.I(y0),
		},
	}
}

// PlaceGlyphs positions every glyph of run which has an outline and is at
// least partially visible within limit, and calls fn for it.
func PlaceGlyphs(run []Glyph, font GlyphOutliner, limit image.Rectangle, fn func(PlacedGlyph)) {
	if font == nil || limit.Empty() {
		return
	}
	for _, g := range run {
		segs, ok := font.GlyphOutline(g.ID)
		if !ok || len(segs) == 0 {
			continue
		}
		pg := PlaceGlyph(segs, g.X, g.Y)
		if pg.Box.Empty() {
			continue
		}
		if pg.Visible = pg.Box.Intersect(limit); pg.Visible.Empty() {
			continue
		}
		fn(pg)
	}
}
