/*
Package raster implements a software rasterizer backend for pixel surfaces.

Glyph outlines are scan-converted by the FreeType rasterizer. The resulting
coverage spans are composited onto the surface one by one with BlendHSpan.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package raster

import (
	ftraster "github.com/golang/freetype/raster"
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'htmlpix.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.gfx")
}

func init() {
	gfx.RegisterBackend(gfx.Raster, func() gfx.Surface { return New() })
}

// Surface is a pixel surface rendering glyphs through span callbacks.
type Surface struct {
	gfx.Base
	rast *ftraster.Rasterizer
	path contour
}

var _ gfx.Surface = (*Surface)(nil)

// New creates an unattached raster surface.
func New() *Surface {
	s := &Surface{rast: ftraster.NewRasterizer(0, 0)}
	s.rast.UseNonZeroWinding = true
	s.path.r = s.rast
	return s
}

// Kind is gfx.Raster.
func (s *Surface) Kind() gfx.Kind {
	return gfx.Raster
}

// DrawGlyphs rasterizes every glyph of run at its position and blends the
// coverage spans in color c. Pixels outside of extents or the clip are left
// untouched.
func (s *Surface) DrawGlyphs(run []gfx.Glyph, font gfx.GlyphOutliner, extents dimen.Rect, c gfx.Color) {
	if !s.Attached() || len(run) == 0 {
		return
	}
	limit := s.GlyphLimit(extents)
	if limit.Empty() {
		return
	}
	tracer().Debugf("raster: draw %d glyphs within %s", len(run), limit)
	saved := s.Color()
	s.SetColor(c)
	defer s.SetColor(saved)
	gfx.PlaceGlyphs(run, font, limit.ImageRect(), func(pg gfx.PlacedGlyph) {
		w, h := pg.Size()
		s.rast.SetBounds(w, h)
		s.rast.Dx, s.rast.Dy = pg.Box.Min.X, pg.Box.Min.Y
		gfx.WalkOutline(pg.Outline, pg.Offset, &s.path)
		vis := pg.Visible
		s.rast.Rasterize(ftraster.PainterFunc(func(spans []ftraster.Span, done bool) {
			for _, span := range spans {
				if span.Y < vis.Min.Y || span.Y >= vis.Max.Y || span.Alpha == 0 {
					continue
				}
				x0, x1 := dimen.Max(span.X0, vis.Min.X), dimen.Min(span.X1, vis.Max.X)
				if x0 < x1 {
					s.BlendHSpan(x0, span.Y, x1, uint8(span.Alpha>>8))
				}
			}
		}))
	})
}

// contour adapts the FreeType rasterizer to gfx.PathSink. The rasterizer
// does not close contours by itself.
type contour struct {
	r          *ftraster.Rasterizer
	start, pen fixed.Point26_6
}

func pt(x, y float32) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func (c *contour) MoveTo(x, y float32) {
	c.start = pt(x, y)
	c.pen = c.start
	c.r.Start(c.start)
}

func (c *contour) LineTo(x, y float32) {
	c.pen = pt(x, y)
	c.r.Add1(c.pen)
}

func (c *contour) QuadTo(cx, cy, x, y float32) {
	c.pen = pt(x, y)
	c.r.Add2(pt(cx, cy), c.pen)
}

func (c *contour) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	c.pen = pt(x, y)
	c.r.Add3(pt(c1x, c1y), pt(c2x, c2y), c.pen)
}

func (c *contour) ClosePath() {
	if c.pen != c.start {
		c.r.Add1(c.start)
		c.pen = c.start
	}
}
