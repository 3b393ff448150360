/*
Package vector implements a pixel surface backend on top of a vector
graphics rasterizer.

Every glyph is rendered into an alpha mask by golang.org/x/image/vector.
The mask is composited onto the surface in a single pass, without going
through span callbacks.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vector

import (
	"image"

	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
	xvector "golang.org/x/image/vector"
)

// tracer traces with key 'htmlpix.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.gfx")
}

func init() {
	gfx.RegisterBackend(gfx.Vector, func() gfx.Surface { return New() })
}

// Surface is a pixel surface compositing glyph masks natively.
type Surface struct {
	gfx.Base
	z    xvector.Rasterizer
	mask *image.Alpha
}

var _ gfx.Surface = (*Surface)(nil)

// New creates an unattached vector surface.
func New() *Surface {
	return &Surface{mask: &image.Alpha{}}
}

// Kind is gfx.Vector.
func (s *Surface) Kind() gfx.Kind {
	return gfx.Vector
}

// DrawGlyphs renders the glyphs of run as masks and composites them in
// color c, restricted to extents and the clip.
func (s *Surface) DrawGlyphs(run []gfx.Glyph, font gfx.GlyphOutliner, extents dimen.Rect, c gfx.Color) {
	if !s.Attached() || len(run) == 0 {
		return
	}
	limit := s.GlyphLimit(extents)
	if limit.Empty() {
		return
	}
	tracer().Debugf("vector: draw %d glyphs within %s", len(run), limit)
	pix := s.Pixels()
	gfx.PlaceGlyphs(run, font, limit.ImageRect(), func(pg gfx.PlacedGlyph) {
		w, h := pg.Size()
		s.z.Reset(w, h)
		s.z.DrawOp = draw.Src
		gfx.WalkOutline(pg.Outline, pg.Offset, &s.z)
		m := s.maskOf(w, h)
		s.z.Draw(m, m.Bounds(), image.Opaque, image.Point{})
		pix.BlendAlpha(m, c, pg.Box.Min.X, pg.Box.Min.Y, dimen.FromImageRect(pg.Visible))
	})
}

// maskOf returns the reusable mask, resized to w × h.
func (s *Surface) maskOf(w, h int) *image.Alpha {
	if n := w * h; cap(s.mask.Pix) >= n {
		s.mask.Pix = s.mask.Pix[:n]
	} else {
		s.mask.Pix = make([]uint8, n)
	}
	s.mask.Stride = w
	s.mask.Rect = image.Rect(0, 0, w, h)
	return s.mask
}
