/*
Package canvas implements a pixel surface backend modelled after GUI
canvases.

The client buffer is wrapped as an image.RGBA and all compositing is done
with golang.org/x/image/draw. Therefore this backend accepts buffers in
format RGBA32 with top-down rows only. Compositing treats pixels as
premultiplied, which is exact for opaque targets.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package canvas

import (
	"image"

	"github.com/disintegration/imaging"
	ftraster "github.com/golang/freetype/raster"
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'htmlpix.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.gfx")
}

func init() {
	gfx.RegisterBackend(gfx.Canvas, func() gfx.Surface { return New() })
}

// Surface is a canvas-like pixel surface.
type Surface struct {
	gfx.Base
	img  *image.RGBA
	rast *ftraster.Rasterizer
	mask *image.Alpha
}

var _ gfx.Surface = (*Surface)(nil)

// New creates an unattached canvas surface.
func New() *Surface {
	s := &Surface{rast: ftraster.NewRasterizer(0, 0), mask: &image.Alpha{}}
	s.rast.UseNonZeroWinding = true
	return s
}

// Kind is gfx.Canvas.
func (s *Surface) Kind() gfx.Kind {
	return gfx.Canvas
}

// Attach wraps buf as the canvas image. Formats other than RGBA32 and
// bottom-up buffers result in an error with code core.EUNSUPPORTED.
func (s *Surface) Attach(buf []byte, format gfx.Format, w, h, stride int) error {
	if format != gfx.RGBA32 {
		return core.Error(core.EUNSUPPORTED, "canvas surface requires RGBA32, have %s", format)
	}
	if stride < 0 {
		return core.Error(core.EUNSUPPORTED, "canvas surface cannot draw to bottom-up buffers")
	}
	if err := s.Base.Attach(buf, format, w, h, stride); err != nil {
		return err
	}
	s.img = &image.RGBA{Pix: buf, Stride: stride, Rect: image.Rect(0, 0, w, h)}
	return nil
}

// FillRect composites the current color over r.
func (s *Surface) FillRect(r dimen.Rect) {
	if s.img == nil {
		return
	}
	r = r.Intersect(s.ClipRect())
	draw.Draw(s.img, r.ImageRect(), image.NewUniform(s.Color()), image.Point{}, draw.Over)
}

// DrawGlyphs renders glyph masks with the FreeType rasterizer and composites
// them with DrawMask.
func (s *Surface) DrawGlyphs(run []gfx.Glyph, font gfx.GlyphOutliner, extents dimen.Rect, c gfx.Color) {
	if s.img == nil || len(run) == 0 {
		return
	}
	limit := s.GlyphLimit(extents)
	if limit.Empty() {
		return
	}
	tracer().Debugf("canvas: draw %d glyphs within %s", len(run), limit)
	src := image.NewUniform(c)
	gfx.PlaceGlyphs(run, font, limit.ImageRect(), func(pg gfx.PlacedGlyph) {
		w, h := pg.Size()
		m := s.maskOf(w, h)
		s.rast.SetBounds(w, h)
		gfx.WalkOutline(pg.Outline, pg.Offset, &sink{r: s.rast})
		s.rast.Rasterize(ftraster.NewAlphaSrcPainter(m))
		draw.DrawMask(s.img, pg.Visible, src, image.Point{}, m, pg.Visible.Min.Sub(pg.Box.Min), draw.Over)
	})
}

// CopyFrom copies other onto the canvas. Other canvases are drawn directly.
func (s *Surface) CopyFrom(other gfx.Surface, dx, dy int) {
	if oc, ok := other.(*Surface); ok && s.img != nil && oc.img != nil {
		r := oc.img.Bounds().Add(image.Pt(dx, dy)).Intersect(s.ClipRect().ImageRect())
		draw.Draw(s.img, r, oc.img, r.Min.Sub(image.Pt(dx, dy)), draw.Src)
		return
	}
	s.Base.CopyFrom(other, dx, dy)
}

// Snapshot returns a copy of the canvas content.
func (s *Surface) Snapshot() *image.NRGBA {
	if s.img == nil {
		return nil
	}
	return imaging.Clone(s.img)
}

// Export writes the canvas content to an image file. The format is derived
// from the file extension.
func (s *Surface) Export(path string) error {
	if s.img == nil {
		return core.Error(core.EINVALID, "canvas surface is not attached")
	}
	if err := imaging.Save(s.img, path); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot export canvas to %s", path)
	}
	return nil
}

func (s *Surface) maskOf(w, h int) *image.Alpha {
	n := w * h
	if cap(s.mask.Pix) >= n {
		s.mask.Pix = s.mask.Pix[:n]
		for i := range s.mask.Pix {
			s.mask.Pix[i] = 0
		}
	} else {
		s.mask.Pix = make([]uint8, n)
	}
	s.mask.Stride = w
	s.mask.Rect = image.Rect(0, 0, w, h)
	return s.mask
}

// sink feeds outlines to the FreeType rasterizer. Contours are closed by
// drawing a line back to their start.
type sink struct {
	r     *ftraster.Rasterizer
	start fixed.Point26_6
}

func fx(x, y float32) fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

func (k *sink) MoveTo(x, y float32) {
	k.start = fx(x, y)
	k.r.Start(k.start)
}

func (k *sink) LineTo(x, y float32) {
	k.r.Add1(fx(x, y))
}

func (k *sink) QuadTo(cx, cy, x, y float32) {
	k.r.Add2(fx(cx, cy), fx(x, y))
}

func (k *sink) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	k.r.Add3(fx(c1x, c1y), fx(c2x, c2y), fx(x, y))
}

func (k *sink) ClosePath() {
	k.r.Add1(k.start)
}
