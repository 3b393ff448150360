package gfx

import (
	"image"
	"image/color"

	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/dimen"
)

// Pixmap is a view onto a client-owned pixel buffer.
//
// Coordinates are always top-down, regardless of the storage order of rows.
// Pixel operations outside of the pixmap bounds are silently dropped.
type Pixmap struct {
	buf    []byte
	format Format
	bpp    int
	w, h   int
	stride int
	origin int // byte offset of row 0
}

// NewPixmap wraps buf as a pixmap. A negative stride denotes bottom-up rows:
// row 0 is then stored at offset (h-1)·|stride|.
//
// An unknown format results in an error with code core.EUNSUPPORTED, invalid
// geometry (including a buffer too small for it) in core.EINVALID.
func NewPixmap(buf []byte, format Format, w, h, stride int) (*Pixmap, error) {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, core.Error(core.EUNSUPPORTED, "pixel format %s not supported", format)
	}
	if w <= 0 || h <= 0 {
		return nil, core.Error(core.EINVALID, "invalid pixmap size %dx%d", w, h)
	}
	absStride := stride
	if stride < 0 {
		absStride = -stride
	}
	if absStride < w*bpp {
		return nil, core.Error(core.EINVALID, "stride %d too small for %d pixels of format %s",
			stride, w, format)
	}
	if need := (h-1)*absStride + w*bpp; len(buf) < need {
		return nil, core.Error(core.EINVALID, "buffer of %d bytes too small, need %d", len(buf), need)
	}
	pm := &Pixmap{buf: buf, format: format, bpp: bpp, w: w, h: h, stride: stride}
	if stride < 0 {
		pm.origin = (h - 1) * absStride
	}
	return pm, nil
}

// AllocPixmap creates a pixmap with a freshly allocated, zeroed buffer.
func AllocPixmap(format Format, w, h int) (*Pixmap, error) {
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, core.Error(core.EUNSUPPORTED, "pixel format %s not supported", format)
	}
	if w <= 0 || h <= 0 {
		return nil, core.Error(core.EINVALID, "invalid pixmap size %dx%d", w, h)
	}
	return NewPixmap(make([]byte, w*h*bpp), format, w, h, w*bpp)
}

// Width of the pixmap in pixels.
func (pm *Pixmap) Width() int { return pm.w }

// Height of the pixmap in pixels.
func (pm *Pixmap) Height() int { return pm.h }

// Stride is the distance in bytes between two rows, as given by the client.
func (pm *Pixmap) Stride() int { return pm.stride }

// Format is the pixel format.
func (pm *Pixmap) Format() Format { return pm.format }

// Bytes returns the underlying buffer.
func (pm *Pixmap) Bytes() []byte { return pm.buf }

// Bounds returns the pixmap's extent, located at the origin.
func (pm *Pixmap) Bounds() dimen.Rect {
	return dimen.R(0, 0, pm.w, pm.h)
}

func (pm *Pixmap) offset(x, y int) int {
	return pm.origin + y*pm.stride + x*pm.bpp
}

func (pm *Pixmap) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < pm.w && y < pm.h
}

// Pixel returns the color at (x, y). Formats without alpha report opaque
// colors. Outside of the bounds Transparent is returned.
func (pm *Pixmap) Pixel(x, y int) Color {
	if !pm.inside(x, y) {
		return Transparent
	}
	p := pm.buf[pm.offset(x, y):]
	switch pm.format {
	case RGB24:
		return Color{p[0], p[1], p[2], 0xff}
	case RGBA32:
		return Color{p[0], p[1], p[2], p[3]}
	case BGRA32:
		return Color{p[2], p[1], p[0], p[3]}
	}
	return Transparent
}

// SetPixel overwrites the pixel at (x, y) with c.
func (pm *Pixmap) SetPixel(x, y int, c Color) {
	if !pm.inside(x, y) {
		return
	}
	pm.put(pm.offset(x, y), c)
}

func (pm *Pixmap) put(off int, c Color) {
	p := pm.buf[off:]
	switch pm.format {
	case RGB24:
		p[0], p[1], p[2] = c.R, c.G, c.B
	case RGBA32:
		p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
	case BGRA32:
		p[0], p[1], p[2], p[3] = c.B, c.G, c.R, c.A
	}
}

// BlendPixel composites c over the pixel at (x, y), with c's alpha scaled by
// coverage.
func (pm *Pixmap) BlendPixel(x, y int, c Color, coverage uint8) {
	if !pm.inside(x, y) {
		return
	}
	pm.blend(pm.offset(x, y), c, coverage)
}

func (pm *Pixmap) blend(off int, c Color, coverage uint8) {
	a := mul255(c.A, coverage)
	if a == 0 {
		return
	}
	if a == 0xff {
		pm.put(off, c)
		return
	}
	p := pm.buf[off:]
	switch pm.format {
	case RGB24:
		p[0], p[1], p[2] = lerp255(c.R, p[0], a), lerp255(c.G, p[1], a), lerp255(c.B, p[2], a)
	case RGBA32:
		p[0], p[1], p[2] = lerp255(c.R, p[0], a), lerp255(c.G, p[1], a), lerp255(c.B, p[2], a)
		p[3] = a + mul255(p[3], 0xff-a)
	case BGRA32:
		p[0], p[1], p[2] = lerp255(c.B, p[0], a), lerp255(c.G, p[1], a), lerp255(c.R, p[2], a)
		p[3] = a + mul255(p[3], 0xff-a)
	}
}

// Coverage interprets the pixel at (x, y) as a mask value: the alpha channel
// for formats with alpha, the red channel otherwise.
func (pm *Pixmap) Coverage(x, y int) uint8 {
	if !pm.inside(x, y) {
		return 0
	}
	p := pm.buf[pm.offset(x, y):]
	switch pm.format {
	case RGBA32, BGRA32:
		return p[3]
	}
	return p[0]
}

// FillRect overwrites all pixels of r with c.
func (pm *Pixmap) FillRect(r dimen.Rect, c Color) {
	r = r.Intersect(pm.Bounds())
	if r.Empty() {
		return
	}
	// fill first row pixel by pixel, replicate it to the other rows
	first := pm.offset(r.X, r.Y)
	for x := 0; x < r.W; x++ {
		pm.put(first+x*pm.bpp, c)
	}
	n := r.W * pm.bpp
	for y := r.Y + 1; y < r.Bottom(); y++ {
		off := pm.offset(r.X, y)
		copy(pm.buf[off:off+n], pm.buf[first:first+n])
	}
}

// BlendSpan composites c over the pixels from x1 to x2 (exclusive) on row y.
func (pm *Pixmap) BlendSpan(x1, y, x2 int, c Color, coverage uint8) {
	if y < 0 || y >= pm.h {
		return
	}
	x1, x2 = dimen.Max(x1, 0), dimen.Min(x2, pm.w)
	for x := x1; x < x2; x++ {
		pm.blend(pm.offset(x, y), c, coverage)
	}
}

// Scroll moves the pixmap content so that afterwards pixel (x, y) holds what
// was at (x+dx, y+dy) before. Pixels with no source inside the pixmap keep
// their old values. Rows are processed in an order which never reads a row
// already overwritten.
func (pm *Pixmap) Scroll(dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	if dimen.Abs(dx) >= pm.w || dimen.Abs(dy) >= pm.h {
		return
	}
	x0, x1 := dimen.Max(0, -dx), dimen.Min(pm.w, pm.w-dx)
	n := (x1 - x0) * pm.bpp
	copyRow := func(y int) {
		dst, src := pm.offset(x0, y), pm.offset(x0+dx, y+dy)
		copy(pm.buf[dst:dst+n], pm.buf[src:src+n])
	}
	y0, y1 := dimen.Max(0, -dy), dimen.Min(pm.h, pm.h-dy)
	if dy > 0 {
		for y := y0; y < y1; y++ {
			copyRow(y)
		}
	} else {
		for y := y1 - 1; y >= y0; y-- {
			copyRow(y)
		}
	}
}

// CopyFrom copies pixels of src into pm, with src's origin placed at (dx, dy).
// Only pixels inside clip are touched. Formats are converted as necessary.
func (pm *Pixmap) CopyFrom(src *Pixmap, dx, dy int, clip dimen.Rect) {
	r := src.Bounds().Translate(dx, dy).Intersect(clip).Intersect(pm.Bounds())
	if r.Empty() {
		return
	}
	if src.format == pm.format {
		n := r.W * pm.bpp
		for y := r.Y; y < r.Bottom(); y++ {
			d, s := pm.offset(r.X, y), src.offset(r.X-dx, y-dy)
			copy(pm.buf[d:d+n], src.buf[s:s+n])
		}
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			pm.put(pm.offset(x, y), src.Pixel(x-dx, y-dy))
		}
	}
}

// BlendFrom uses mask as a coverage mask (see Coverage) for compositing c
// onto pm, with mask's origin placed at (dx, dy).
func (pm *Pixmap) BlendFrom(mask *Pixmap, c Color, dx, dy int, clip dimen.Rect) {
	r := mask.Bounds().Translate(dx, dy).Intersect(clip).Intersect(pm.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if cov := mask.Coverage(x-dx, y-dy); cov != 0 {
				pm.blend(pm.offset(x, y), c, cov)
			}
		}
	}
}

// BlendAlpha composites c onto pm through an alpha mask, with the mask's
// bounds minimum placed at (dx, dy).
func (pm *Pixmap) BlendAlpha(mask *image.Alpha, c Color, dx, dy int, clip dimen.Rect) {
	mb := mask.Bounds()
	r := dimen.R(dx, dy, mb.Dx(), mb.Dy()).Intersect(clip).Intersect(pm.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		row := mask.Pix[mask.PixOffset(mb.Min.X+r.X-dx, mb.Min.Y+y-dy):]
		for x := r.X; x < r.Right(); x++ {
			if cov := row[x-r.X]; cov != 0 {
				pm.blend(pm.offset(x, y), c, cov)
			}
		}
	}
}

// Image returns a copy of the pixmap content as an image.
func (pm *Pixmap) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, pm.w, pm.h))
	for y := 0; y < pm.h; y++ {
		for x := 0; x < pm.w; x++ {
			c := pm.Pixel(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return img
}

// SameBuffer is true if a and b are the same slice of memory.
func SameBuffer(a, b []byte) bool {
	if len(a) != len(b) || cap(a) != cap(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return &a[0] == &b[0]
}

// --- Integer blending ------------------------------------------------------

// mul255 returns a·b/255, rounded.
func mul255(a, b uint8) uint8 {
	t := uint32(a)*uint32(b) + 0x80
	return uint8((t + t>>8) >> 8)
}

// lerp255 mixes src over dst with alpha a.
func lerp255(src, dst, a uint8) uint8 {
	return uint8((uint32(src)*uint32(a) + uint32(dst)*uint32(0xff-a) + 127) / 255)
}
