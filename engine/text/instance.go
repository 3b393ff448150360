package text

import (
	"math"

	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/htmlpix/core/font"
	"github.com/npillmayer/htmlpix/engine/glyphing"
	"github.com/npillmayer/htmlpix/engine/glyphing/harfbuzz"
)

// DefaultCacheSize is the number of shaped texts a font instance remembers,
// if not configured otherwise.
const DefaultCacheSize = 256

// FontInstance is a font at a fixed pixel size.
//
// A FontInstance is not safe for concurrent use.
type FontInstance struct {
	sf       *font.ScalableFont
	scaled   *font.ScaledFont
	shaper   *harfbuzz.Shaper
	cache    *glyphing.LayoutCache
	px       int
	params   glyphing.Params
	deco     Decoration
	metrics  Metrics
	computed bool // metrics have been computed
	closed   bool
}

// Option configures a font instance at load time.
type Option func(*options)

type options struct {
	cacheSize int
	params    glyphing.Params
	deco      Decoration
}

// WithCacheSize sets the capacity of the instance's layout cache.
func WithCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithParams sets the shaping parameters. The default is left-to-right
// Latin text in English.
func WithParams(p glyphing.Params) Option {
	return func(o *options) { o.params = p }
}

// WithDecoration sets text decorations to be drawn with text of this
// instance.
func WithDecoration(d Decoration) Option {
	return func(o *options) { o.deco = d }
}

// Load opens a face of a font file and prepares it for a pixel size.
// index selects a face within a font collection. The reserved path
// font.FallbackPath loads the built-in fallback font.
//
// Missing files result in an error with code core.EMISSING, fonts which
// cannot be parsed in core.EINVALID and failures to set up shaping in
// core.ESHAPING. Everything acquired is released before returning an error.
func Load(path string, index int, pixelSize int, opts ...Option) (*FontInstance, error) {
	o := options{cacheSize: DefaultCacheSize, params: glyphing.DefaultParams()}
	for _, opt := range opts {
		opt(&o)
	}
	if pixelSize <= 0 {
		return nil, core.Error(core.EINVALID, "font size must be positive, is %d", pixelSize)
	}
	cache, err := glyphing.NewLayoutCache(o.cacheSize)
	if err != nil {
		return nil, err
	}
	sf, err := font.LoadScalableFont(path, index)
	if err != nil {
		return nil, err
	}
	shaper, err := harfbuzz.NewShaper(sf.Face, pixelSize, o.params)
	if err != nil {
		sf.Face = nil
		return nil, core.WrapError(err, core.ESHAPING, "cannot create shaping font for %s", path)
	}
	scaled, err := sf.ScaleTo(pixelSize)
	if err != nil {
		shaper.Close()
		sf.Face = nil
		return nil, err
	}
	tracer().Debugf("loaded font %s[%d] at %dpx", sf.Fontname, index, pixelSize)
	return &FontInstance{
		sf:     sf,
		scaled: scaled,
		shaper: shaper,
		cache:  cache,
		px:     pixelSize,
		params: o.params,
		deco:   o.deco,
	}, nil
}

// Close releases the instance's resources in dependency order: scaled font,
// face, then shaping font. Calling Close more than once is harmless.
func (fi *FontInstance) Close() error {
	if fi == nil || fi.closed {
		return nil
	}
	fi.closed = true
	var err error
	if fi.scaled != nil {
		err = fi.scaled.Close()
		fi.scaled = nil
	}
	if fi.sf != nil {
		fi.sf.Face = nil
		fi.sf.SFNT = nil
		fi.sf.Binary = nil
	}
	if fi.shaper != nil {
		fi.shaper.Close()
		fi.shaper = nil
	}
	if fi.cache != nil {
		fi.cache.Purge()
	}
	return err
}

// Closed is true after Close has been called.
func (fi *FontInstance) Closed() bool {
	return fi.closed
}

// PixelSize returns the size of the instance in pixels per em.
func (fi *FontInstance) PixelSize() int {
	return fi.px
}

// Family returns the family name of the font.
func (fi *FontInstance) Family() string {
	if fi.sf == nil {
		return ""
	}
	return fi.sf.Fontname
}

// Params returns the shaping parameters of the instance.
func (fi *FontInstance) Params() glyphing.Params {
	return fi.params
}

// Decoration returns the text decorations of the instance.
func (fi *FontInstance) Decoration() Decoration {
	return fi.deco
}

// Stats returns the counters of the instance's layout cache.
func (fi *FontInstance) Stats() glyphing.CacheStats {
	return fi.cache.Stats()
}

// Outliner returns the source of glyph outlines for surfaces.
func (fi *FontInstance) Outliner() gfx.GlyphOutliner {
	if fi.scaled == nil {
		return nil
	}
	return fi.scaled
}

// Shape returns the shaped glyph run for text. Runs are taken from the
// instance's cache if possible. Glyph positions are relative to the pen
// position on the baseline.
func (fi *FontInstance) Shape(text string) glyphing.Layout {
	if fi.closed {
		return glyphing.Layout{}
	}
	return fi.cache.GetOrShape(text, fi.shaper.Shape)
}

// TextWidth returns the width of text in pixels: its advance, less the left
// side bearing of its ink, truncated to an integer.
func (fi *FontInstance) TextWidth(text string) int {
	ext := fi.Shape(text).Extents
	return int(ext.XAdvance - ext.XBearing)
}

// Draw draws text with its pen starting at (x, y), y being the baseline.
// Pixels are limited to the ink extents of the text, grown by a pixel on
// each side.
func (fi *FontInstance) Draw(text string, s gfx.Surface, x, y int, c gfx.Color) {
	if fi.closed || s == nil || text == "" {
		return
	}
	layout := fi.Shape(text)
	if layout.Extents.Width == 0 || layout.Extents.Height == 0 {
		return // nothing visible
	}
	run := make([]gfx.Glyph, len(layout.Glyphs))
	fx, fy := float32(x), float32(y)
	for i, g := range layout.Glyphs {
		run[i] = gfx.Glyph{ID: g.GID, X: g.X + fx, Y: g.Y + fy}
	}
	s.DrawGlyphs(run, fi.scaled, InkRect(layout.Extents, x, y), c)
}

// InkRect returns the pixel rectangle covering extents for a run with its
// pen at (x, y), grown by one pixel on every side.
func InkRect(ext glyphing.Extents, x, y int) dimen.Rect {
	x0 := int(math.Floor(float64(ext.XBearing))) - 1
	y0 := int(math.Floor(float64(ext.YBearing))) - 1
	x1 := int(math.Ceil(float64(ext.XBearing+ext.Width))) + 1
	y1 := int(math.Ceil(float64(ext.YBearing+ext.Height))) + 1
	return dimen.R(x+x0, y+y0, x1-x0, y1-y0)
}

// Metrics returns the font-wide metrics of the instance. They are computed
// on first call and memoized.
func (fi *FontInstance) Metrics() Metrics {
	if fi.computed || fi.scaled == nil {
		return fi.metrics
	}
	m := fi.scaled.Metrics()
	fi.metrics = Metrics{
		Ascent:  font.Ceil(m.Ascent),
		Descent: -font.Ceil(m.Descent),
		Height:  font.Round(m.Height),
	}
	if m.XHeight > 0 {
		fi.metrics.XHeight = font.Round(m.XHeight)
	} else {
		fi.metrics.XHeight = int(math.Round(fi.scaled.RuneHeight('x')))
	}
	fi.computed = true
	tracer().Debugf("metrics of %s at %dpx: %+v", fi.Family(), fi.px, fi.metrics)
	return fi.metrics
}
