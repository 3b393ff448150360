package container

import (
	"math"
	"sort"

	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/htmlpix/core/font/fontregistry"
	"github.com/npillmayer/htmlpix/engine/text"
	"github.com/npillmayer/schuko"
)

// Container provides fonts and drawing services to a layout engine.
//
// A Container is not safe for concurrent use.
type Container struct {
	lib       *fontregistry.Library
	conf      schuko.Configuration
	fonts     map[fontKey]*shared
	markers   map[markerKey]gfx.Surface
	deco      text.DecorationConfig
	cacheSize int
	media     MediaFeatures
}

// MediaFeatures describe the output device, as used by CSS media queries.
type MediaFeatures struct {
	Type           string // e.g., "screen"
	Width, Height  int    // viewport
	DeviceWidth    int
	DeviceHeight   int
	ColorDepth     int // bits per color channel
	ColorIndex     int // entries in the color lookup table
	MonochromeBits int
	ResolutionDPI  int
}

type fontKey struct {
	path  string
	index int
	px    int
}

type shared struct {
	fi   *text.FontInstance
	refs int
}

// Font is a handle for a font created by a container. Handles for the same
// face at the same size share a font instance.
type Font struct {
	key     fontKey
	inst    *shared
	deco    text.Decoration
	metrics text.Metrics
	deleted bool
}

// Metrics returns the font-wide metrics of the font.
func (f *Font) Metrics() text.Metrics {
	return f.metrics
}

// Decoration returns the decorations drawn with text of this font.
func (f *Font) Decoration() text.Decoration {
	return f.deco
}

// Instance returns the underlying font instance.
func (f *Font) Instance() *text.FontInstance {
	if f == nil || f.deleted {
		return nil
	}
	return f.inst.fi
}

// New creates a container using fonts from lib. conf may be nil.
func New(lib *fontregistry.Library, conf schuko.Configuration) *Container {
	c := &Container{
		lib:       lib,
		conf:      conf,
		fonts:     make(map[fontKey]*shared),
		markers:   make(map[markerKey]gfx.Surface),
		deco:      text.DecorationConfigFrom(conf),
		cacheSize: 1000,
		media: MediaFeatures{
			Type:          "screen",
			Width:         320,
			Height:        240,
			DeviceWidth:   320,
			DeviceHeight:  240,
			ColorDepth:    8,
			ColorIndex:    256,
			ResolutionDPI: dimen.DefaultDPI,
		},
	}
	if conf == nil {
		return c
	}
	setInt := func(key string, v *int) {
		if conf.IsSet(key) {
			if n := conf.GetInt(key); n > 0 {
				*v = n
			} else {
				tracer().Errorf("ignoring configuration %s = %q", key, conf.GetString(key))
			}
		}
	}
	setInt("html.dpi", &c.media.ResolutionDPI)
	setInt("html.color-depth", &c.media.ColorDepth)
	setInt("html.device-width", &c.media.DeviceWidth)
	setInt("html.device-height", &c.media.DeviceHeight)
	setInt("font.cache-size", &c.cacheSize)
	if conf.IsSet("html.monochrome-bits") {
		c.media.MonochromeBits = conf.GetInt("html.monochrome-bits")
	}
	if t := conf.GetString("html.media-type"); t != "" {
		c.media.Type = t
	}
	c.media.Width, c.media.Height = c.media.DeviceWidth, c.media.DeviceHeight
	return c
}

// Library returns the container's font library.
func (c *Container) Library() *fontregistry.Library {
	return c.lib
}

// --- Fonts -----------------------------------------------------------------

// CreateFont resolves a font request and returns a handle for it.
//
// If the library cannot satisfy every aspect of the request (family, style,
// size, weight), no font is created and CreateFont returns a nil handle
// without an error. Clients then typically retry with another family list.
// Failing to load a resolved font is an error.
func (c *Container) CreateFont(families string, pixelSize, weight int, style fontregistry.Style,
	deco text.Decoration) (*Font, text.Metrics, error) {
	//
	loc, mask := c.lib.Resolve(families, pixelSize, weight, style)
	if mask != 0 {
		tracer().Infof("no font for %q %dpx weight %d: %s", families, pixelSize, weight, mask)
		return nil, text.Metrics{}, nil
	}
	key := fontKey{path: loc.Path, index: loc.Index, px: pixelSize}
	sh, ok := c.fonts[key]
	if !ok {
		fi, err := text.Load(loc.Path, loc.Index, pixelSize, text.WithCacheSize(c.cacheSize))
		if err != nil {
			return nil, text.Metrics{}, err
		}
		sh = &shared{fi: fi}
		c.fonts[key] = sh
	}
	sh.refs++
	f := &Font{key: key, inst: sh, deco: deco, metrics: sh.fi.Metrics()}
	tracer().Debugf("created font %s@%dpx (%d refs)", loc, pixelSize, sh.refs)
	return f, f.metrics, nil
}

// DeleteFont releases a font handle. The font instance is closed when its
// last handle is deleted. Deleting a handle twice is harmless, and so is
// deleting a handle which outlived a call to Close.
func (c *Container) DeleteFont(f *Font) {
	if f == nil || f.deleted {
		return
	}
	f.deleted = true
	if sh, ok := c.fonts[f.key]; !ok || sh != f.inst {
		return // closed with the container
	}
	f.inst.refs--
	if f.inst.refs <= 0 {
		f.inst.fi.Close()
		delete(c.fonts, f.key)
		tracer().Debugf("closed font %s@%dpx", f.key.path, f.key.px)
	}
}

// FontCount returns the number of font instances currently loaded.
func (c *Container) FontCount() int {
	return len(c.fonts)
}

// TextWidth measures text set in font f. A nil font measures 0.
func (c *Container) TextWidth(txt string, f *Font) int {
	if fi := f.Instance(); fi != nil {
		return fi.TextWidth(txt)
	}
	return 0
}

// DrawText draws text into pos, the baseline sitting above the bottom of pos
// by the font's descent. Decoration lines are drawn as configured.
func (c *Container) DrawText(s gfx.Surface, txt string, f *Font, color gfx.Color, pos dimen.Rect) {
	fi := f.Instance()
	if s == nil || fi == nil || txt == "" {
		return
	}
	x, y := pos.X, pos.Bottom()+f.metrics.Descent
	fi.Draw(txt, s, x, y, color)
	if f.deco == text.DecorationNone {
		return
	}
	w := fi.TextWidth(txt)
	for _, line := range c.deco.Lines(f.deco, f.metrics) {
		hline(s, x, x+w, float64(y)+line.Center, line.Thickness, color)
	}
}

// hline draws a horizontal line with antialiased upper and lower edges.
func hline(s gfx.Surface, x0, x1 int, center, thickness float64, color gfx.Color) {
	if x1 <= x0 || thickness <= 0 {
		return
	}
	saved := s.Color()
	defer s.SetColor(saved)
	s.SetColor(color)
	top, bottom := center-thickness/2, center+thickness/2
	for row := int(math.Floor(top)); float64(row) < bottom; row++ {
		cov := math.Min(bottom, float64(row+1)) - math.Max(top, float64(row))
		if a := uint8(math.Round(cov * 255)); a > 0 {
			s.BlendHSpan(x0, row, x1, a)
		}
	}
}

// DrawBackground fills rect with color.
func (c *Container) DrawBackground(s gfx.Surface, rect dimen.Rect, color gfx.Color) {
	if s == nil || color.A == 0 {
		return
	}
	saved := s.Color()
	s.SetColor(color)
	s.FillRect(rect)
	s.SetColor(saved)
}

// --- Device ----------------------------------------------------------------

// DefaultFontSize returns the default font size in pixels.
func (c *Container) DefaultFontSize() int {
	return c.lib.Defaults().Size
}

// DefaultFontName returns the default font family.
func (c *Container) DefaultFontName() string {
	return c.lib.Defaults().Family
}

// PtToPx converts points to pixels for the device resolution.
func (c *Container) PtToPx(pt float64) int {
	return dimen.PtToPx(pt, c.media.ResolutionDPI)
}

// SetViewport sets the size of the area the document is displayed in.
func (c *Container) SetViewport(w, h int) {
	c.media.Width, c.media.Height = w, h
}

// MediaFeatures returns the properties of the output device.
func (c *Container) MediaFeatures() MediaFeatures {
	return c.media
}

// Language returns the language and culture of the document's environment.
func (c *Container) Language() (string, string) {
	return "en", ""
}

// Close releases all fonts and cached markers. Handles still held by
// clients become unusable.
func (c *Container) Close() {
	keys := make([]fontKey, 0, len(c.fonts))
	for k := range c.fonts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].path < keys[j].path })
	for _, k := range keys {
		c.fonts[k].fi.Close()
		delete(c.fonts, k)
	}
	c.markers = make(map[markerKey]gfx.Surface)
	tracer().Debugf("container closed %d fonts", len(keys))
}
