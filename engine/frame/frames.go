package frame

import (
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/htmlpix/core/font"
	"github.com/npillmayer/htmlpix/core/font/fontregistry"
	"github.com/npillmayer/htmlpix/engine/container"
	"github.com/npillmayer/htmlpix/engine/dom/styledtree"
	"github.com/npillmayer/htmlpix/engine/text"
	htmlinput "github.com/npillmayer/htmlpix/input/html"
)

// Document is an HTML document laid out for a viewport width. It
// implements render.Document and render.Layouter.
//
// A Document is not safe for concurrent use.
type Document struct {
	src     *htmlinput.Document
	c       *container.Container
	root    *styledtree.StyNode
	styledW int // viewport width the styles were computed for
	fonts   map[fontKey]*container.Font
	list    []displayItem
	width   int
	height  int
	rootPx  float64   // font size of the root element
	canvas  gfx.Color // background of the whole canvas
	noBg    *styledtree.StyNode
	marker  *pendingMarker
	ordinal int // number of the next list item
}

// NewDocument prepares an HTML document for layout with fonts and drawing
// services of c. The document is laid out by Layout.
func NewDocument(src *htmlinput.Document, c *container.Container) (*Document, error) {
	if src == nil || src.Root == nil || c == nil {
		return nil, core.Error(core.EINVALID, "document and container must not be nil")
	}
	return &Document{
		src:     src,
		c:       c,
		styledW: -1,
		width:   -1,
		fonts:   make(map[fontKey]*container.Font),
	}, nil
}

// Load reads an HTML file and prepares it for layout.
func Load(path string, c *container.Container) (*Document, error) {
	src, err := htmlinput.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return NewDocument(src, c)
}

// Title returns the title of the document.
func (d *Document) Title() string {
	return d.src.Title
}

// Height returns the height of the document as of the last layout.
func (d *Document) Height() int {
	return d.height
}

// Background returns the color of the canvas, which may be transparent.
func (d *Document) Background() gfx.Color {
	return d.canvas
}

// ItemCount returns the number of drawing operations of the layout.
func (d *Document) ItemCount() int {
	return len(d.list)
}

// Layout lays out the document for a viewport width and returns the
// document height. Media queries are evaluated for the new width.
func (d *Document) Layout(width int) int {
	if width < 0 {
		width = 0
	}
	media := d.c.MediaFeatures()
	d.c.SetViewport(width, media.Height)
	if width != d.styledW {
		d.style(width)
	}
	d.width = width
	d.list = d.list[:0]
	d.marker = nil
	d.canvas, d.noBg = gfx.Transparent, nil
	html := d.root.Find("html")
	if html == nil {
		d.height = 0
		return 0
	}
	d.propagateBackground(html)
	bottom, margin := d.block(html, 0, 0, width, 0)
	d.height = bottom + dimen.Max(margin, 0)
	tracer().Infof("layout for width %d: height %d, %d items", width, d.height, len(d.list))
	return d.height
}

func (d *Document) style(width int) {
	media := d.c.MediaFeatures()
	b := styledtree.NewBuilder(styledtree.Media{Type: media.Type, Width: width, Height: media.Height})
	for _, sheet := range d.src.StyleSheets {
		if err := b.AddStyleSheet(sheet); err != nil {
			tracer().Errorf("skipping style sheet: %v", err)
		}
	}
	defaults := styledtree.DefaultsFrom(float64(d.c.DefaultFontSize()), d.c.DefaultFontName())
	if lang, _ := d.c.Language(); lang != "" {
		defaults.Lang = lang
	}
	d.root = b.Build(d.src.Root, defaults)
	d.styledW = width
	d.rootPx = float64(d.c.DefaultFontSize())
	if html := d.root.Find("html"); html != nil {
		d.rootPx = float64(TextStyleOf(html, d.c.DefaultFontSize()).Size)
	}
}

// propagateBackground takes the canvas background from the root element
// or, if that has none, from the body, which then does not paint it.
func (d *Document) propagateBackground(html *styledtree.StyNode) {
	fg := TextStyleOf(html, d.c.DefaultFontSize()).Color
	if d.canvas = BoxColorsOf(html, fg).Background; d.canvas.A > 0 {
		d.noBg = html
		return
	}
	if body := html.Find("body"); body != nil {
		if d.canvas = BoxColorsOf(body, fg).Background; d.canvas.A > 0 {
			d.noBg = body
		}
	}
}

// Draw draws the document with its origin at (x, y). Only items
// overlapping clip are drawn.
func (d *Document) Draw(s gfx.Surface, x, y int, clip dimen.Rect) {
	if d.canvas.A > 0 {
		d.c.DrawBackground(s, clip, d.canvas)
	}
	n := 0
	for _, item := range d.list {
		if item.bounds().Translate(x, y).Overlaps(clip) {
			item.draw(d.c, s, x, y)
			n++
		}
	}
	tracer().Debugf("drew %d of %d items for clip %v", n, len(d.list), clip)
}

// Close releases the fonts of the document.
func (d *Document) Close() {
	for k, f := range d.fonts {
		d.c.DeleteFont(f)
		delete(d.fonts, k)
	}
	d.list = nil
}

// --- Fonts -----------------------------------------------------------------

type fontKey struct {
	families string
	size     int
	weight   int
	style    fontregistry.Style
	deco     text.Decoration
}

// font returns a font for a text style. If the requested families are not
// available, the container's default family and then the built-in fallback
// font are tried, finally dropping weight and style. The result may be nil.
func (d *Document) font(ts TextStyle) *container.Font {
	key := fontKey{ts.Families, ts.Size, ts.Weight, ts.Style, ts.Decoration}
	if f, ok := d.fonts[key]; ok {
		return f
	}
	attempts := []fontKey{
		key,
		{d.c.DefaultFontName(), ts.Size, ts.Weight, ts.Style, ts.Decoration},
		{font.FallbackFamily, ts.Size, ts.Weight, ts.Style, ts.Decoration},
		{font.FallbackFamily, ts.Size, 400, fontregistry.StyleNormal, ts.Decoration},
	}
	var f *container.Font
	for _, a := range attempts {
		var err error
		f, _, err = d.c.CreateFont(a.families, a.size, a.weight, a.style, a.deco)
		if err != nil {
			tracer().Errorf("font %q: %v", a.families, err)
		}
		if f != nil {
			break
		}
	}
	if f == nil {
		tracer().Errorf("no font for %q at %dpx", ts.Families, ts.Size)
		return nil
	}
	d.fonts[key] = f
	return f
}
