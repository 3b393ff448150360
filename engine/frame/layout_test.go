package frame

import (
	"fmt"
	"testing"

	"github.com/npillmayer/htmlpix/backend"
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/backend/gfx/testimages"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/htmlpix/core/font/fontregistry"
	"github.com/npillmayer/htmlpix/engine/container"
	"github.com/npillmayer/htmlpix/engine/render"
	htmlinput "github.com/npillmayer/htmlpix/input/html"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ render.Document = &Document{}
var _ render.Layouter = &Document{}

func newDocument(t *testing.T, page string) (*Document, *container.Container) {
	conf := testconfig.Conf{}
	c := container.New(fontregistry.NewLibrary(conf), conf)
	src, err := htmlinput.ParseString(page)
	require.NoError(t, err)
	doc, err := NewDocument(src, c)
	require.NoError(t, err)
	return doc, c
}

func fills(doc *Document) []fillItem {
	var r []fillItem
	for _, item := range doc.list {
		if f, ok := item.(fillItem); ok {
			r = append(r, f)
		}
	}
	return r
}

func texts(doc *Document) []textItem {
	var r []textItem
	for _, item := range doc.list {
		if t, ok := item.(textItem); ok {
			r = append(r, t)
		}
	}
	return r
}

func TestBlocks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.layout")
	defer teardown()
	//
	doc, c := newDocument(t, `<html><body style="margin: 0">
	<div style="height: 50px; background-color: red; margin-bottom: 20px"></div>
	<div style="height: 30px; margin: 10px 5px 0; border-left: 2px solid blue"></div>
	</body></html>`)
	defer c.Close()
	defer doc.Close()
	h := doc.Layout(200)
	assert.Equal(t, 100, h, "50 + max(20, 10) + 30")
	assert.Equal(t, 100, doc.Height())
	f := fills(doc)
	require.Len(t, f, 2)
	assert.Equal(t, dimen.R(0, 0, 200, 50), f[0].rect)
	assert.Equal(t, gfx.Color{R: 0xff, A: 0xff}, f[0].color)
	assert.Equal(t, dimen.R(5, 70, 2, 30), f[1].rect, "left border")
	assert.Equal(t, gfx.Color{B: 0xff, A: 0xff}, f[1].color)
}

func TestCanvasBackground(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.layout")
	defer teardown()
	//
	doc, c := newDocument(t, `<html><head><style>
	body { background-color: #00ff00 }
	@media (max-width: 300px) { body { background-color: #0000ff } }
	</style></head><body><p>Hello</p></body></html>`)
	defer c.Close()
	defer doc.Close()
	doc.Layout(800)
	assert.Equal(t, gfx.Color{G: 0xff, A: 0xff}, doc.Background())
	assert.Empty(t, fills(doc), "body background is propagated to the canvas")
	doc.Layout(200)
	assert.Equal(t, gfx.Color{B: 0xff, A: 0xff}, doc.Background())
	assert.Equal(t, 200, c.MediaFeatures().Width)
}

const para = `<html><body><p>The quick brown fox jumps over the lazy dog.
The <b>quick</b> <u>brown</u> fox jumps<br>over the lazy dog.</p>
<pre>  indented
line</pre></body></html>`

func TestTextLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.layout")
	defer teardown()
	//
	doc, c := newDocument(t, para)
	defer c.Close()
	defer doc.Close()
	wide := doc.Layout(2000)
	words := texts(doc)
	require.Len(t, words, 20)
	assert.Equal(t, "The", words[0].text)
	assert.Equal(t, "  indented", words[18].text)
	assert.Equal(t, "brown ", words[11].text, "underline spans the space")
	first := words[0].rect
	assert.Equal(t, 8, first.X, "body margin")
	assert.Equal(t, words[9].rect.Y, first.Y, "same line")
	assert.Greater(t, words[14].rect.Y, first.Y, "forced break")
	assert.Greater(t, words[19].rect.Y, words[18].rect.Y, "preformatted lines")
	narrow := doc.Layout(120)
	assert.Greater(t, narrow, wide)
	assert.Len(t, texts(doc), 20)
	assert.Greater(t, texts(doc)[3].rect.Y, first.Y, "text is wrapped")
	for _, w := range texts(doc)[:18] {
		assert.LessOrEqual(t, w.rect.Right(), 120, "%q exceeds the line", w.text)
	}
	assert.Greater(t, c.FontCount(), 0)
	doc.Close()
	assert.Equal(t, 0, c.FontCount(), "documents release their fonts")
}

func TestListItems(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.layout")
	defer teardown()
	//
	doc, c := newDocument(t, `<html><body>
	<ul><li>one</li><li>two</li><li style="list-style-type: none">none</li></ul>
	<ol start="3"><li>three</li><li>four</li></ol>
	<ol style="list-style-type: upper-roman"><li>I</li></ol>
	</body></html>`)
	defer c.Close()
	defer doc.Close()
	doc.Layout(300)
	var markers []markerItem
	for _, item := range doc.list {
		if m, ok := item.(markerItem); ok {
			markers = append(markers, m)
		}
	}
	require.Len(t, markers, 2)
	assert.Equal(t, container.MarkerDisc, markers[0].marker)
	assert.Less(t, markers[0].rect.Right(), 8+40, "markers are outside the content")
	var labels []string
	for _, w := range texts(doc) {
		labels = append(labels, w.text)
	}
	assert.Equal(t, []string{"one", "two", "none", "3.", "three", "4.", "four", "I.", "I"}, labels)
	assert.Equal(t, "ab", counter(28, "lower-alpha"))
	assert.Equal(t, "mcmxciv", counter(1994, "lower-roman"))
	assert.Equal(t, "7", counter(7, "decimal"))
}

func TestDrawMatchesScrolledDraw(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.layout")
	defer teardown()
	//
	const w, h = 160, 90
	page := `<html><body style="background-color: #fffff0">
	<h1 style="background-color: rgba(0, 0, 255, 0.3)">Heading</h1>` + para[12:len(para)-14] + `
	<ul><li>one <s>struck</s></li><li>two</li></ul></body></html>`
	for _, kind := range backend.Kinds() {
		doc, c := newDocument(t, page)
		s, err := backend.NewSurface(kind)
		require.NoError(t, err)
		r := render.New(doc, s, gfx.White)
		buf := make([]byte, 4*w*h)
		for _, y := range []int{0, 7, 30, 29, 80, 150} {
			require.NoError(t, r.DrawHTML(buf, gfx.RGBA32, w, h, 4*w, 0, y))
			full, _ := backend.NewSurface(kind)
			ref := make([]byte, 4*w*h)
			require.NoError(t, render.New(doc, full, gfx.White).DrawHTML(ref, gfx.RGBA32, w, h, 4*w, 0, y))
			a, _ := gfx.NewPixmap(buf, gfx.RGBA32, w, h, 4*w)
			b, _ := gfx.NewPixmap(ref, gfx.RGBA32, w, h, 4*w)
			name := fmt.Sprintf("%s at %d", kind, y)
			if n, at := testimages.Diff(a, b, a.Bounds()); n > 0 {
				testimages.Dump(t, a, "scrolled-"+kind.String())
				t.Fatalf("%s: %d pixels differ, first at %v", name, n, at)
			}
			assert.Greater(t, testimages.Ink(a, a.Bounds(), gfx.Color{R: 0xff, G: 0xff, B: 0xf0, A: 0xff}), 0, name)
		}
		assert.Equal(t, 1, r.Stats().FullDraws)
		doc.Close()
		c.Close()
	}
}
