package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.cli")
	defer teardown()
	//
	cmd, err := parseCommand("scroll 0 -20")
	require.NoError(t, err)
	assert.Equal(t, SCROLL, cmd.code)
	assert.Equal(t, []int{0, -20}, cmd.args)
	cmd, err = parseCommand("SAVE  out.png")
	require.NoError(t, err)
	assert.Equal(t, SAVE, cmd.code)
	assert.Equal(t, "out.png", cmd.arg)
	cmd, err = parseCommand("text Hello  世界")
	require.NoError(t, err)
	assert.Equal(t, TEXT, cmd.code)
	assert.Equal(t, "Hello 世界", cmd.arg)
	_, err = parseCommand("goto 1")
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = parseCommand("goto 1 x")
	assert.Error(t, err)
	_, err = parseCommand("jump")
	assert.Error(t, err)
	x, y, err := parsePair("3,-4")
	require.NoError(t, err)
	assert.Equal(t, [2]int{3, -4}, [2]int{x, y})
	_, _, err = parsePair("3")
	assert.Error(t, err)
}

const page = `<html><head><title>Test</title></head>
<body style="background-color: #ffffcc">
<h1>Heading</h1>
<div style="height: 400px; background-color: #336699"></div>
<p>Some text at the end.</p>
</body></html>`

func TestViewer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.cli")
	defer teardown()
	//
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte(page), 0644))
	v, err := newViewer(options{html: path, w: 120, h: 80, kind: gfx.Raster, conf: testconfig.Conf{}})
	require.NoError(t, err)
	defer v.close()
	assert.Equal(t, "Test", v.title())
	require.NoError(t, v.draw())
	pm, err := v.pixels()
	require.NoError(t, err)
	assert.Equal(t, gfx.Color{R: 0xff, G: 0xff, B: 0xcc, A: 0xff}, pm.Pixel(0, 0), "canvas")
	//
	require.NoError(t, v.scrollTo(0, 40))
	assert.Equal(t, 40, v.y)
	assert.Equal(t, gfx.Color{R: 0x33, G: 0x66, B: 0x99, A: 0xff}, pm.Pixel(60, 60))
	assert.Equal(t, 1, v.r.Stats().FullDraws)
	assert.Equal(t, 1, v.r.Stats().IncrementalDraws)
	require.NoError(t, v.scrollTo(-5, 10000))
	assert.Equal(t, 0, v.x)
	assert.Equal(t, v.doc.Height()-80, v.y, "scrolling stops at the end of the document")
	//
	out := filepath.Join(dir, "page.png")
	require.NoError(t, v.save(out))
	img, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
	//
	intp := &Intp{viewer: v}
	full := v.r.Stats().FullDraws
	quit, err := intp.execute(&Command{code: SIZE, args: []int{60, 40}})
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, 60*40*4, len(v.buf))
	assert.Equal(t, full+1, v.r.Stats().FullDraws, "new buffer")
	fonts := v.c.FontCount()
	data, px, err := intp.glyphs("ab 世")
	require.NoError(t, err)
	require.Len(t, data, 5)
	assert.Equal(t, []string{"'世'", "3", "3", "2"}, data[4], "wide character takes 2 cells")
	assert.Greater(t, px, 0)
	_, _, err = intp.glyphs("ab 世")
	require.NoError(t, err)
	assert.Equal(t, 1, intp.cells.Stats().Hits)
	assert.Equal(t, fonts, v.c.FontCount(), "measuring font is released")
	quit, _ = intp.execute(&Command{code: QUIT})
	assert.True(t, quit)
}

func TestViewerErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.cli")
	defer teardown()
	//
	_, err := newViewer(options{html: "page.html", w: 0, h: 10, kind: gfx.Raster})
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = newViewer(options{html: filepath.Join(t.TempDir(), "missing.html"), w: 10, h: 10, kind: gfx.Raster})
	assert.Error(t, err)
}
