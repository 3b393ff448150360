package text

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/htmlpix/backend"
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/backend/gfx/testimages"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/htmlpix/core/font"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadGo(t *testing.T, px int, opts ...Option) *FontInstance {
	fi, err := Load(font.FallbackPath, 0, px, opts...)
	require.NoError(t, err)
	return fi
}

func TestLoadFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	_, err := Load(filepath.Join(t.TempDir(), "nosuchfont.ttf"), 0, 16)
	assert.Equal(t, core.EMISSING, core.Code(err))
	garbage := filepath.Join(t.TempDir(), "garbage.ttf")
	require.NoError(t, os.WriteFile(garbage, []byte("this is not a font"), 0644))
	_, err = Load(garbage, 0, 16)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = Load(font.FallbackPath, 0, 0)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = Load(font.FallbackPath, 0, 12, WithCacheSize(0))
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestShapeIsCachedAndDeterministic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	fi := loadGo(t, 16)
	defer fi.Close()
	first := fi.Shape("Hello World")
	second := fi.Shape("Hello World")
	assert.Equal(t, first, second)
	assert.Equal(t, 11, len(first.Glyphs))
	stats := fi.Stats()
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Hits)
	//
	other := loadGo(t, 16, WithCacheSize(1))
	defer other.Close()
	assert.Equal(t, first, other.Shape("Hello World"), "independent instances shape alike")
}

func TestTextWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	fi := loadGo(t, 16)
	defer fi.Close()
	full := fi.TextWidth("This is some english text")
	part := fi.TextWidth("some english")
	assert.Greater(t, full, part)
	assert.Greater(t, part, 0)
	assert.Less(t, fi.TextWidth("iii"), fi.TextWidth("mmm"))
	assert.Equal(t, 0, fi.TextWidth(""))
	big := loadGo(t, 32)
	defer big.Close()
	w := big.TextWidth("some english")
	if w < 2*part-2 || w > 2*part+2 {
		t.Errorf("expected doubling the size to double the width, have %d and %d", part, w)
	}
}

func TestMetricsAreMemoized(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	fi := loadGo(t, 16)
	defer fi.Close()
	assert.False(t, fi.computed)
	m := fi.Metrics()
	assert.True(t, fi.computed)
	assert.Equal(t, m, fi.Metrics())
	t.Logf("metrics of Go at 16px = %+v", m)
	assert.True(t, m.Ascent >= 12 && m.Ascent <= 17, "ascent")
	assert.True(t, m.Descent <= -2 && m.Descent >= -6, "descent")
	assert.True(t, m.Height >= m.Ascent-m.Descent-1, "height")
	assert.True(t, m.XHeight >= 6 && m.XHeight <= 10, "x-height")
}

func TestClose(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	fi := loadGo(t, 12)
	fi.Shape("x")
	assert.NoError(t, fi.Close())
	assert.NoError(t, fi.Close())
	assert.True(t, fi.Closed())
	assert.Empty(t, fi.Shape("x").Glyphs)
	assert.Nil(t, fi.Outliner())
}

func TestDrawIsTranslationInvariant(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	fi := loadGo(t, 16)
	defer fi.Close()
	for _, kind := range backend.Kinds() {
		a, err := backend.NewOffscreen(kind, gfx.RGBA32, 200, 60)
		require.NoError(t, err)
		b, _ := backend.NewOffscreen(kind, gfx.RGBA32, 200, 60)
		for _, s := range []gfx.Surface{a, b} {
			s.SetColor(gfx.White)
			s.Clear()
		}
		fi.Draw("Hello World", a, 5, 20, gfx.Black)
		fi.Draw("Hello World", b, 5+31, 20+17, gfx.Black)
		ink := testimages.Ink(a.Pixels(), a.Pixels().Bounds(), gfx.White)
		assert.Greater(t, ink, 50, "backend %s", kind)
		testimages.Dump(t, a.Pixels(), "hello-"+kind.String())
		for y := 0; y < 60-17; y++ {
			for x := 0; x < 200-31; x++ {
				if a.Pixels().Pixel(x, y) != b.Pixels().Pixel(x+31, y+17) {
					t.Fatalf("backend %s: pixel (%d,%d) differs after translation", kind, x, y)
				}
			}
		}
		// ink stays within the text's ink rectangle
		r := InkRect(fi.Shape("Hello World").Extents, 5, 20)
		outside := ink - testimages.Ink(a.Pixels(), r, gfx.White)
		assert.Equal(t, 0, outside, "backend %s", kind)
	}
}

func TestDecorations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	d := ParseDecoration("underline dotted red line-through")
	assert.Equal(t, DecorationUnderline|DecorationStrikeout, d)
	assert.Equal(t, "underline line-through", d.String())
	assert.Equal(t, "none", ParseDecoration("none").String())
	m := Metrics{Ascent: 15, Descent: -4, Height: 18, XHeight: 8}
	lines := DefaultDecorationConfig().Lines(d, m)
	require.Len(t, lines, 2)
	assert.Equal(t, 3.0, lines[0].Center)
	assert.Equal(t, -4.0, lines[1].Center)
	conf := testconfig.Conf{
		"font.underline-offset":    "2",
		"font.underline-thickness": 1,
		"font.strikeout-position":  "half",
	}
	dc := DecorationConfigFrom(conf)
	assert.Equal(t, 2.0, dc.UnderlineOffset)
	assert.Equal(t, 1.0, dc.UnderlineThickness)
	assert.Equal(t, 0.5, dc.StrikeoutPosition)
}

// Tinos is metric compatible to Times New Roman and installed on many
// Linux systems.
func TestTinosScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	path, err := findfont.Find("Tinos-Regular.ttf")
	if err != nil {
		t.Skip("font Tinos not installed")
	}
	fi, err := Load(path, 0, 16)
	require.NoError(t, err)
	defer fi.Close()
	assert.Equal(t, 155, fi.TextWidth("This is some english text"))
	assert.Equal(t, 82, fi.TextWidth("some english"))
	assert.Equal(t, Metrics{Ascent: 15, Descent: -4, Height: 18, XHeight: 8}, fi.Metrics())
	s, err := backend.NewOffscreen(gfx.Raster, gfx.RGB24, 250, 50)
	require.NoError(t, err)
	s.SetColor(gfx.White)
	s.Clear()
	fi.Draw("This is some english text", s, 0, 30, gfx.Black)
	assert.Greater(t, testimages.Ink(s.Pixels(), dimen.R(0, 0, 250, 50), gfx.White), 100)
}
