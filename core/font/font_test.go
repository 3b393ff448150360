package font

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func TestNormalizeFontname(t *testing.T) {
	for k, v := range map[string]string{
		"Clarendon-Bold.ttf": "clarendon-bold",
		" Gill Sans MT.otf ": "gill_sans_mt",
		"Tinos":              "tinos",
		".hidden":            ".hidden",
	} {
		if n := NormalizeFontname(k); n != v {
			t.Errorf("expected %q to normalize to %q, is %q", k, v, n)
		}
	}
}

func TestLoadFontFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	fontpath := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	if err := os.WriteFile(fontpath, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}
	f, err := LoadScalableFont(fontpath, 0)
	if err != nil {
		t.Fatal(err)
	}
	if f.Fontname != "Go" {
		t.Errorf("expected font family to be Go, is %q", f.Fontname)
	}
	if _, ok := f.Face.NominalGlyph('x'); !ok {
		t.Errorf("expected font to map 'x'")
	}
	if _, err = LoadScalableFont(fontpath, 3); core.Code(err) != core.EINVALID {
		t.Errorf("expected EINVALID for out-of-range collection index, have %v", err)
	}
	if _, err = LoadScalableFont(fontpath+".missing", 0); core.Code(err) != core.EMISSING {
		t.Errorf("expected EMISSING for missing file, have %v", err)
	}
}

func TestParseGarbage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	_, err := ParseScalableFont([]byte("this is not a font at all"), 0)
	if core.Code(err) != core.EINVALID {
		t.Errorf("expected EINVALID for garbage font data, have %v", err)
	}
}

func TestScaledFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	f := FallbackFont()
	if f != FallbackFont() {
		t.Errorf("expected fallback font to be loaded once")
	}
	scaled, err := f.ScaleTo(16)
	if err != nil {
		t.Fatal(err)
	}
	defer scaled.Close()
	m := scaled.Metrics()
	if Ceil(m.Ascent) <= 0 || Ceil(m.Descent) <= 0 {
		t.Errorf("expected positive ascent and descent, have %v / %v", m.Ascent, m.Descent)
	}
	if Ceil(m.Ascent) > 16 {
		t.Errorf("ascent of 16px font too large: %v", m.Ascent)
	}
	xh := scaled.RuneHeight('x')
	if xh <= 0 || xh >= float64(Ceil(m.Ascent)) {
		t.Errorf("expected x-height in (0, ascent), is %.2f", xh)
	}
	gid, ok := f.Face.NominalGlyph('x')
	if !ok {
		t.Fatalf("fallback font does not contain 'x'")
	}
	segs, ok := scaled.GlyphOutline(uint32(gid))
	if !ok || len(segs) == 0 {
		t.Fatalf("expected outline for glyph 'x'")
	}
	if segs[0].Op != sfnt.SegmentOpMoveTo {
		t.Errorf("expected outline to start with a move-to")
	}
	again, _ := scaled.GlyphOutline(uint32(gid))
	if &again[0] != &segs[0] {
		t.Errorf("expected outline to be cached")
	}
	if _, err := f.ScaleTo(0); core.Code(err) != core.EINVALID {
		t.Errorf("expected EINVALID for zero pixel size")
	}
}

func TestFixedRounding(t *testing.T) {
	if Round(96) != 2 || Round(95) != 1 || Round(-96) != -2 {
		t.Errorf("unexpected rounding of 26.6 values")
	}
	if Ceil(65) != 2 || Ceil(64) != 1 || Ceil(-65) != -1 {
		t.Errorf("unexpected ceiling of 26.6 values")
	}
}
