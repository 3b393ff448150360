package fontregistry

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	gotext "github.com/go-text/typesetting/font"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/font"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type sw struct {
	s Style
	w gotext.Weight
}

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	for k, v := range map[string]sw{
		"fonts/Clarendon-bold.ttf":               {StyleNormal, gotext.WeightBold},
		"Microsoft/Gill Sans MT Bold Italic.ttf": {StyleItalic, gotext.WeightBold},
		"Cambria Math.ttf":                       {StyleNormal, gotext.WeightNormal},
		"Tinos-Italic.ttf":                       {StyleItalic, gotext.WeightNormal},
	} {
		style, weight := GuessStyleAndWeight(k)
		t.Logf("style = %d, weight = %g", style, weight)
		if style != v.s || weight != v.w {
			t.Errorf("expected different style or weight for %s", k)
		}
	}
}

func TestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	if !Matches("fonts/Clarendon-bold.ttf",
		"clarendon", StyleNormal, gotext.WeightBold) {
		t.Errorf("expected match for Clarendon, haven't")
	}
	if !Matches("Microsoft/Gill Sans MT Bold Italic.ttf",
		"gill sans", StyleItalic, gotext.WeightBold) {
		t.Errorf("expected match for Gill, haven't")
	}
	if Matches("Cambria Math.ttf", "cambria", StyleItalic, gotext.WeightNormal) {
		t.Errorf("expected no match for Cambria Math in italic")
	}
}

func TestCSSKeywords(t *testing.T) {
	for _, c := range []struct {
		s         string
		inherited int
		w         int
	}{
		{"bold", 400, 700}, {"normal", 700, 400}, {"bolder", 400, 700},
		{"bolder", 700, 900}, {"lighter", 700, 400}, {"300", 400, 300},
		{"heavy", 500, 500},
	} {
		w, _ := ParseFontWeight(c.s, c.inherited)
		assert.Equal(t, c.w, w, "font-weight %s from %d", c.s, c.inherited)
	}
	style, ok := ParseFontStyle("oblique 10deg")
	assert.True(t, ok)
	assert.Equal(t, StyleItalic, style)
	_, ok = ParseFontStyle("wobbly")
	assert.False(t, ok)
}

func TestWeightMatches(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	assert.True(t, WeightMatches(400, 400))
	assert.True(t, WeightMatches(400, 450))
	assert.True(t, WeightMatches(700, 600), "semi-bold serves bold")
	assert.True(t, WeightMatches(600, 900))
	assert.False(t, WeightMatches(700, 400))
	assert.False(t, WeightMatches(400, 600))
	assert.False(t, WeightMatches(300, 400))
	faces, err := gotext.ParseTTC(bytes.NewReader(gobold.TTF))
	require.NoError(t, err)
	w := int(faces[0].Describe().Aspect.Weight)
	assert.True(t, WeightMatches(700, w), "Go Bold has weight %d", w)
}

func TestSplitFamilies(t *testing.T) {
	list := SplitFamilies(` "Times New Roman", 'Tinos' ,, serif `)
	assert.Equal(t, []string{"Times New Roman", "Tinos", "serif"}, list)
	assert.Empty(t, SplitFamilies(" , "))
}

func TestResolveFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	lib := NewLibrary(testconfig.Conf{})
	loc, mask := lib.Resolve("Go", 16, 400, StyleNormal)
	assert.Equal(t, MatchMask(0), mask, "mask = %s", mask)
	assert.Equal(t, font.FallbackPath, loc.Path)
	//
	_, mask = lib.Resolve("NoSuchFamily", 16, 400, StyleNormal)
	assert.NotZero(t, mask&FamilyMismatch, "expected family mismatch, mask = %s", mask)
	//
	_, mask = lib.Resolve("'NoSuchFamily', Go", 16, 0, 0)
	assert.Equal(t, MatchMask(0), mask, "expected second family to match, mask = %s", mask)
	//
	_, mask = lib.Resolve("Go", 16, 700, StyleNormal)
	assert.Equal(t, WeightMismatch, mask, "mask = %s", mask)
	//
	_, mask = lib.Resolve("Go", 16, 400, StyleItalic)
	assert.Equal(t, StyleMismatch, mask, "mask = %s", mask)
	//
	_, mask = lib.Resolve("Go", 0, 400, StyleNormal)
	assert.Equal(t, SizeMismatch, mask, "mask = %s", mask)
}

func TestLibrariesAreIndependent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Go-Bold.ttf"), gobold.TTF, 0644))
	lib1 := NewLibrary(testconfig.Conf{})
	lib2 := NewLibrary(testconfig.Conf{})
	require.NoError(t, lib1.AddFontDir(dir))
	loc, mask := lib1.Resolve("Go", 16, 700, StyleNormal)
	assert.Equal(t, MatchMask(0), mask, "mask = %s", mask)
	assert.Equal(t, filepath.Join(dir, "Go-Bold.ttf"), loc.Path)
	_, mask = lib2.Resolve("Go", 16, 700, StyleNormal)
	assert.Equal(t, WeightMismatch, mask, "second library must not see bold font")
	//
	err := lib1.AddFontDir(filepath.Join(dir, "missing"))
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestFontConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	dir := t.TempDir()
	fontfile := filepath.Join(dir, "Body-Regular.ttf")
	require.NoError(t, os.WriteFile(fontfile, goregular.TTF, 0644))
	conf := fmt.Sprintf(`
[defaults]
family = "Body Text"
size = 18

[[font]]
file = %q
family = "Body Text"

[alias]
serif = [ "Body Text" ]
`, fontfile)
	lib := NewLibrary(testconfig.Conf{})
	require.NoError(t, lib.LoadConfig(conf, true))
	assert.Equal(t, 18, lib.Defaults().Size)
	assert.Contains(t, lib.Families(), "Body Text")
	//
	loc, mask := lib.Resolve("serif", 16, 400, StyleNormal)
	assert.Equal(t, MatchMask(0), mask, "mask = %s", mask)
	assert.Equal(t, fontfile, loc.Path)
	loc, mask = lib.Resolve("", 16, 0, 0)
	assert.Equal(t, MatchMask(0), mask, "mask = %s", mask)
	assert.Equal(t, fontfile, loc.Path)
	lib.LogFontList()
}

func TestFontConfigWarnings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	conf := `
dirs = [ "/no/such/font/dir" ]

[defaults]
colour = "red"
`
	lib := NewLibrary(testconfig.Conf{})
	err := lib.LoadConfig(conf, true)
	assert.Equal(t, core.EINVALID, core.Code(err), "expected complaint, have %v", err)
	assert.NoError(t, lib.LoadConfig(conf, false))
	//
	err = lib.LoadConfig("[defaults\nfamily = ", false)
	assert.Equal(t, core.EINVALID, core.Code(err), "syntax errors must always fail")
}

func TestFontConfigIsAtomic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	dir := t.TempDir()
	fontfile := filepath.Join(dir, "Body-Regular.ttf")
	require.NoError(t, os.WriteFile(fontfile, goregular.TTF, 0644))
	conf := fmt.Sprintf(`
dirs = [ %q, "/no/such/font/dir" ]

[defaults]
family = "Body Text"
size = 18

[[font]]
file = %q
family = "Body Text"

[alias]
body = [ "Body Text" ]
`, dir, fontfile)
	lib := NewLibrary(testconfig.Conf{})
	families := lib.Families()
	err := lib.LoadConfig(conf, true)
	assert.Equal(t, core.EINVALID, core.Code(err), "expected complaint, have %v", err)
	assert.Equal(t, families, lib.Families(), "nothing is added on failure")
	assert.Equal(t, 16, lib.Defaults().Size)
	assert.Equal(t, font.FallbackFamily, lib.Defaults().Family)
	_, mask := lib.Resolve("body", 16, 400, StyleNormal)
	assert.Equal(t, FamilyMismatch, mask, "alias must not be set")
	//
	require.NoError(t, lib.LoadConfig(conf, false))
	assert.Contains(t, lib.Families(), "Body Text")
	assert.Equal(t, 18, lib.Defaults().Size)
	loc, mask := lib.Resolve("body", 16, 400, StyleNormal)
	assert.Equal(t, MatchMask(0), mask, "mask = %s", mask)
	assert.Equal(t, fontfile, loc.Path)
}

func TestFontFileByName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.font")
	defer teardown()
	//
	dir := filepath.Join(t.TempDir(), "fonts")
	require.NoError(t, os.Mkdir(dir, 0755))
	fontfile := filepath.Join(dir, "Body-Regular.ttf")
	require.NoError(t, os.WriteFile(fontfile, goregular.TTF, 0644))
	conf := fmt.Sprintf(`
dirs = [ %q ]

[[font]]
file = "Body-Regular.ttf"
family = "Body Text"
`, dir)
	lib := NewLibrary(testconfig.Conf{})
	require.NoError(t, lib.LoadConfig(conf, true))
	loc, mask := lib.Resolve("Body Text", 16, 400, StyleNormal)
	assert.Equal(t, MatchMask(0), mask, "mask = %s", mask)
	assert.Equal(t, fontfile, loc.Path)
	//
	err := lib.AddFontFile("No-Such-Font-9f2c1.ttf", "")
	assert.Equal(t, core.EMISSING, core.Code(err))
	err = lib.AddFontFile(filepath.Join(dir, "Missing.ttf"), "")
	assert.Equal(t, core.EMISSING, core.Code(err))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Broken.ttf"), []byte("not a font"), 0644))
	err = lib.AddFontFile(filepath.Join(dir, "Broken.ttf"), "")
	assert.Equal(t, core.EINVALID, core.Code(err))
}
