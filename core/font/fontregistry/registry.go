package fontregistry

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/font"
	"github.com/npillmayer/htmlpix/core/locate/resources"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/gofont/goregular"
)

// Style is the slant of a font.
type Style = gotext.Style

// Font styles. Oblique fonts are treated as italic ones.
const (
	StyleNormal = gotext.StyleNormal
	StyleItalic = gotext.StyleItalic
)

// WeightTolerance is the maximum distance between a requested font weight
// and the weight of a resolved font for the weight to count as honoured.
// Bold requests are honoured by any bold face, see WeightMatches.
const WeightTolerance = 50

// boldWeight is the lightest weight counting as bold. Many bold faces are
// described as semi-bold, e.g. Go Bold with weight 600.
const boldWeight = 600

// WeightMatches is true if a face of weight actual honours a request for
// weight requested. This is the case if both are within WeightTolerance, or
// if both are bold. The matcher already prefers heavier faces for requests
// above 500, as CSS font matching does.
func WeightMatches(requested, actual int) bool {
	if d := actual - requested; d <= WeightTolerance && d >= -WeightTolerance {
		return true
	}
	return requested >= boldWeight && actual >= boldWeight
}

// Location locates a font within a font file.
type Location struct {
	Path  string // file path, or font.FallbackPath
	Index int    // index within a collection
}

func (loc Location) String() string {
	if loc.Index == 0 {
		return loc.Path
	}
	return fmt.Sprintf("%s#%d", loc.Path, loc.Index)
}

// MatchMask flags the criteria of a font request a resolved font does not
// satisfy. A mask of 0 denotes a perfect match.
type MatchMask uint8

// Match flags
const (
	FamilyMismatch MatchMask = 1 << iota
	StyleMismatch
	SizeMismatch
	WeightMismatch
)

func (m MatchMask) String() string {
	if m == 0 {
		return "match"
	}
	var s []string
	for i, name := range []string{"family", "style", "size", "weight"} {
		if m&(1<<i) != 0 {
			s = append(s, name)
		}
	}
	return "mismatch(" + strings.Join(s, "|") + ")"
}

// Defaults are substituted for unspecified parts of a font request.
type Defaults struct {
	Family string
	Size   int // pixels
	Weight int
	Style  Style
}

// Library is a type for holding information about fonts available to an
// application. Create libraries with NewLibrary; there is no global instance,
// so tests and applications may hold independent libraries.
type Library struct {
	sync.Mutex
	conf     schuko.Configuration
	fontmap  *fontscan.FontMap
	defaults Defaults
	aliases  map[string][]string          // normalized name → families
	families map[string]map[Location]bool // normalized family → locations of added fonts
	names    map[string]string            // normalized family → display name
}

// NewLibrary creates a font library. It always contains the built-in
// fallback font, family name font.FallbackFamily.
//
// Configuration keys used are `html.default-font` and
// `html.default-font-size` (pixels).
func NewLibrary(conf schuko.Configuration) *Library {
	lib := &Library{
		conf:     conf,
		fontmap:  fontscan.NewFontMap(traceLogger{}),
		aliases:  make(map[string][]string),
		families: make(map[string]map[Location]bool),
		names:    make(map[string]string),
		defaults: Defaults{
			Family: font.FallbackFamily,
			Size:   16,
			Weight: 400,
			Style:  StyleNormal,
		},
	}
	if conf != nil {
		if fam := conf.GetString("html.default-font"); fam != "" {
			lib.defaults.Family = fam
		}
		if size := conf.GetInt("html.default-font-size"); size > 0 {
			lib.defaults.Size = size
		}
	}
	err := lib.fontmap.AddFont(bytes.NewReader(goregular.TTF), font.FallbackPath, font.FallbackFamily)
	if err != nil {
		panic("cannot register fallback font") // this cannot happen
	}
	lib.remember(font.FallbackFamily, Location{Path: font.FallbackPath})
	return lib
}

// Defaults returns the defaults used for unspecified parts of font requests.
func (lib *Library) Defaults() Defaults {
	lib.Lock()
	defer lib.Unlock()
	return lib.defaults
}

// SetDefaults replaces the defaults of a library. Zero fields are ignored.
func (lib *Library) SetDefaults(d Defaults) {
	lib.Lock()
	defer lib.Unlock()
	lib.setDefaults(d)
}

func (lib *Library) setDefaults(d Defaults) {
	if d.Family != "" {
		lib.defaults.Family = d.Family
	}
	if d.Size > 0 {
		lib.defaults.Size = d.Size
	}
	if d.Weight > 0 {
		lib.defaults.Weight = d.Weight
	}
	if d.Style != 0 {
		lib.defaults.Style = d.Style
	}
}

// SetAlias makes a name stand for a list of families, e.g. "serif" for
// "Tinos, Liberation Serif".
func (lib *Library) SetAlias(name string, families ...string) {
	lib.Lock()
	defer lib.Unlock()
	lib.aliases[gotext.NormalizeFamily(name)] = families
}

// AddFontFile adds a single font file (all fonts in case of a collection).
// If family is non-empty, it overrides the family name found in the file.
// A bare file name not present in the current directory is looked up among
// the fonts installed on the system, e.g. "Tinos-Regular.ttf" or "Tinos".
func (lib *Library) AddFontFile(path string, family string) error {
	path, err := locateFontFile(path)
	if err != nil {
		return err
	}
	faces, err := readFontFile(path)
	if err != nil {
		return err
	}
	lib.Lock()
	defer lib.Unlock()
	lib.addFaces(faces, path, family)
	return nil
}

// locateFontFile returns name if it is an existing file. Otherwise a bare file
// name is resolved among the system fonts.
func locateFontFile(name string) (string, error) {
	_, err := os.Stat(name)
	if err == nil {
		return name, nil
	}
	if filepath.Base(name) != name {
		return "", core.WrapError(err, core.EMISSING, "cannot read font file %s", name)
	}
	path, err := resources.ResolveFontFile(name).Path()
	if err != nil {
		return "", err
	}
	tracer().Infof("font file %s found at %s", name, path)
	return path, nil
}

func readFontFile(path string) ([]*gotext.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", path)
	}
	faces, err := gotext.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font file %s", path)
	}
	return faces, nil
}

func (lib *Library) addFaces(faces []*gotext.Face, path string, family string) {
	gstyle, gweight := GuessStyleAndWeight(path)
	for i, face := range faces {
		desc := face.Describe()
		if family != "" {
			desc.Family = family
		}
		// some fonts carry their aspect in the file name only
		if desc.Aspect.Style == StyleNormal && desc.Aspect.Weight == gotext.WeightNormal {
			desc.Aspect.Style, desc.Aspect.Weight = gstyle, gweight
		}
		loc := Location{Path: path, Index: i}
		lib.fontmap.AddFace(face, fontscan.Location{File: path, Index: uint16(i)}, desc)
		lib.remember(desc.Family, loc)
		tracer().Debugf("library stores font %s as %s (%v)", loc, desc.Family, desc.Aspect)
	}
}

func (lib *Library) remember(family string, loc Location) {
	key := gotext.NormalizeFamily(family)
	if lib.families[key] == nil {
		lib.families[key] = make(map[Location]bool)
		lib.names[key] = family
	}
	lib.families[key][loc] = true
}

// AddFontDir walks a directory tree and adds every font file found.
// Files which cannot be parsed are skipped. A missing directory results in
// an error with code core.EMISSING.
func (lib *Library) AddFontDir(dir string) error {
	files, err := resources.FontFiles(dir)
	if err != nil {
		return err
	}
	lib.addFontFiles(files)
	return nil
}

// addFontFiles adds font files, skipping the ones which cannot be read.
func (lib *Library) addFontFiles(files []string) {
	lib.Lock()
	defer lib.Unlock()
	for _, f := range files {
		faces, err := readFontFile(f)
		if err != nil {
			tracer().Infof("skipping font file %s: %v", f, err)
			continue
		}
		lib.addFaces(faces, f, "")
	}
}

// UseSystemFonts makes the fonts installed on the system available. Scanning
// the system fonts is expensive; an index is kept in cacheDir. If cacheDir is
// empty, a directory in the user's cache folder is used.
func (lib *Library) UseSystemFonts(cacheDir string) error {
	if cacheDir == "" {
		var err error
		if cacheDir, err = resources.CacheDirPath(lib.conf, "fonts"); err != nil {
			return err
		}
	}
	lib.Lock()
	defer lib.Unlock()
	if err := lib.fontmap.UseSystemFonts(cacheDir); err != nil {
		return core.WrapError(err, core.EMISSING, "cannot scan system fonts")
	}
	return nil
}

// Resolve finds the best font for a request and returns its location
// together with a mask of the criteria the font does not satisfy.
//
// families is a comma-separated list of family names, as in CSS. Quotes are
// stripped and aliases are expanded. An empty list denotes the default
// family, a weight of 0 denotes normal weight and a style of 0 the normal
// style. A non-positive pixelSize is replaced by the default size and
// reported as SizeMismatch.
//
// Generic CSS families (serif, sans-serif, monospace, …) which have not been
// aliased accept whichever font the matcher substitutes for them.
func (lib *Library) Resolve(families string, pixelSize, weight int, style Style) (Location, MatchMask) {
	lib.Lock()
	defer lib.Unlock()
	var mask MatchMask
	if pixelSize <= 0 {
		mask |= SizeMismatch
	}
	if weight <= 0 {
		weight = lib.defaults.Weight
	}
	if style == 0 {
		style = StyleNormal
	}
	list := lib.expandFamilies(families)
	query := fontscan.Query{
		Families: list,
		Aspect: gotext.Aspect{
			Style:   style,
			Weight:  gotext.Weight(weight),
			Stretch: gotext.StretchNormal,
		},
	}
	lib.fontmap.SetQuery(query)
	lib.fontmap.SetScript(language.Latin)
	face := lib.fontmap.ResolveFace('x')
	if face == nil {
		tracer().Errorf("font library is empty")
		return Location{}, mask | FamilyMismatch | StyleMismatch | WeightMismatch
	}
	fsloc := lib.fontmap.FontLocation(face.Font)
	family, aspect := lib.fontmap.FontMetadata(face.Font)
	if !familyMatches(family, list) {
		mask |= FamilyMismatch
	}
	if aspect.Style != style {
		mask |= StyleMismatch
	}
	if !WeightMatches(weight, int(aspect.Weight)) {
		mask |= WeightMismatch
	}
	loc := Location{Path: fsloc.File, Index: int(fsloc.Index)}
	tracer().Debugf("font request %q %dpx %d %v → %s %s", families, pixelSize, weight, style, loc, mask)
	return loc, mask
}

var genericFamilies = map[string]bool{
	"serif": true, "sans-serif": true, "monospace": true, "cursive": true,
	"fantasy": true, "system-ui": true, "math": true, "emoji": true,
}

func familyMatches(family string, list []string) bool {
	family = gotext.NormalizeFamily(family)
	for _, f := range list {
		if genericFamilies[f] || f == family {
			return true
		}
	}
	return false
}

// expandFamilies splits a CSS family list and replaces aliases (one level).
// The resulting family names are normalized.
func (lib *Library) expandFamilies(families string) []string {
	var list []string
	for _, f := range SplitFamilies(families) {
		if alias, ok := lib.aliases[gotext.NormalizeFamily(f)]; ok {
			for _, a := range alias {
				list = append(list, gotext.NormalizeFamily(a))
			}
			continue
		}
		list = append(list, gotext.NormalizeFamily(f))
	}
	if len(list) == 0 {
		list = append(list, gotext.NormalizeFamily(lib.defaults.Family))
	}
	return list
}

// SplitFamilies splits a CSS font-family list. Quotes and surrounding space
// are removed, empty entries dropped.
func SplitFamilies(families string) []string {
	var list []string
	for _, f := range strings.Split(families, ",") {
		f = strings.TrimSpace(f)
		f = strings.Trim(f, `"'`)
		f = strings.TrimSpace(f)
		if f != "" {
			list = append(list, f)
		}
	}
	return list
}

// Families returns the (display) names of all families added to the library,
// sorted. Fonts made available by UseSystemFonts are not included.
func (lib *Library) Families() []string {
	lib.Lock()
	defer lib.Unlock()
	names := make([]string, 0, len(lib.names))
	for _, name := range lib.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LogFontList is a helper function to dump the list of known fonts and
// aliases in a library to the trace-file (log-level Info).
func (lib *Library) LogFontList() {
	lib.Lock()
	defer lib.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for k, locs := range lib.families {
		for loc := range locs {
			tracer().Infof("font [%s] = %v", lib.names[k], loc)
		}
	}
	for k, v := range lib.aliases {
		tracer().Infof("alias [%s] = %v", k, v)
	}
	tracer().Infof("defaults = %+v", lib.defaults)
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}
