package fontregistry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	gotext "github.com/go-text/typesetting/font"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/locate/resources"
)

// fontConfig is the structure of a font configuration document:
//
//   dirs = [ "/usr/share/fonts/truetype/croscore" ]
//
//   [defaults]
//   family = "Tinos"
//   size   = 16
//   weight = 400
//   style  = "normal"
//
//   [[font]]
//   file   = "fonts/Body-Regular.ttf"
//   family = "Body Text"
//
//   [alias]
//   serif = [ "Tinos", "Liberation Serif" ]
//
// Top-level keys must precede all tables. Relative paths are interpreted
// relative to the directory given to LoadConfigFile, or to the current
// directory for LoadConfig. A font file may also be given by a bare name,
// e.g. "Tinos-Regular.ttf", to be found in dirs or among the system fonts.
type fontConfig struct {
	Dirs     []string `toml:"dirs"`
	Defaults struct {
		Family string `toml:"family"`
		Size   int    `toml:"size"`
		Weight int    `toml:"weight"`
		Style  string `toml:"style"`
	} `toml:"defaults"`
	Fonts []struct {
		File   string `toml:"file"`
		Family string `toml:"family"`
	} `toml:"font"`
	Alias map[string][]string `toml:"alias"`
}

// LoadConfigFile reads a font configuration document from a file.
// See LoadConfig.
func (lib *Library) LoadConfigFile(path string, complain bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot read font configuration %s", path)
	}
	return lib.loadConfig(string(data), filepath.Dir(path), complain)
}

// LoadConfig reads a font configuration document in TOML format. Syntax
// errors always result in an error with code core.EINVALID. Warnings about
// unknown keys, missing directories or missing font files result in an error
// only if complain is true, and the library is left unchanged; otherwise they
// are traced, and the rest of the configuration is applied.
//
// Font files given by a bare file name are searched in the configured
// directories and then among the system fonts if they are not found
// relative to the configuration.
func (lib *Library) LoadConfig(text string, complain bool) error {
	return lib.loadConfig(text, "", complain)
}

type configuredFont struct {
	path   string
	family string
	faces  []*gotext.Face
}

func (lib *Library) loadConfig(text string, basedir string, complain bool) error {
	var cfg fontConfig
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "syntax error in font configuration")
	}
	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, "unknown key "+key.String())
	}
	abs := func(p string) string {
		if basedir == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(basedir, p)
	}
	var dirs, files []string
	for _, dir := range cfg.Dirs {
		found, err := resources.FontFiles(abs(dir))
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		dirs = append(dirs, abs(dir))
		files = append(files, found...)
	}
	var fonts []configuredFont
	for _, f := range cfg.Fonts {
		if f.File == "" {
			warnings = append(warnings, "font entry without file")
			continue
		}
		path := abs(f.File)
		if _, err := os.Stat(path); err != nil && filepath.Base(f.File) == f.File {
			if path, err = resources.ResolveFontFile(f.File, dirs...).Path(); err != nil {
				warnings = append(warnings, err.Error())
				continue
			}
		}
		faces, err := readFontFile(path)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		fonts = append(fonts, configuredFont{path: path, family: f.Family, faces: faces})
	}
	d := Defaults{
		Family: cfg.Defaults.Family,
		Size:   cfg.Defaults.Size,
		Weight: cfg.Defaults.Weight,
	}
	if cfg.Defaults.Style != "" {
		var ok bool
		if d.Style, ok = ParseFontStyle(cfg.Defaults.Style); !ok {
			warnings = append(warnings, "unknown font style "+cfg.Defaults.Style)
		}
	}
	for _, w := range warnings {
		tracer().Infof("font configuration: %s", w)
	}
	if complain && len(warnings) > 0 {
		return core.Error(core.EINVALID, "font configuration: %s", strings.Join(warnings, "; "))
	}
	lib.addFontFiles(files)
	lib.Lock()
	defer lib.Unlock()
	for _, f := range fonts {
		lib.addFaces(f.faces, f.path, f.family)
	}
	for name, families := range cfg.Alias {
		lib.aliases[gotext.NormalizeFamily(name)] = families
	}
	lib.setDefaults(d)
	return nil
}
