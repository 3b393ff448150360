package resources

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/htmlpix/core"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	fontResourceType
	dirResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case fontResourceType:
		s = fmt.Sprintf("font not found: %s", res)
	case dirResourceType:
		s = fmt.Sprintf("directory not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, s)
}

// IsFontFile is a predicate: does a file name denote a font file we are able
// to load?
func IsFontFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return true
	}
	return false
}

// IsCollection is a predicate: does a file name denote a font collection?
func IsCollection(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".ttc", ".otc":
		return true
	}
	return false
}

// FontFiles walks a directory tree and returns the paths of all font files
// found. A missing or unreadable directory results in an error with code
// core.EMISSING.
func FontFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, NotFound(dir, dirResourceType)
	}
	var files []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			tracer().Infof("skipping %s: %v", p, err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && IsFontFile(d.Name()) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return files, core.WrapError(err, core.EMISSING, "cannot scan font directory %s", dir)
	}
	tracer().Debugf("found %d font files in %s", len(files), dir)
	return files, nil
}

// --- Fonts -----------------------------------------------------------------

// FontFilePromise is a promise for the path of a font file. The result is
// kept, i.e. every call returns the same path and error.
type FontFilePromise interface {
	Path() (string, error)
	PathContext(ctx context.Context) (string, error)
}

type fontLocator struct {
	done chan struct{} // closed when path and err are set
	path string
	err  error
}

func (loc *fontLocator) Path() (string, error) {
	return loc.PathContext(context.Background())
}

func (loc *fontLocator) PathContext(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-loc.done:
		return loc.path, loc.err
	}
}

// ResolveFontFile locates a font file by name. name may be an absolute path,
// a file name (with or without extension) or a font name. The directories
// in dirs are searched first, then the fonts installed on the system.
//
// Matching against file names is done case-insensitively and ignoring spaces,
// i.e. "Tinos Regular" will match "tinos-regular.ttf" as well as
// "TinosRegular.ttf".
func ResolveFontFile(name string, dirs ...string) FontFilePromise {
	loc := &fontLocator{done: make(chan struct{})}
	go func() {
		defer close(loc.done)
		loc.path, loc.err = findFontFile(name, dirs)
	}()
	return loc
}

func findFontFile(name string, dirs []string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", NotFound(name, fontResourceType)
		}
		return name, nil
	}
	pattern := fontFileKey(name)
	for _, dir := range dirs {
		files, err := FontFiles(dir)
		if err != nil {
			tracer().Infof("font directory %s not usable: %v", dir, err)
			continue
		}
		for _, f := range files {
			if fontFileKey(filepath.Base(f)) == pattern {
				tracer().Debugf("found font %s in %s", name, dir)
				return f, nil
			}
		}
	}
	fpath, err := findfont.Find(name) // try to find as system font
	if err != nil || fpath == "" {
		return "", NotFound(name, fontResourceType)
	}
	tracer().Debugf("%s is a system font", name)
	return fpath, nil
}

func fontFileKey(name string) string {
	name = strings.TrimSpace(name)
	if IsFontFile(name) {
		name = name[:len(name)-len(filepath.Ext(name))]
	}
	name = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(name)
	return strings.ToLower(name)
}
