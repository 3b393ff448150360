package resources

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/schuko"
)

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key, taken as `app-key` from the configuration.
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(conf schuko.Configuration, subfolders ...string) (string, error) {
	appkey := "htmlpix"
	if conf != nil && conf.GetString("app-key") != "" {
		appkey = conf.GetString("app-key")
	} else {
		tracer().Infof("application key is not set, using %q", appkey)
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "no user cache directory")
	}
	subs := filepath.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appkey, subs)
	tracer().Infof("caching in %s", cachedir)
	_, err = os.Stat(cachedir)
	if os.IsNotExist(err) {
		err = os.MkdirAll(cachedir, 0755)
		if err != nil {
			return "", core.WrapError(err, core.EINVALID,
				"cache path cannot be created: %s", cachedir)
		}
	}
	return cachedir, nil
}
