package resources

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCacheDirPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.resources")
	defer teardown()
	//
	if runtime.GOOS != "linux" {
		t.Skip("cache dir test relies on XDG_CACHE_HOME")
	}
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	conf := testconfig.Conf{"app-key": "htmlpix-test"}
	cachedir, err := CacheDirPath(conf, "fonts")
	if err != nil {
		t.Fatal(err)
	}
	if cachedir != filepath.Join(base, "htmlpix-test", "fonts") {
		t.Errorf("unexpected cache dir %s", cachedir)
	}
	if info, err := os.Stat(cachedir); err != nil || !info.IsDir() {
		t.Errorf("expected cache dir to be created")
	}
}
