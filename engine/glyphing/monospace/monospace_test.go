package monospace

import (
	"testing"

	"github.com/npillmayer/htmlpix/engine/glyphing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestMonospaceAdvance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.glyphs")
	defer teardown()
	//
	sh := Shaper(10)
	l := sh.Shape("ab 世")
	assert.Equal(t, 4, len(l.Glyphs))
	assert.Equal(t, float32(50), l.Extents.XAdvance)
	assert.Equal(t, float32(30), l.Glyphs[3].X)
	assert.Equal(t, uint32('世'), l.Glyphs[3].GID)
	assert.Equal(t, float32(0), l.Extents.XBearing)
	assert.Equal(t, float32(50), l.Extents.Width)
}

func TestMonospaceGraphemes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.glyphs")
	defer teardown()
	//
	l := Shaper(0).Shape("  e\u0301x")
	if len(l.Glyphs) != 4 {
		t.Fatalf("expected combining accent to join its base, have %d glyphs", len(l.Glyphs))
	}
	assert.Equal(t, 4, l.Glyphs[3].Cluster)
	assert.Equal(t, float32(16), l.Extents.XBearing, "leading spaces carry no ink")
}

func TestMonospaceCached(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.glyphs")
	defer teardown()
	//
	cache, err := glyphing.NewLayoutCache(2)
	assert.NoError(t, err)
	sh := Shaper(10)
	calls := 0
	shape := func(s string) glyphing.Layout {
		calls++
		return sh.Shape(s)
	}
	a := cache.GetOrShape("hello", shape)
	b := cache.GetOrShape("hello", shape)
	assert.Equal(t, 1, calls)
	assert.Equal(t, a, b)
}
