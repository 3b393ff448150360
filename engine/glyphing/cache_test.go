package glyphing

import (
	"testing"

	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

type countingShaper struct {
	calls int
}

func (s *countingShaper) shape(text string) Layout {
	s.calls++
	glyphs := make([]PositionedGlyph, len(text))
	for i := range text {
		glyphs[i] = PositionedGlyph{GID: uint32(text[i]), Cluster: i, X: float32(8 * i)}
	}
	return Layout{Glyphs: glyphs, Extents: Extents{XAdvance: float32(8 * len(text))}}
}

func TestCacheCapacity(t *testing.T) {
	_, err := NewLayoutCache(0)
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = NewLayoutCache(-3)
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestCacheHit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.glyphs")
	defer teardown()
	//
	c, err := NewLayoutCache(4)
	if err != nil {
		t.Fatal(err)
	}
	s := &countingShaper{}
	l1 := c.GetOrShape("Hello", s.shape)
	l2 := c.GetOrShape("Hello", s.shape)
	if s.calls != 1 {
		t.Errorf("expected shaper to be called once, was called %d times", s.calls)
	}
	assert.Equal(t, l1, l2)
	assert.Equal(t, float32(40), l2.Extents.XAdvance)
	c.GetOrShape("hello", s.shape) // keys are case sensitive
	assert.Equal(t, 2, s.calls)
	assert.Equal(t, CacheStats{Hits: 1, Misses: 2}, c.Stats())
}

func TestCacheLRU(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.glyphs")
	defer teardown()
	//
	c, _ := NewLayoutCache(3)
	s := &countingShaper{}
	for _, text := range []string{"a", "b", "c"} {
		c.GetOrShape(text, s.shape)
	}
	c.GetOrShape("a", s.shape) // a is most recently used now
	c.GetOrShape("d", s.shape) // evicts b
	assert.Equal(t, 3, c.Len())
	assert.False(t, c.Contains("b"), "expected b to be evicted")
	assert.True(t, c.Contains("a"))
	assert.Equal(t, []string{"c", "a", "d"}, c.Keys())
	assert.Equal(t, 1, c.Stats().Evictions)
	//
	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 1, c.Stats().Evictions, "purge must not count as eviction")
}

func TestTag(t *testing.T) {
	tag := MakeTag("liga")
	assert.Equal(t, Tag(0x6c696761), tag)
	assert.Equal(t, "liga", tag.String())
	assert.Equal(t, "cv  ", MakeTag("cv").String(), "padded to 4 bytes")
	assert.Equal(t, MakeTag("kern"), MakeTag("kerning"))
}
