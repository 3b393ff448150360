/*
Package testimages provides helpers for tests which check rendered pixels.

Setting the environment variable HTMLPIX_DUMP to a directory makes Dump
write PNG files of pixmaps there, for visual inspection.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package testimages

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core/dimen"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Diff counts the pixels of region r which differ between a and b, and
// returns the first of them. Pixels are compared by color, so pixmaps of
// different formats may be compared.
func Diff(a, b *gfx.Pixmap, r dimen.Rect) (int, dimen.Point) {
	var first dimen.Point
	n := 0
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if a.Pixel(x, y) != b.Pixel(x, y) {
				if n == 0 {
					first = dimen.Point{X: x, Y: y}
				}
				n++
			}
		}
	}
	return n, first
}

// Equal is true if a and b have the same size and identical pixels.
func Equal(a, b *gfx.Pixmap) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	n, _ := Diff(a, b, a.Bounds())
	return n == 0
}

// AssertEqual fails t if a and b differ, reporting the first difference.
func AssertEqual(t testing.TB, a, b *gfx.Pixmap, msg string) {
	t.Helper()
	if a.Width() != b.Width() || a.Height() != b.Height() {
		t.Errorf("%s: pixmaps differ in size", msg)
		return
	}
	if n, p := Diff(a, b, a.Bounds()); n > 0 {
		t.Errorf("%s: %d pixels differ, first at (%d,%d): %s ≠ %s", msg, n, p.X, p.Y,
			a.Pixel(p.X, p.Y), b.Pixel(p.X, p.Y))
		Dump(t, a, msg+"-a")
		Dump(t, b, msg+"-b")
	}
}

// Ink counts the pixels of pm in region r which differ from background.
func Ink(pm *gfx.Pixmap, r dimen.Rect, background gfx.Color) int {
	n := 0
	r = r.Intersect(pm.Bounds())
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if pm.Pixel(x, y) != background {
				n++
			}
		}
	}
	return n
}

// Dump writes pm as a PNG file, if HTMLPIX_DUMP names a directory.
func Dump(t testing.TB, pm *gfx.Pixmap, name string) {
	dir := os.Getenv("HTMLPIX_DUMP")
	if dir == "" || pm == nil {
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.png", name))
	if err := imaging.Save(pm.Image(), path); err != nil {
		t.Logf("cannot dump image: %v", err)
		return
	}
	t.Logf("image dumped to %s", path)
}

// --- Synthetic glyphs ------------------------------------------------------

// Outliner is a glyph outliner over a fixed set of synthetic outlines.
type Outliner map[uint32]sfnt.Segments

// GlyphOutline implements gfx.GlyphOutliner.
func (o Outliner) GlyphOutline(gid uint32) (sfnt.Segments, bool) {
	segs, ok := o[gid]
	return segs, ok
}

// Glyph ids of the synthetic glyphs.
const (
	GlyphBox uint32 = iota + 1
	GlyphTriangle
	GlyphRing
)

// Shapes returns an outliner with three glyphs: a box, a triangle and a ring
// made of quadratic curves. All of them sit on the baseline and are about
// size pixels high.
func Shapes(size float64) Outliner {
	p := func(x, y float64) fixed.Point26_6 {
		return fixed.Point26_6{X: fixed.Int26_6(x * size * 64), Y: fixed.Int26_6(-y * size * 64)}
	}
	move := func(a fixed.Point26_6) sfnt.Segment {
		return sfnt.Segment{Op: sfnt.SegmentOpMoveTo, Args: [3]fixed.Point26_6{a}}
	}
	line := func(a fixed.Point26_6) sfnt.Segment {
		return sfnt.Segment{Op: sfnt.SegmentOpLineTo, Args: [3]fixed.Point26_6{a}}
	}
	quad := func(c, a fixed.Point26_6) sfnt.Segment {
		return sfnt.Segment{Op: sfnt.SegmentOpQuadTo, Args: [3]fixed.Point26_6{c, a}}
	}
	circle := func(cx, cy, r float64, cw bool) sfnt.Segments {
		s := 1.0
		if cw {
			s = -1.0
		}
		return sfnt.Segments{
			move(p(cx+r, cy)),
			quad(p(cx+r, cy+s*r), p(cx, cy+s*r)),
			quad(p(cx-r, cy+s*r), p(cx-r, cy)),
			quad(p(cx-r, cy-s*r), p(cx, cy-s*r)),
			quad(p(cx+r, cy-s*r), p(cx+r, cy)),
		}
	}
	ring := append(circle(0.5, 0.5, 0.45, false), circle(0.5, 0.5, 0.25, true)...)
	return Outliner{
		GlyphBox: {
			move(p(0.1, 0)), line(p(0.7, 0)), line(p(0.7, 0.8)), line(p(0.1, 0.8)),
		},
		GlyphTriangle: {
			move(p(0, 0)), line(p(0.8, 0)), line(p(0.4, 1)),
		},
		GlyphRing: ring,
	}
}
