package container

import (
	"math"
	"strings"

	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core/dimen"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// MarkerType is the type of a list item bullet.
type MarkerType int8

// Bullet types, following CSS list-style-type.
const (
	MarkerNone MarkerType = iota
	MarkerDisc
	MarkerCircle
	MarkerSquare
)

var markerNames = []string{"none", "disc", "circle", "square"}

func (m MarkerType) String() string {
	if m < 0 || int(m) >= len(markerNames) {
		return "none"
	}
	return markerNames[m]
}

// ParseMarkerType interprets a CSS list-style-type value. Unknown types and
// counter styles ("decimal" etc.) yield MarkerNone and false.
func ParseMarkerType(s string) (MarkerType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range markerNames {
		if n == s {
			return MarkerType(i), true
		}
	}
	return MarkerNone, false
}

type markerKey struct {
	kind gfx.Kind
	typ  MarkerType
	size int
}

// DrawListMarker draws a bullet into rect. The bullet is rendered once per
// backend, type and size into an off-screen surface and composited from
// there with color.
func (c *Container) DrawListMarker(s gfx.Surface, marker MarkerType, rect dimen.Rect, color gfx.Color) {
	if s == nil || marker == MarkerNone || rect.Empty() {
		return
	}
	size := dimen.Min(rect.W, rect.H)
	if size <= 0 {
		return
	}
	key := markerKey{kind: s.Kind(), typ: marker, size: size}
	m, ok := c.markers[key]
	if !ok {
		var err error
		if m, err = renderMarker(key); err != nil {
			tracer().Errorf("cannot render list marker: %v", err)
			return
		}
		c.markers[key] = m
	}
	dx := rect.X + (rect.W-size)/2
	dy := rect.Y + (rect.H-size)/2
	s.BlendFrom(m, color, dx, dy)
}

// MarkerCount returns the number of cached bullet images.
func (c *Container) MarkerCount() int {
	return len(c.markers)
}

func renderMarker(key markerKey) (gfx.Surface, error) {
	off, err := gfx.NewOffscreen(key.kind, gfx.RGBA32, key.size, key.size)
	if err != nil {
		return nil, err
	}
	run := []gfx.Glyph{{ID: uint32(key.typ), X: 0, Y: float32(key.size)}}
	off.DrawGlyphs(run, markerOutliner(key.size), dimen.Rect{}, gfx.Black)
	tracer().Debugf("rendered %s marker of %dpx for backend %s", key.typ, key.size, key.kind)
	return off, nil
}

// markerOutliner provides the bullet shapes as glyph outlines, sized to fit
// a box of size×size pixels sitting on the baseline.
type markerOutliner int

func (mo markerOutliner) GlyphOutline(gid uint32) (sfnt.Segments, bool) {
	size := float64(mo)
	c := size / 2
	switch MarkerType(gid) {
	case MarkerDisc:
		return arc(c, -c, size*0.3, false), true
	case MarkerCircle:
		outer := arc(c, -c, size*0.3, false)
		return append(outer, arc(c, -c, size*0.3-math.Max(1, size/10), true)...), true
	case MarkerSquare:
		a, b := size*0.2, size*0.8
		return sfnt.Segments{
			seg(sfnt.SegmentOpMoveTo, a, -a),
			seg(sfnt.SegmentOpLineTo, b, -a),
			seg(sfnt.SegmentOpLineTo, b, -b),
			seg(sfnt.SegmentOpLineTo, a, -b),
		}, true
	}
	return nil, false
}

func seg(op sfnt.SegmentOp, pts ...float64) sfnt.Segment {
	s := sfnt.Segment{Op: op}
	for i := 0; i+1 < len(pts); i += 2 {
		s.Args[i/2] = fixed.Point26_6{
			X: fixed.Int26_6(math.Round(pts[i] * 64)),
			Y: fixed.Int26_6(math.Round(pts[i+1] * 64)),
		}
	}
	return s
}

// arc approximates a circle by eight quadratic Béziers. Reversed circles
// cut holes under the non-zero winding rule.
func arc(cx, cy, r float64, reverse bool) sfnt.Segments {
	const n = 8
	k := r / math.Cos(math.Pi/n)
	dir := 1.0
	if reverse {
		dir = -1.0
	}
	segs := sfnt.Segments{seg(sfnt.SegmentOpMoveTo, cx+r, cy)}
	for i := 1; i <= n; i++ {
		a := dir * 2 * math.Pi * float64(i) / n
		m := a - dir*math.Pi/n
		segs = append(segs, seg(sfnt.SegmentOpQuadTo,
			cx+k*math.Cos(m), cy+k*math.Sin(m),
			cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	return segs
}
