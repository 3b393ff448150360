package monospace

import (
	"unicode"

	"github.com/npillmayer/htmlpix/engine/glyphing"
	"github.com/rivo/uniseg"
	"golang.org/x/text/width"
)

type msshape struct {
	em     float32
	ascent float32
}

// Shaper creates a shaper for monospace typesetting.
// An em-dimension in pixels may be given which will then be used for shaping
// text. If it is zero, it will be set to 8 pixels.
func Shaper(em float32) glyphing.Shaper {
	if em <= 0 {
		em = 8
	}
	return &msshape{em: em, ascent: em * 3 / 2}
}

// Shape creates a glyph sequence from a text. Extents cover all non-space
// glyphs as boxes of height 1.5 em, sitting on the baseline.
func (ms *msshape) Shape(text string) glyphing.Layout {
	layout := glyphing.Layout{}
	graphemes := uniseg.NewGraphemes(text)
	var pen float32
	inkStart, inkEnd := float32(-1), float32(0)
	cluster := 0
	for graphemes.Next() {
		runes := graphemes.Runes()
		w := ms.em * float32(Width(runes[0]))
		layout.Glyphs = append(layout.Glyphs, glyphing.PositionedGlyph{
			GID:     uint32(runes[0]),
			Cluster: cluster,
			X:       pen,
		})
		if !unicode.IsSpace(runes[0]) {
			if inkStart < 0 {
				inkStart = pen
			}
			inkEnd = pen + w
		}
		pen += w
		cluster += len(runes)
	}
	layout.Extents.XAdvance = pen
	if inkStart >= 0 {
		layout.Extents.XBearing = inkStart
		layout.Extents.YBearing = -ms.ascent
		layout.Extents.Width = inkEnd - inkStart
		layout.Extents.Height = ms.ascent
	}
	tracer().Debugf("monospace: %d glyphs, advance %.1f", len(layout.Glyphs), pen)
	return layout
}

// Width returns the number of cells a code-point occupies: 2 for wide and
// fullwidth characters, 1 otherwise.
func Width(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
