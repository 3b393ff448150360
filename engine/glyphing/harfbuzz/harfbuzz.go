/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs.

We use the Go port of HarfBuzz which is part of go-text/typesetting.
A Shaper wraps a HarfBuzz font at a fixed pixel size, together with fixed
shaping parameters and a buffer which is reused for every run.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"encoding/binary"
	"math"

	gotext "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	hb "github.com/go-text/typesetting/harfbuzz"
	hblang "github.com/go-text/typesetting/language"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/engine/glyphing"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'htmlpix.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	if len(b) != 4 {
		return hblang.Unknown
	}
	return hblang.Script(binary.BigEndian.Uint32(b))
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// Feature4HB makes a typecast from a feature tag to an OpenType tag.
func Feature4HB(t glyphing.Tag) ot.Tag {
	return ot.Tag(t)
}

// FeatureRange4HB converts a feature range struct to a HarbBuzz Feature switch.
func FeatureRange4HB(frng glyphing.FeatureRange) hb.Feature {
	f := hb.Feature{
		Tag:   Feature4HB(frng.Feature),
		Start: frng.Start,
		End:   frng.End,
	}
	if frng.On {
		if frng.Arg > 0 {
			f.Value = uint32(frng.Arg)
		} else {
			f.Value = 1
		}
	}
	return f
}

// convertParams is a helper function to convert glyphing parameters to
// HarfBuzz's format.
func convertParams(hbSegProps *hb.SegmentProperties, params glyphing.Params) {
	if params.Language != language.Und {
		hbSegProps.Language = Lang4HB(params.Language)
	}
	var none language.Script
	if params.Script != none {
		hbSegProps.Script = Script4HB(params.Script)
	}
	hbSegProps.Direction = Direction4HB(params.Direction)
}

// --- Shape -----------------------------------------------------------------

// Shaper shapes text with a font at a fixed pixel size. Direction, script,
// language and features are set once at creation time.
//
// A Shaper is not safe for concurrent use, and neither is the face it uses.
type Shaper struct {
	font     *hb.Font
	buf      *hb.Buffer
	props    hb.SegmentProperties
	features []hb.Feature
	px       int
}

var _ glyphing.Shaper = &Shaper{}

// NewShaper creates a shaper for a face at a given pixel size.
func NewShaper(face *gotext.Face, pixelSize int, params glyphing.Params) (*Shaper, error) {
	if face == nil {
		return nil, core.Error(core.EINVALID, "shaper needs a font face")
	}
	if pixelSize <= 0 {
		return nil, core.Error(core.EINVALID, "shaper needs a positive pixel size, have %d", pixelSize)
	}
	face.SetPpem(uint16(pixelSize), uint16(pixelSize))
	s := &Shaper{
		font: hb.NewFont(face),
		buf:  hb.NewBuffer(),
		px:   pixelSize,
	}
	// positions are 26.6 fixed point pixels
	s.font.XScale = int32(pixelSize) * 64
	s.font.YScale = int32(pixelSize) * 64
	convertParams(&s.props, params)
	for _, feat := range params.Features {
		s.features = append(s.features, FeatureRange4HB(feat))
	}
	return s, nil
}

// PixelSize returns the size of the shaper's font.
func (s *Shaper) PixelSize() int {
	return s.px
}

// Shape calls the HarfBuzz shaper.
//
// Shape shapes a sequence of code-points (runes), turning its Unicode characters to
// positioned glyphs. Glyph clusters refer to the index of the first rune
// of a cluster in the input.
//
// Positions are converted from 26.6 fixed point to floating point pixels,
// and from HarfBuzz's y-up coordinates to y-down coordinates. The extents of
// the run are the union of the ink boxes of all glyphs.
func (s *Shaper) Shape(text string) glyphing.Layout {
	if s.font == nil || text == "" {
		return glyphing.Layout{}
	}
	runes := []rune(text)
	s.buf.Clear()
	s.buf.ClusterLevel = hb.MonotoneGraphemes
	s.buf.Props = s.props
	s.buf.AddRunes(runes, 0, -1)
	s.buf.Shape(s.font, s.features)
	//
	layout := glyphing.Layout{
		Glyphs: make([]glyphing.PositionedGlyph, len(s.buf.Info)),
	}
	var penX, penY float32
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for i, ginfo := range s.buf.Info {
		gpos := &s.buf.Pos[i]
		g := &layout.Glyphs[i]
		g.GID = uint32(ginfo.Glyph)
		g.Cluster = ginfo.Cluster
		g.X = penX + fromFixed(gpos.XOffset)
		g.Y = penY - fromFixed(gpos.YOffset)
		penX += fromFixed(gpos.XAdvance)
		penY -= fromFixed(gpos.YAdvance)
		ext, ok := s.font.GlyphExtents(ginfo.Glyph)
		if !ok || ext.Width == 0 || ext.Height == 0 {
			continue // e.g., white space
		}
		x0 := g.X + fromFixed(ext.XBearing)
		y0 := g.Y - fromFixed(ext.YBearing)
		x1 := x0 + fromFixed(ext.Width)
		y1 := y0 - fromFixed(ext.Height)
		minX, minY = min32(minX, x0, x1), min32(minY, y0, y1)
		maxX, maxY = max32(maxX, x0, x1), max32(maxY, y0, y1)
	}
	layout.Extents.XAdvance = penX
	layout.Extents.YAdvance = penY
	if minX <= maxX && minY <= maxY {
		layout.Extents.XBearing = minX
		layout.Extents.YBearing = minY
		layout.Extents.Width = maxX - minX
		layout.Extents.Height = maxY - minY
	}
	tracer().Debugf("shaped %q to %d glyphs, advance %.2f", text, len(layout.Glyphs), penX)
	return layout
}

// Close releases the shaper's HarfBuzz resources. The shaper must not be
// used afterwards.
func (s *Shaper) Close() {
	s.font = nil
	s.buf = nil
	s.features = nil
}

func fromFixed(x int32) float32 {
	return float32(x) / 64
}

func min32(m float32, a, b float32) float32 {
	if a < m {
		m = a
	}
	if b < m {
		m = b
	}
	return m
}

func max32(m float32, a, b float32) float32 {
	if a > m {
		m = a
	}
	if b > m {
		m = b
	}
	return m
}
