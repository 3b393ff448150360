/*
Package glyphing provides the vocabulary for text shaping: shaping
parameters, positioned glyphs, measured runs, and a cache for shaped runs.

A shaper turns a string of Unicode code-points into a run of positioned
glyphs of a font at a given size. Positions are in (floating point) pixels
with y growing downwards, relative to the pen position at the start of the
run on the baseline.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/text/language"
)

// tracer traces with key 'htmlpix.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.glyphs")
}

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in.
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "LeftToRight"
	case RightToLeft:
		return "RightToLeft"
	case TopToBottom:
		return "TopToBottom"
	case BottomToTop:
		return "BottomToTop"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Tag is a 4-letter OpenType tag, e.g. a feature tag like "liga".
type Tag uint32

// MakeTag creates a tag from a string of (up to) 4 bytes. Shorter strings are
// padded with spaces.
func MakeTag(s string) Tag {
	b := [4]byte{' ', ' ', ' ', ' '}
	copy(b[:], s)
	return Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// Params collects shaping parameters.
type Params struct {
	Direction Direction       // writing direction
	Script    language.Script // 4-letter ISO 15924 script identifier
	Language  language.Tag    // BCP 47 language tag
	Features  []FeatureRange  // OpenType features to apply
}

// DefaultParams are the shaping parameters used for HTML text: left to right,
// Latin script, English.
func DefaultParams() Params {
	return Params{
		Direction: LeftToRight,
		Script:    language.MustParseScript("Latn"),
		Language:  language.English,
	}
}

// FeatureRange tells a shaper to turn a certain OpenType feature on or off for a
// run of code-points.
type FeatureRange struct {
	Feature    Tag  // 4-letter feature tag
	Arg        int  // optional argument for this feature
	On         bool // turn it on or off?
	Start, End int  // position of code-points to apply feature for
}

// PositionedGlyph is a glyph of a shaped run. X and Y are relative to the
// start of the run on the baseline, in pixels, y growing downwards.
type PositionedGlyph struct {
	GID     uint32  // glyph index within font
	Cluster int     // position of code-point(s) for this glyph in original string
	X, Y    float32 // position of the glyph origin
}

func (g PositionedGlyph) String() string {
	return fmt.Sprintf("(GID=%d, cluster=%d, at %.2f,%.2f)", g.GID, g.Cluster, g.X, g.Y)
}

// Extents are the measured extents of a shaped run, in pixels.
// The bearings locate the top left corner of the ink box relative to the
// start of the run; YBearing is negative for ink above the baseline.
type Extents struct {
	XBearing, YBearing float32
	Width, Height      float32
	XAdvance, YAdvance float32
}

// Layout is the result of shaping a string: a run of positioned glyphs
// together with its extents. Layouts may be shared between clients (e.g.,
// through a cache) and must be treated as immutable.
type Layout struct {
	Glyphs  []PositionedGlyph
	Extents Extents
}

// A Shaper creates a sequence of glyphs from a sequence of
// Unicode code-points. Glyphs are taken from a font, given in a specific
// pixel size; font, size and shaping parameters are fixed for a shaper.
type Shaper interface {
	Shape(text string) Layout
}
