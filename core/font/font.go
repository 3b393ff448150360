/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

* A "scaled font" is a scalable font at a certain pixel size, ready for
measuring and rasterizing glyphs.
An example is "Helvetica regular 16px".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

Scalable fonts are parsed twice: go-text/typesetting gives us a face for
shaping and font-unit metrics, golang.org/x/image/font/sfnt gives us glyph
outlines and scaled metrics. Both work on the same binary data.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"bytes"
	"math"
	"os"
	"strings"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'htmlpix.font'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.font")
}

// FallbackPath is a reserved path denoting the built-in fallback font.
const FallbackPath = "internal:goregular"

// FallbackFamily is the family name of the built-in fallback font.
const FallbackFamily = "Go"

// ScalableFont is a font parsed from a font file.
type ScalableFont struct {
	Fontname string
	Filepath string       // file path
	Index    int          // index within a collection
	Binary   []byte       // raw data
	Face     *gotext.Face // face for shaping and font-unit metrics; not safe for concurrent use
	SFNT     *sfnt.Font   // the font's container for outlines and scaled metrics
}

// LoadScalableFont reads a font file and parses it. index selects a font
// within a collection and must be 0 for single font files.
// The reserved path FallbackPath loads the built-in fallback font.
func LoadScalableFont(fontfile string, index int) (*ScalableFont, error) {
	var bytez []byte
	if fontfile == FallbackPath {
		bytez = goregular.TTF
	} else {
		var err error
		if bytez, err = os.ReadFile(fontfile); err != nil {
			return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fontfile)
		}
	}
	f, err := ParseScalableFont(bytez, index)
	if err != nil {
		return nil, core.WrapError(err, core.Code(err), "cannot load font %s", fontfile)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseScalableFont parses font data. index selects a font within a
// collection and must be 0 for single font files.
//
// Fonts without a Unicode character map are accepted, as the face then falls
// back to the best encoding available; however, a font with no usable
// character map at all fails.
func ParseScalableFont(fbytes []byte, index int) (*ScalableFont, error) {
	faces, err := gotext.ParseTTC(bytes.NewReader(fbytes))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font")
	}
	if index < 0 || index >= len(faces) {
		return nil, core.Error(core.EINVALID, "font index %d out of range [0…%d]", index, len(faces)-1)
	}
	coll, err := sfnt.ParseCollection(fbytes)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font outlines")
	}
	f := &ScalableFont{
		Binary: fbytes,
		Index:  index,
		Face:   faces[index],
	}
	if f.SFNT, err = coll.Font(index); err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot parse font outlines")
	}
	if f.Face.Cmap == nil {
		return nil, core.Error(core.EINVALID, "font has no usable character map")
	}
	if _, ok := f.Face.NominalGlyph(' '); !ok {
		tracer().Infof("font does not map U+0020, character map is probably not Unicode")
	}
	f.Fontname = f.Face.Describe().Family
	if f.Fontname == "" {
		f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFamily)
	}
	return f, nil
}

// Description returns family and aspect of a font.
func (sf *ScalableFont) Description() gotext.Description {
	return sf.Face.Describe()
}

// ScaleTo prepares a scaled font at a given pixel size.
func (sf *ScalableFont) ScaleTo(pixelSize int) (*ScaledFont, error) {
	if pixelSize <= 0 {
		return nil, core.Error(core.EINVALID, "font size must be positive, is %d", pixelSize)
	}
	options := &opentype.FaceOptions{
		Size:    float64(pixelSize),
		DPI:     72, // size is given in pixels
		Hinting: xfont.HintingNone,
	}
	f, err := opentype.NewFace(sf.SFNT, options)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot scale font %s to %dpx",
			sf.Fontname, pixelSize)
	}
	return &ScaledFont{
		parent:   sf,
		face:     f,
		px:       pixelSize,
		ppem:     fixed.I(pixelSize),
		outlines: make(map[uint32]sfnt.Segments),
	}, nil
}

// --- Scaled fonts ----------------------------------------------------------

// ScaledFont is a scalable font at a certain pixel size.
// Outlines are cached per glyph. A ScaledFont is not safe for concurrent use.
type ScaledFont struct {
	parent   *ScalableFont
	face     xfont.Face
	px       int
	ppem     fixed.Int26_6
	buf      sfnt.Buffer
	outlines map[uint32]sfnt.Segments
}

// ScalableFontParent returns the font this scaled font is derived from.
func (s *ScaledFont) ScalableFontParent() *ScalableFont {
	return s.parent
}

// PixelSize returns the size of the font in pixels (per em).
func (s *ScaledFont) PixelSize() int {
	return s.px
}

// Metrics returns the scaled font-wide metrics.
func (s *ScaledFont) Metrics() xfont.Metrics {
	return s.face.Metrics()
}

// RuneHeight returns the height of a rune's glyph above the baseline, in
// pixels. If the font does not contain the rune, 0 is returned.
func (s *ScaledFont) RuneHeight(r rune) float64 {
	bounds, _, ok := s.face.GlyphBounds(r)
	if !ok {
		return 0
	}
	return -float64(bounds.Min.Y) / 64.0
}

// GlyphOutline returns the outline of a glyph, scaled to pixels. Coordinates
// are relative to the glyph origin on the baseline, y increases downwards.
func (s *ScaledFont) GlyphOutline(gid uint32) (sfnt.Segments, bool) {
	if segs, ok := s.outlines[gid]; ok {
		return segs, segs != nil
	}
	segs, err := s.parent.SFNT.LoadGlyph(&s.buf, sfnt.GlyphIndex(gid), s.ppem, nil)
	if err != nil {
		tracer().Debugf("no outline for glyph %d: %v", gid, err)
		s.outlines[gid] = nil
		return nil, false
	}
	// segments are invalidated by the next call to LoadGlyph
	copied := make(sfnt.Segments, len(segs))
	copy(copied, segs)
	s.outlines[gid] = copied
	return copied, true
}

// Close releases the scaled face.
func (s *ScaledFont) Close() error {
	s.outlines = nil
	if s.face != nil {
		err := s.face.Close()
		s.face = nil
		return err
	}
	return nil
}

// --- Fallback font ---------------------------------------------------------

// FallbackFont returns a font to be used if everything else fails. It is
// always present. Currently we use Go Sans.
//
// The returned font is shared; clients must not use its Face concurrently.
// Clients wanting a private copy should call LoadScalableFont(FallbackPath, 0).
func FallbackFont() *ScalableFont {
	fallbackFontLoading.Do(func() {
		fallbackFont = loadFallbackFont()
	})
	return fallbackFont
}

var fallbackFontLoading sync.Once

// fallbackFont is a font that is used if everything else fails.
var fallbackFont *ScalableFont

func loadFallbackFont() *ScalableFont {
	gofont, err := LoadScalableFont(FallbackPath, 0)
	if err != nil {
		panic("cannot load default font") // this cannot happen
	}
	gofont.Fontname = FallbackFamily
	return gofont
}

// ---------------------------------------------------------------------------

// NormalizeFontname returns a canonical form of a font name or font file
// name: lowercase, no extension, spaces replaced by underscores.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}

// Round rounds a 26.6 fixed point value to the nearest integer, halves away
// from zero.
func Round(x fixed.Int26_6) int {
	return int(math.Round(float64(x) / 64.0))
}

// Ceil returns the least integer not less than a 26.6 fixed point value.
func Ceil(x fixed.Int26_6) int {
	return int(math.Ceil(float64(x) / 64.0))
}
