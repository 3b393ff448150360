// Package dimen implements pixel geometry and units.
//
/*
BSD License

Copyright (c) 2017–21, Norbert Pillmayer (norbert@pillmayer.com)

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
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */
package dimen

import (
	"errors"
	"fmt"
	"image"
	"math"
	"regexp"
	"strconv"
)

// DefaultDPI is the resolution of a CSS reference pixel device.
const DefaultDPI = 96

// Point is a point on a pixel surface. Y grows downwards.
type Point struct {
	X, Y int
}

// Origin is origin
var Origin = Point{0, 0}

// Shift a point along a vector.
func (p *Point) Shift(vector Point) *Point {
	p.X += vector.X
	p.Y += vector.Y
	return p
}

// Rect is a rectangle on a pixel surface, given by its top left corner and
// its extent. Rectangles with non-positive width or height are empty.
type Rect struct {
	X, Y int
	W, H int
}

// R is a shortcut for creating a rectangle.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d %dx%d]", r.X, r.Y, r.W, r.H)
}

// Empty is true if r does not cover any pixel.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Right returns the exclusive right edge of r.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge of r.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Translate returns r shifted by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Intersect returns the largest rectangle contained in both r and s.
// If they do not overlap, an empty rectangle is returned.
func (r Rect) Intersect(s Rect) Rect {
	x0, y0 := Max(r.X, s.X), Max(r.Y, s.Y)
	x1, y1 := Min(r.Right(), s.Right()), Min(r.Bottom(), s.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Union returns the smallest rectangle containing both r and s.
// Empty rectangles are ignored.
func (r Rect) Union(s Rect) Rect {
	if r.Empty() {
		return s
	}
	if s.Empty() {
		return r
	}
	x0, y0 := Min(r.X, s.X), Min(r.Y, s.Y)
	x1, y1 := Max(r.Right(), s.Right()), Max(r.Bottom(), s.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Overlaps is true if r and s share at least one pixel.
func (r Rect) Overlaps(s Rect) bool {
	return !r.Intersect(s).Empty()
}

// Contains is true if point p is inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Inset returns r shrunk by n pixels on every side (grown for negative n).
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// ImageRect converts r to an image.Rectangle.
func (r Rect) ImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// FromImageRect converts an image.Rectangle to a Rect.
func FromImageRect(ir image.Rectangle) Rect {
	return Rect{X: ir.Min.X, Y: ir.Min.Y, W: ir.Dx(), H: ir.Dy()}
}

// ---------------------------------------------------------------------------

// PtToPx converts printer's points to device pixels for a given resolution:
// px = pt · dpi / 72. The result is rounded to the nearest pixel.
func PtToPx(pt float64, dpi int) int {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return int(math.Round(pt * float64(dpi) / 72.0))
}

var dimenPattern = regexp.MustCompile(`^([+\-]?[0-9]*\.?[0-9]+)(%|px|pt|mm|cm|in|pc)?$`)

// ParseDimen parses a string to return a dimension in pixels, given a resolution.
// Syntax is a subset of CSS units (px, pt, pc, mm, cm, in). A number without a
// unit is taken as pixels.
// If a percentage value is given (`80%`), the second return value will be true
// and the first one holds the percentage.
//
func ParseDimen(s string, dpi int) (float64, bool, error) {
	d := dimenPattern.FindStringSubmatch(s)
	if len(d) < 2 {
		return 0, false, errors.New("format error parsing dimension")
	}
	n, err := strconv.ParseFloat(d[1], 64)
	if err != nil {
		return 0, false, errors.New("format error parsing dimension")
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	res := float64(dpi)
	switch d[2] {
	case "px", "":
		return n, false, nil
	case "%":
		return n, true, nil
	case "pt":
		return n * res / 72.0, false, nil
	case "pc":
		return n * 12 * res / 72.0, false, nil
	case "in":
		return n * res, false, nil
	case "cm":
		return n * res / 2.54, false, nil
	case "mm":
		return n * res / 25.4, false, nil
	}
	return 0, false, errors.New("format error parsing dimension")
}

// ---------------------------------------------------------------------------

// Min returns the smaller of two dimensions.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two dimensions.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Abs returns the absolute value of a dimension.
func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
