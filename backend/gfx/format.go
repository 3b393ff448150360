package gfx

import (
	"fmt"
	"image/color"
	"strings"
)

// Format is the memory layout of pixels in a buffer. All formats carry
// 8-bit sRGB channels with straight (non-premultiplied) alpha.
type Format int

// Supported pixel formats.
const (
	FormatUnknown Format = iota
	RGB24                // R, G, B
	RGBA32               // R, G, B, A
	BGRA32               // B, G, R, A
)

// BytesPerPixel returns the number of bytes a single pixel occupies, or 0 for
// an unknown format.
func (f Format) BytesPerPixel() int {
	switch f {
	case RGB24:
		return 3
	case RGBA32, BGRA32:
		return 4
	}
	return 0
}

// HasAlpha is true for formats with an alpha channel.
func (f Format) HasAlpha() bool {
	return f == RGBA32 || f == BGRA32
}

func (f Format) String() string {
	switch f {
	case RGB24:
		return "RGB24"
	case RGBA32:
		return "RGBA32"
	case BGRA32:
		return "BGRA32"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the format for a name like "rgb24", ignoring case.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RGB24", "RGB":
		return RGB24, true
	case "RGBA32", "RGBA":
		return RGBA32, true
	case "BGRA32", "BGRA":
		return BGRA32, true
	}
	return FormatUnknown, false
}

// --- Colors ----------------------------------------------------------------

// Color is an sRGB color with straight alpha. It implements color.Color.
type Color struct {
	R, G, B, A uint8
}

// Some colors.
var (
	Black       = Color{0, 0, 0, 0xff}
	White       = Color{0xff, 0xff, 0xff, 0xff}
	Transparent = Color{}
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}.RGBA()
}

// Opaque is true if c has full alpha.
func (c Color) Opaque() bool {
	return c.A == 0xff
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ColorFrom converts any color.Color to a Color.
func ColorFrom(c color.Color) Color {
	if c == nil {
		return Transparent
	}
	if cc, ok := c.(Color); ok {
		return cc
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}
