/*
Package gfx implements pixel surfaces for rendering HTML documents.

A surface is attached to a pixel buffer owned by the client. The buffer is
given as a byte slice, a pixel format, width, height and stride. A negative
stride denotes a buffer with rows stored bottom-up; the slice still has to
start at the lowest address of the buffer.

Surfaces are implemented by backends, which register themselves with this
package:

    raster   software rasterizer delivering coverage spans
    vector   vector graphics rasterizer compositing glyph masks
    canvas   image.RGBA canvas composited with image/draw

Clients select a backend by Kind at construction time. Importing package
backend (or a backend package directly) makes the backends available.

Glyphs are always rasterized glyph-locally, positioned on a pixel origin plus
a 26.6 fractional offset. Drawing a glyph run therefore yields identical
pixels when the run is translated by whole pixels, which is what incremental
redrawing relies upon.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gfx

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.gfx'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.gfx")
}
