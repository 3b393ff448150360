/*
Package frame lays out styled HTML documents.

Typesetting may be understood as the process of placing boxes within
larger boxes. Boxes follow the CSS box model: block boxes stack vertically
within their containing block, inline content is broken into line boxes
(see package inline). Supported are margins, padding, borders and
backgrounds, widths with min/max constraints, line heights, text alignment,
white space handling, forced line breaks and list items with markers.
There are no floats, positioning, tables or replaced elements.

The result of a layout is a display list of drawing operations in document
coordinates. A Document draws it through the fonts and drawing services of
a document container, clipped and translated by the scroll offset, which
makes it suitable for incremental rendering.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frame

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.layout'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.layout")
}
