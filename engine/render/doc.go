/*
Package render draws documents into caller-supplied pixel buffers and keeps
them up to date while the viewport scrolls.

A Renderer remembers the buffer it drew into last and the scroll offset it
drew at. If the next request targets the same buffer and the viewport moved
by less than its size, the pixels still valid are shifted within the buffer
and only the exposed strips are drawn again. The result is identical to a
full redraw at the new offset, as long as the document draws the same pixels
for a region regardless of the clip it is drawn with.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package render

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.render'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.render")
}
