/*
Package inline breaks inline content into line boxes.

Inline content is a sequence of items, usually words, each carrying its
advance width, the width of the white space following it and its vertical
metrics. Break fills lines first-fit, which is what browsers do. There is
no hyphenation.

Text is split into items by Segments, which collapses white space according
to the CSS property white-space and finds line break opportunities following
UAX #14.

_________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.layout'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.layout")
}
