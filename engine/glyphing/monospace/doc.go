/*
Package monospace implements a simple shaper for monospace output.

The shaper does not need a font. Every grapheme cluster becomes a single
glyph, its glyph ID being the first code-point of the cluster. Advances are
one em for narrow and two em for wide characters (East Asian Width).
It is useful for terminal-like output and for testing.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.glyphs")
}
