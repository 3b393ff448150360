/*
Package text implements font instances: a font face at a fixed pixel size,
able to shape, measure and draw text.

A FontInstance owns its face, a HarfBuzz shaping font derived from it, a
scaled font for outlines and metrics, and a cache of shaped text. Shaping
parameters (direction, script and language) are part of the instance's
configuration and fixed at load time; the cache is keyed by text only.

    fi, err := text.Load(loc.Path, loc.Index, 16)
    …
    defer fi.Close()
    w := fi.TextWidth("Hello World")
    fi.Draw("Hello World", surface, 10, 30, gfx.Black)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package text

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.font'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.font")
}
