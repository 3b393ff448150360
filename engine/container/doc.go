/*
Package container implements the document container: the services an HTML
layout engine requests from its host for fonts and drawing.

A layout engine creates fonts from CSS font properties, measures text with
them and draws text, backgrounds and list markers onto a pixel surface.
The container resolves font requests with a font library, shares loaded font
instances between requests for the same face and size, and keeps track of
device properties for CSS media queries.

Configuration keys read by the container:

    html.dpi                 device resolution (default 96)
    html.color-depth         bits per color channel (default 8)
    html.monochrome-bits     bits per pixel of a monochrome device (default 0)
    html.media-type          CSS media type (default "screen")
    html.device-width        device width in pixels (default 320)
    html.device-height       device height in pixels (default 240)
    font.cache-size          capacity of the text layout cache per font (default 1000)
    font.underline-offset    decoration placement, see text.DecorationConfigFrom
    font.underline-thickness
    font.strikeout-position

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package container

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.container'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.container")
}
