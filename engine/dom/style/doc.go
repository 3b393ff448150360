/*
Package style holds CSS properties of HTML elements.

Properties are kept as un-interpreted strings in property maps. Interpreting
them (dimensions, colors, keywords) is done on demand by the consumers, i.e.
the layout engine, with help from package css.

The package also knows the user-agent default styles for the HTML elements
supported and which properties are inherited.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.style'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.style")
}
