/*
Package html reads HTML documents.

Parsing is done by golang.org/x/net/html, which builds a DOM following the
HTML5 parsing rules. This package adds collection of the style sheets a
document carries: contents of <style> elements and, for documents read
from files, linked local style sheets.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package html

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.layout'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.layout")
}
