/*
Package fontregistry manages a library of fonts available to a renderer.

A Library knows about font files (added from configured directories, single
files, a TOML configuration document, or the fonts installed on the system)
and resolves CSS-like font requests (a family list, a size, a weight and a
style) to the location of the best-matching font file. Resolution reports
every criterion it could not honour in a match mask.

	lib := fontregistry.NewLibrary(conf)
	loc, mask := lib.Resolve("Tinos, serif", 16, 400, fontregistry.StyleNormal)
	if mask != 0 { … }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'htmlpix.font'
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.font")
}

// traceLogger routes log output of the font matcher to the font tracer.
type traceLogger struct{}

func (traceLogger) Printf(format string, args ...interface{}) {
	tracer().Debugf("fontscan: "+format, args...)
}
