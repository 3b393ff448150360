/*
Package option implements option types and a small matching facility for
them. Option types are used for values which may be unset, e.g. CSS
dimensions which have not been specified for an element.

    x.Match(option.Maybe{
        option.None: "not set",
        option.Some: func(v interface{}) (interface{}, error) { … },
    })

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package option

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.core'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.core")
}
