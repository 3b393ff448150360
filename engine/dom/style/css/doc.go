/*
Package css interprets CSS property values.

Dimensions are option types (see package core/option): a dimension may be
unset, a keyword like "auto", an absolute length or a length relative to
the font size, the viewport or a containing block. Clients match on them:

    w, _ := css.DimenOption(styles.Get("width")).Match(option.Of{
        option.None: available,
        css.Auto:    available,
        option.Some: func(d interface{}) (interface{}, error) { … },
    })

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.style'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.style")
}
