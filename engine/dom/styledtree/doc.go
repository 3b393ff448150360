/*
Package styledtree builds styled trees from HTML documents.

A styled tree mirrors the DOM of an HTML document, with every node carrying
its computed CSS properties. Styling applies the user-agent defaults, the
author style sheets and inline styles in cascade order:
declarations are ordered by importance, selector specificity and source
order. Inherited properties are carried down the tree with grouped style
registers, one group per element.

    b := styledtree.NewBuilder(styledtree.Media{Type: "screen", Width: 800})
    b.AddStyleSheet("p { color: red }")
    root := b.Build(doc.Root, styledtree.DefaultsFrom(16, "serif"))

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package styledtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'htmlpix.style'.
func tracer() tracing.Trace {
	return tracing.Select("htmlpix.style")
}
