/*
Package backend makes all pixel surface backends available.

Clients which do not care about linking individual backends import this
package and create surfaces by kind:

    s, err := backend.NewSurface(gfx.Raster)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package backend

import (
	"github.com/npillmayer/htmlpix/backend/gfx"

	_ "github.com/npillmayer/htmlpix/backend/gfx/canvas"
	_ "github.com/npillmayer/htmlpix/backend/gfx/raster"
	_ "github.com/npillmayer/htmlpix/backend/gfx/vector"
)

// NewSurface creates an unattached surface of the given backend kind.
func NewSurface(kind gfx.Kind) (gfx.Surface, error) {
	return gfx.NewSurface(kind)
}

// NewOffscreen creates a surface owning a w × h buffer of the given format.
func NewOffscreen(kind gfx.Kind, format gfx.Format, w, h int) (gfx.Surface, error) {
	return gfx.NewOffscreen(kind, format, w, h)
}

// Kinds lists all available backends.
func Kinds() []gfx.Kind {
	return gfx.Backends()
}
