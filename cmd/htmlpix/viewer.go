package main

import (
	"github.com/disintegration/imaging"
	"github.com/npillmayer/htmlpix/backend"
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/htmlpix/core/font/fontregistry"
	"github.com/npillmayer/htmlpix/engine/container"
	"github.com/npillmayer/htmlpix/engine/frame"
	"github.com/npillmayer/htmlpix/engine/render"
	"github.com/npillmayer/schuko"
)

type options struct {
	html        string
	w, h        int
	x, y        int
	kind        gfx.Kind
	fontconfig  string
	fontdir     string
	systemFonts bool
	fontsize    int
	conf        schuko.Configuration
}

// viewer holds everything needed to draw a document into a pixel buffer:
// font library, container, document and renderer.
type viewer struct {
	lib  *fontregistry.Library
	c    *container.Container
	doc  *frame.Document
	r    *render.Renderer
	buf  []byte
	w, h int
	x, y int
}

func newViewer(opts options) (*viewer, error) {
	if opts.w <= 0 || opts.h <= 0 {
		return nil, core.Error(core.EINVALID, "invalid viewport size %d x %d", opts.w, opts.h)
	}
	lib := fontregistry.NewLibrary(opts.conf)
	if opts.fontconfig != "" {
		if err := lib.LoadConfigFile(opts.fontconfig, true); err != nil {
			return nil, err
		}
	}
	if opts.fontdir != "" {
		if err := lib.AddFontDir(opts.fontdir); err != nil {
			return nil, err
		}
	}
	if opts.systemFonts {
		if err := lib.UseSystemFonts(""); err != nil {
			return nil, err
		}
	}
	c := container.New(lib, opts.conf)
	c.SetViewport(opts.w, opts.h)
	doc, err := frame.Load(opts.html, c)
	if err != nil {
		c.Close()
		return nil, err
	}
	s, err := backend.NewSurface(opts.kind)
	if err != nil {
		doc.Close()
		c.Close()
		return nil, err
	}
	v := &viewer{
		lib: lib,
		c:   c,
		doc: doc,
		r:   render.New(doc, s, gfx.White),
		x:   opts.x,
		y:   opts.y,
	}
	v.resize(opts.w, opts.h)
	tracer().Infof("viewer for %s with %s backend", opts.html, opts.kind)
	return v, nil
}

func (v *viewer) title() string {
	if t := v.doc.Title(); t != "" {
		return t
	}
	return "untitled"
}

// resize allocates a new pixel buffer. The next draw is a full one.
func (v *viewer) resize(w, h int) {
	v.w, v.h = w, h
	v.buf = make([]byte, 4*w*h)
	v.c.SetViewport(w, h)
}

// draw draws the viewport at the current scroll position.
func (v *viewer) draw() error {
	return v.r.DrawHTML(v.buf, gfx.RGBA32, v.w, v.h, 4*v.w, v.x, v.y)
}

// scrollTo moves the viewport, keeping it inside the document if the
// document is higher than the viewport, and draws it.
func (v *viewer) scrollTo(x, y int) error {
	v.x = dimen.Max(0, x)
	v.y = dimen.Max(0, dimen.Min(y, v.doc.Height()-v.h))
	return v.draw()
}

// pixels returns the content of the pixel buffer.
func (v *viewer) pixels() (*gfx.Pixmap, error) {
	return gfx.NewPixmap(v.buf, gfx.RGBA32, v.w, v.h, 4*v.w)
}

// save writes the pixel buffer to an image file. The format is taken from
// the file extension.
func (v *viewer) save(path string) error {
	pm, err := v.pixels()
	if err != nil {
		return err
	}
	if err = imaging.Save(pm.Image(), path); err != nil {
		return core.WrapError(err, core.EINVALID, "cannot save image to %s", path)
	}
	return nil
}

func (v *viewer) close() {
	v.doc.Close()
	v.c.Close()
}
