package render

import (
	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/dimen"
)

// Document is something which can be drawn onto a surface.
type Document interface {
	// Draw draws the document with its origin at (x, y), limiting output to
	// clip. Documents must produce the same pixels for a region regardless
	// of the clip.
	Draw(s gfx.Surface, x, y int, clip dimen.Rect)
}

// Layouter is implemented by documents which lay out their content for a
// viewport width. Layout returns the resulting document height.
type Layouter interface {
	Layout(width int) int
}

// Stats counts the work done by a renderer.
type Stats struct {
	FullDraws        int // draws of the whole viewport
	IncrementalDraws int // draws which re-used pixels
	RasterCopies     int // in-buffer pixel shifts
	StripDraws       int // exposed strips drawn
}

// Renderer draws a document into pixel buffers, re-using pixels of the
// previous draw when possible.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	doc        Document
	surface    gfx.Surface
	background gfx.Color
	state      state
	laidOut    int // width of last layout, or -1
	stats      Stats
}

// state is what the renderer remembers of the last draw.
type state struct {
	rendered         bool
	buf              []byte
	format           gfx.Format
	w, h, stride     int
	scrollX, scrollY int
}

// New creates a renderer drawing doc onto surface, which will be attached
// to the buffers passed to DrawHTML.
func New(doc Document, surface gfx.Surface, background gfx.Color) *Renderer {
	return &Renderer{
		doc:        doc,
		surface:    surface,
		background: background,
		laidOut:    -1,
	}
}

// Surface returns the renderer's surface.
func (r *Renderer) Surface() gfx.Surface {
	return r.surface
}

// Stats returns the renderer's counters.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Invalidate forces the next call to DrawHTML to draw the whole viewport.
func (r *Renderer) Invalidate() {
	r.state.rendered = false
}

// SetDocument replaces the document. The next draw is a full one.
func (r *Renderer) SetDocument(doc Document) {
	r.doc = doc
	r.laidOut = -1
	r.Invalidate()
}

// DrawHTML draws the viewport of the document starting at (scrollX, scrollY)
// into buf, which holds h rows of w pixels of the given format, rows
// stride bytes apart. A negative stride denotes bottom-up rows.
//
// If buf is the buffer drawn into last time, with unchanged geometry, and the
// viewport moved less than its width and height, the previous content is
// shifted and only the newly exposed strips are drawn. Otherwise the whole
// viewport is drawn. Errors are those of attaching the surface to buf.
func (r *Renderer) DrawHTML(buf []byte, format gfx.Format, w, h, stride int, scrollX, scrollY int) error {
	if r.doc == nil || r.surface == nil {
		return core.Error(core.EINVALID, "renderer has no document or surface")
	}
	next := state{
		rendered: true,
		buf:      buf,
		format:   format,
		w:        w,
		h:        h,
		stride:   stride,
		scrollX:  scrollX,
		scrollY:  scrollY,
	}
	dx, dy := scrollX-r.state.scrollX, scrollY-r.state.scrollY
	if r.needsFullDraw(next, dx, dy) {
		if err := r.surface.Attach(buf, format, w, h, stride); err != nil {
			r.state = state{}
			return err
		}
		r.layout(w)
		r.fullDraw(scrollX, scrollY)
	} else if dx != 0 || dy != 0 {
		r.scroll(dx, dy, scrollX, scrollY)
	}
	r.state = next
	return nil
}

func (r *Renderer) needsFullDraw(next state, dx, dy int) bool {
	last := r.state
	switch {
	case !last.rendered:
		return true
	case !gfx.SameBuffer(last.buf, next.buf):
		return true
	case last.w != next.w || last.h != next.h || last.stride != next.stride || last.format != next.format:
		return true
	case dimen.Abs(dx) >= next.w || dimen.Abs(dy) >= next.h:
		return true
	}
	return false
}

func (r *Renderer) layout(width int) {
	if l, ok := r.doc.(Layouter); ok && width != r.laidOut {
		height := l.Layout(width)
		r.laidOut = width
		tracer().Debugf("document laid out for width %d, height is %d", width, height)
	}
}

func (r *Renderer) fullDraw(scrollX, scrollY int) {
	viewport := r.surface.Pixels().Bounds()
	r.drawRegion(viewport, scrollX, scrollY)
	r.stats.FullDraws++
	tracer().Debugf("full draw of %v at scroll position (%d,%d)", viewport, scrollX, scrollY)
}

// scroll shifts the buffer content by the scroll delta and draws the strips
// uncovered: a vertical strip |dx| wide at the side scrolled towards and a
// horizontal strip |dy| high.
func (r *Renderer) scroll(dx, dy, scrollX, scrollY int) {
	pm := r.surface.Pixels()
	pm.Scroll(dx, dy)
	r.stats.RasterCopies++
	w, h := pm.Width(), pm.Height()
	if dx > 0 {
		r.drawStrip(dimen.R(w-dx, 0, dx, h), scrollX, scrollY)
	} else if dx < 0 {
		r.drawStrip(dimen.R(0, 0, -dx, h), scrollX, scrollY)
	}
	if dy > 0 {
		r.drawStrip(dimen.R(0, h-dy, w, dy), scrollX, scrollY)
	} else if dy < 0 {
		r.drawStrip(dimen.R(0, 0, w, -dy), scrollX, scrollY)
	}
	r.stats.IncrementalDraws++
	tracer().Debugf("scrolled by (%d,%d) to (%d,%d)", dx, dy, scrollX, scrollY)
}

func (r *Renderer) drawStrip(strip dimen.Rect, scrollX, scrollY int) {
	r.drawRegion(strip, scrollX, scrollY)
	r.stats.StripDraws++
}

func (r *Renderer) drawRegion(region dimen.Rect, scrollX, scrollY int) {
	s := r.surface
	s.Save()
	defer s.Restore()
	s.Clip(region)
	s.SetColor(r.background)
	s.Clear()
	r.doc.Draw(s, -scrollX, -scrollY, s.ClipRect())
}
