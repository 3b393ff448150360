package gfx

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/dimen"
)

// Surface is a drawing context attached to a pixel buffer.
//
// All drawing operations respect the current clip rectangle. Operations on a
// surface which has not been attached are no-ops.
type Surface interface {
	// Attach binds the surface to a pixel buffer and resets its state.
	Attach(buf []byte, format Format, w, h, stride int) error
	Pixels() *Pixmap // nil if not attached
	Kind() Kind

	SetColor(c Color)
	Color() Color
	Clear()                // fill clip area with current color
	FillRect(r dimen.Rect) // composite current color over r

	// BlendHSpan composites the current color with the given coverage over
	// pixels x1…x2-1 of row y. CopyHSpan overwrites them.
	BlendHSpan(x1, y, x2 int, coverage uint8)
	CopyHSpan(x1, y, x2 int)

	// DrawGlyphs draws a positioned glyph run in color c. Glyph pixels outside
	// of extents are not drawn.
	DrawGlyphs(run []Glyph, font GlyphOutliner, extents dimen.Rect, c Color)

	Save()
	Restore()
	Clip(r dimen.Rect)
	ClipRect() dimen.Rect

	// CopyFrom copies the pixels of other onto the surface, other's origin
	// placed at (dx, dy). BlendFrom uses other as a coverage mask for c.
	CopyFrom(other Surface, dx, dy int)
	BlendFrom(other Surface, c Color, dx, dy int)
}

// Kind identifies a surface backend.
type Kind int

// Backends
const (
	KindUnknown Kind = iota
	Raster
	Vector
	Canvas
)

var kindNames = map[Kind]string{
	Raster: "raster",
	Vector: "vector",
	Canvas: "canvas",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the backend kind for a name like "raster".
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindUnknown, core.Error(core.EINVALID, "unknown surface backend %q", s)
}

// --- Backend registry ------------------------------------------------------

// Factory creates an unattached surface.
type Factory func() Surface

var registry = struct {
	sync.RWMutex
	factories map[Kind]Factory
}{factories: make(map[Kind]Factory)}

// RegisterBackend makes a backend available for NewSurface. Backend packages
// call it from their init functions.
func RegisterBackend(kind Kind, factory Factory) {
	registry.Lock()
	defer registry.Unlock()
	registry.factories[kind] = factory
	tracer().Debugf("registered surface backend %s", kind)
}

// Backends lists the kinds of all registered backends.
func Backends() []Kind {
	registry.RLock()
	defer registry.RUnlock()
	kinds := make([]Kind, 0, len(registry.factories))
	for k := range registry.factories {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// NewSurface creates an unattached surface of the given kind. If no backend
// for kind is registered, an error with code core.EUNSUPPORTED is returned.
func NewSurface(kind Kind) (Surface, error) {
	registry.RLock()
	factory, ok := registry.factories[kind]
	registry.RUnlock()
	if !ok {
		return nil, core.Error(core.EUNSUPPORTED, "no surface backend %s registered", kind)
	}
	return factory(), nil
}

// NewOffscreen creates a surface of the given kind with a buffer of its own,
// cleared to transparent (black for formats without alpha).
func NewOffscreen(kind Kind, format Format, w, h int) (Surface, error) {
	s, err := NewSurface(kind)
	if err != nil {
		return nil, err
	}
	pm, err := AllocPixmap(format, w, h)
	if err != nil {
		return nil, err
	}
	if err = s.Attach(pm.Bytes(), format, w, h, pm.Stride()); err != nil {
		return nil, err
	}
	return s, nil
}
