package frame

import (
	"fmt"
	"math"

	"github.com/npillmayer/htmlpix/core/dimen"
	"github.com/npillmayer/htmlpix/engine/dom/style/css"
)

// For padding, margins, etc. 4-way values always start at the top and travel
// clockwise.
const (
	Top int = iota
	Right
	Bottom
	Left
)

// Box type, following the CSS box model. Dimensions are kept as specified;
// they are fixed to pixels once the width of the enclosing block is known.
type Box struct {
	W, H            css.DimenT    // unset or auto: derived from content
	MinW, MaxW      css.DimenT    // constraints on W
	BorderBoxSizing bool          // box-sizing = border-box ?
	Padding         [4]css.DimenT // inside of border
	BorderWidth     [4]css.DimenT // thickness of border
	Margins         [4]css.DimenT // outside of border
	AutoMargins     [2]bool       // left and right margins are auto
}

// Edges are the pixel widths of the four sides of a box edge.
type Edges [4]int

// Horizontal is the sum of left and right.
func (e Edges) Horizontal() int {
	return e[Left] + e[Right]
}

// Vertical is the sum of top and bottom.
func (e Edges) Vertical() int {
	return e[Top] + e[Bottom]
}

// Frame is a box with all dimensions fixed.
type Frame struct {
	Content dimen.Rect
	Padding Edges
	Border  Edges
	Margins Edges
	// FixedHeight is set if the content height does not depend on the
	// content.
	FixedHeight bool
}

// PaddingBox returns the content box grown by the padding.
func (f Frame) PaddingBox() dimen.Rect {
	return grow(f.Content, f.Padding)
}

// BorderBox returns the padding box grown by the border.
func (f Frame) BorderBox() dimen.Rect {
	return grow(f.PaddingBox(), f.Border)
}

// OuterBox returns the border box grown by the margins.
func (f Frame) OuterBox() dimen.Rect {
	return grow(f.BorderBox(), f.Margins)
}

func grow(r dimen.Rect, e Edges) dimen.Rect {
	return dimen.Rect{
		X: r.X - e[Left],
		Y: r.Y - e[Top],
		W: r.W + e.Horizontal(),
		H: r.H + e.Vertical(),
	}
}

// DebugString returns a textual representation of a box's dimensions.
// Intended for debugging.
func (box *Box) DebugString() string {
	s := fmt.Sprintf("box{\n   w=%v, h=%v  (bbox-sz=%v)\n", box.W, box.H, box.BorderBoxSizing)
	s += fmt.Sprintf("   p.top=%v, p.right=%v, p.bottom=%v, p.left=%v\n",
		box.Padding[Top], box.Padding[Right],
		box.Padding[Bottom], box.Padding[Left])
	s += fmt.Sprintf("   b.top=%v, b.right=%v, b.bottom=%v, b.left=%v\n",
		box.BorderWidth[Top], box.BorderWidth[Right],
		box.BorderWidth[Bottom], box.BorderWidth[Left])
	s += fmt.Sprintf("   m.top=%v, m.right=%v, m.bottom=%v, m.left=%v\n",
		box.Margins[Top], box.Margins[Right],
		box.Margins[Bottom], box.Margins[Left])
	s += "}"
	return s
}

// FixWidth fixes the horizontal dimensions of a box placed into a
// containing block of the given width, following CSS 2.1 §10.3.3. The
// vertical edges are fixed as well, percentages referring to the width of
// the containing block. The content box of the returned frame has its
// origin at the top left corner of the margin box.
func (box *Box) FixWidth(enclosing int, ctx css.Context) Frame {
	ctx.Percent = float64(enclosing)
	var f Frame
	for dir := Top; dir <= Left; dir++ {
		f.Padding[dir] = nonNegative(box.Padding[dir].PxOr(ctx, 0))
		f.Border[dir] = nonNegative(box.BorderWidth[dir].PxOr(ctx, 0))
		f.Margins[dir] = box.Margins[dir].PxOr(ctx, 0)
	}
	deco := f.Padding.Horizontal() + f.Border.Horizontal()
	w, fixed := box.W.Px(ctx)
	if fixed && box.BorderBoxSizing {
		w -= float64(deco)
	}
	if !fixed {
		w = float64(enclosing - deco - f.Margins.Horizontal())
	}
	if max, ok := box.MaxW.Px(ctx); ok && w > max {
		w, fixed = max, true
	}
	if min, ok := box.MinW.Px(ctx); ok && w < min {
		w, fixed = min, true
	}
	width := nonNegative(int(math.Round(w)))
	if fixed {
		rest := enclosing - width - deco - f.Margins.Horizontal()
		switch {
		case box.AutoMargins[0] && box.AutoMargins[1]:
			f.Margins[Left] = nonNegative(rest / 2)
		case box.AutoMargins[0]:
			f.Margins[Left] = nonNegative(rest)
		}
	}
	f.Content = dimen.Rect{
		X: f.Margins[Left] + f.Border[Left] + f.Padding[Left],
		Y: f.Margins[Top] + f.Border[Top] + f.Padding[Top],
		W: width,
	}
	if h, ok := box.H.Px(ctx); ok && !box.H.IsPercent() {
		if box.BorderBoxSizing {
			h -= float64(f.Padding.Vertical() + f.Border.Vertical())
		}
		f.Content.H = nonNegative(int(math.Round(h)))
		f.FixedHeight = true
	}
	return f
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// CollapseMargins returns the space between two adjoining vertical
// margins: the greater one if both are positive, the more negative one if
// both are negative, and their sum otherwise.
func CollapseMargins(m1, m2 int) int {
	switch {
	case m1 >= 0 && m2 >= 0:
		return dimen.Max(m1, m2)
	case m1 < 0 && m2 < 0:
		return dimen.Min(m1, m2)
	}
	return m1 + m2
}
