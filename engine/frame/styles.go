package frame

import (
	"fmt"
	"strings"

	"github.com/npillmayer/htmlpix/backend/gfx"
	"github.com/npillmayer/htmlpix/core/font/fontregistry"
	"github.com/npillmayer/htmlpix/engine/dom/style"
	"github.com/npillmayer/htmlpix/engine/dom/style/css"
	"github.com/npillmayer/htmlpix/engine/dom/styledtree"
	"github.com/npillmayer/htmlpix/engine/frame/inline"
	"github.com/npillmayer/htmlpix/engine/text"
)

// TextStyle is the styling of text runs, as far as the layout engine
// supports it.
type TextStyle struct {
	Families   string
	Size       int // pixels
	Weight     int
	Style      fontregistry.Style
	Decoration text.Decoration
	Color      gfx.Color
	LineHeight style.Property
	WhiteSpace inline.WhiteSpace
	Align      inline.Align
}

// TextStyleOf extracts the text style of a styled node. dfltSize is used if
// the node has no valid font size.
func TextStyleOf(sn *styledtree.StyNode, dfltSize int) TextStyle {
	ts := TextStyle{
		Families:   string(sn.Get("font-family")),
		Size:       css.DimenOption(sn.Get("font-size")).PxOr(css.Context{}, dfltSize),
		Decoration: text.ParseDecoration(string(sn.Get("text-decoration"))),
		Color:      colorOr(sn.Get("color"), gfx.Black),
		LineHeight: sn.Get("line-height"),
		WhiteSpace: inline.ParseWhiteSpace(string(sn.Get("white-space"))),
		Align:      inline.ParseAlign(string(sn.Get("text-align"))),
	}
	if ts.Size < 1 {
		ts.Size = 1
	}
	ts.Weight, _ = fontregistry.ParseFontWeight(string(sn.Get("font-weight")), 400)
	ts.Style, _ = fontregistry.ParseFontStyle(string(sn.Get("font-style")))
	return ts
}

func colorOr(p style.Property, dflt gfx.Color) gfx.Color {
	if p == style.NullStyle || p.Is("currentcolor") {
		return dflt
	}
	if c, ok := p.Color(); ok {
		return gfx.ColorFrom(c)
	}
	return dflt
}

var sides = [4]string{"top", "right", "bottom", "left"}

var borderWidthKeywords = map[string]style.Property{
	"thin":   "1px",
	"medium": "3px",
	"thick":  "5px",
}

// BoxOf creates a box from the box properties of a styled node.
func BoxOf(sn *styledtree.StyNode) *Box {
	box := &Box{
		W:               css.DimenOption(sn.Get("width")),
		H:               css.DimenOption(sn.Get("height")),
		MinW:            css.DimenOption(sn.Get("min-width")),
		MaxW:            css.DimenOption(sn.Get("max-width")),
		BorderBoxSizing: sn.Get("box-sizing").Is("border-box"),
	}
	for dir, side := range sides {
		box.Padding[dir] = css.DimenOption(sn.Get("padding-" + side))
		box.Margins[dir] = css.DimenOption(sn.Get("margin-" + side))
		bw := sn.Get(fmt.Sprintf("border-%s-width", side))
		if kw, ok := borderWidthKeywords[strings.ToLower(string(bw))]; ok {
			bw = kw
		}
		box.BorderWidth[dir] = css.DimenOption(bw)
	}
	box.AutoMargins[0] = sn.Get("margin-left").Is("auto")
	box.AutoMargins[1] = sn.Get("margin-right").Is("auto")
	return box
}

// BoxColors are the colors of a box's background and border.
type BoxColors struct {
	Background gfx.Color
	Border     [4]gfx.Color
}

// BoxColorsOf extracts background and border colors of a styled node.
// Borders default to the text color.
func BoxColorsOf(sn *styledtree.StyNode, fg gfx.Color) BoxColors {
	bc := BoxColors{Background: colorOr(sn.Get("background-color"), gfx.Transparent)}
	if bc.Background == gfx.Transparent {
		bc.Background = colorOr(sn.Get("background"), gfx.Transparent)
	}
	for dir, side := range sides {
		bc.Border[dir] = colorOr(sn.Get(fmt.Sprintf("border-%s-color", side)), fg)
	}
	return bc
}
