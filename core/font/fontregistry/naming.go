package fontregistry

import (
	"path"
	"strconv"
	"strings"

	gotext "github.com/go-text/typesetting/font"
)

// GuessStyleAndWeight trys to guess a font's style and weight from the
// font's file name.
func GuessStyleAndWeight(fontfilename string) (Style, gotext.Weight) {
	fontfilename = path.Base(fontfilename)
	ext := path.Ext(fontfilename)
	fontfilename = strings.ToLower(fontfilename[:len(fontfilename)-len(ext)])
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return StyleNormal, gotext.WeightLight
		case "normal", "medium", "regular", "r":
			return StyleNormal, gotext.WeightNormal
		case "bold", "b":
			return StyleNormal, gotext.WeightBold
		case "xbold", "black":
			return StyleNormal, gotext.WeightExtraBold
		case "italic", "i", "oblique":
			return StyleItalic, gotext.WeightNormal
		case "bolditalic", "bi":
			return StyleItalic, gotext.WeightBold
		}
	}
	style, weight := StyleNormal, gotext.WeightNormal
	if strings.Contains(fontfilename, "italic") || strings.Contains(fontfilename, "oblique") {
		style = StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = gotext.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = gotext.WeightBold
	}
	return style, weight
}

// Matches returns true if a font's filename contains pattern and indicators
// for a given style and weight.
func Matches(fontfilename, pattern string, style Style, weight gotext.Weight) bool {
	basename := path.Base(fontfilename)
	basename = basename[:len(basename)-len(path.Ext(basename))]
	basename = strings.ToLower(basename)
	if !strings.Contains(basename, strings.ToLower(pattern)) {
		return false
	}
	s, w := GuessStyleAndWeight(basename)
	return s == style && w == weight
}

// ParseFontStyle interprets a CSS font-style value.
func ParseFontStyle(s string) (Style, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "":
		return StyleNormal, true
	case "italic", "oblique":
		return StyleItalic, true
	}
	if strings.HasPrefix(strings.ToLower(s), "oblique ") {
		return StyleItalic, true
	}
	return StyleNormal, false
}

// ParseFontWeight interprets a CSS font-weight value. Relative weights
// (bolder, lighter) are computed from the inherited weight, following the
// table of CSS Fonts Level 4.
func ParseFontWeight(s string, inherited int) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "normal":
		return 400, true
	case "bold":
		return 700, true
	case "bolder":
		switch {
		case inherited < 350:
			return 400, true
		case inherited < 550:
			return 700, true
		}
		return 900, true
	case "lighter":
		switch {
		case inherited < 550:
			return 100, true
		case inherited < 750:
			return 400, true
		}
		return 700, true
	}
	w, err := strconv.Atoi(s)
	if err != nil || w < 1 || w > 1000 {
		return inherited, false
	}
	return w, true
}
