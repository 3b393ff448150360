package inline

import (
	"strings"

	"github.com/rivo/uniseg"
)

// WhiteSpace is a white space handling mode, as for CSS property
// white-space.
type WhiteSpace int8

// White space modes. PreWrap is handled like Pre.
const (
	WSNormal WhiteSpace = iota
	WSNoWrap
	WSPre
	WSPreWrap
	WSPreLine
)

// ParseWhiteSpace interprets the value of CSS property white-space.
func ParseWhiteSpace(s string) WhiteSpace {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nowrap":
		return WSNoWrap
	case "pre":
		return WSPre
	case "pre-wrap", "break-spaces":
		return WSPreWrap
	case "pre-line":
		return WSPreLine
	}
	return WSNormal
}

// Segment is a piece of text between two line break opportunities.
type Segment struct {
	Text      string // without trailing white space
	Space     bool   // followed by collapsible white space
	MustBreak bool   // followed by a forced line break
}

// Segments splits text into segments. White space is collapsed unless
// ws preserves it. A segment with empty text and Space set stands for
// leading white space.
func Segments(text string, ws WhiteSpace) []Segment {
	switch ws {
	case WSPre, WSPreWrap:
		lines := strings.Split(text, "\n")
		segs := make([]Segment, 0, len(lines))
		for i, l := range lines {
			segs = append(segs, Segment{
				Text:      expandTabs(strings.TrimSuffix(l, "\r")),
				MustBreak: i < len(lines)-1,
			})
		}
		return segs
	case WSPreLine:
		var segs []Segment
		lines := strings.Split(text, "\n")
		for i, l := range lines {
			s := breakable(collapse(l))
			if i < len(lines)-1 {
				if len(s) == 0 {
					s = append(s, Segment{})
				}
				s[len(s)-1].MustBreak = true
			}
			segs = append(segs, s...)
		}
		return segs
	case WSNoWrap:
		c := collapse(text)
		var segs []Segment
		if strings.HasPrefix(c, " ") {
			segs = append(segs, Segment{Space: true})
			c = c[1:]
		}
		if c != "" {
			t := strings.TrimSuffix(c, " ")
			segs = append(segs, Segment{Text: t, Space: t != c})
		}
		return segs
	}
	return breakable(collapse(text))
}

// breakable splits collapsed text at line break opportunities.
func breakable(text string) []Segment {
	var segs []Segment
	state := -1
	var seg string
	for len(text) > 0 {
		seg, text, _, state = uniseg.FirstLineSegmentInString(text, state)
		t := strings.TrimRight(seg, " ")
		segs = append(segs, Segment{Text: t, Space: t != seg})
	}
	return segs
}

// collapse replaces every run of white space by a single space.
func collapse(text string) string {
	var b strings.Builder
	space := false
	for _, r := range text {
		if collapsible(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

// collapsible is true for document white space. No-break spaces do not
// collapse.
func collapsible(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := 8 - col%8
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
