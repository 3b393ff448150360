package styledtree

import (
	"sort"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/npillmayer/htmlpix/core"
	"github.com/npillmayer/htmlpix/core/font/fontregistry"
	"github.com/npillmayer/htmlpix/core/parameters"
	"github.com/npillmayer/htmlpix/engine/dom/style"
	csstype "github.com/npillmayer/htmlpix/engine/dom/style/css"
	"golang.org/x/net/html"
)

// Media describes the output medium for the evaluation of @media rules.
type Media struct {
	Type          string // e.g., "screen"
	Width, Height int    // viewport in pixels
}

// Defaults are the initial values of inherited font properties.
type Defaults struct {
	FontFamily string
	FontSize   float64 // pixels, size of keyword "medium"
	Color      string
	Lang       string
}

// DefaultsFrom creates defaults from a font size and family.
func DefaultsFrom(size float64, family string) Defaults {
	return Defaults{FontFamily: family, FontSize: size, Color: "black", Lang: "en"}
}

// Builder builds styled trees, applying style sheets.
type Builder struct {
	media Media
	rules []*rule
	count int // rules added, for source order
}

type rule struct {
	sel   cascadia.Sel
	spec  cascadia.Specificity
	order int
	decls []*css.Declaration
}

// NewBuilder creates a builder for a given output medium.
func NewBuilder(media Media) *Builder {
	if media.Type == "" {
		media.Type = "screen"
	}
	return &Builder{media: media}
}

// AddStyleSheet parses a style sheet and adds its rules. Rules with
// selectors which cannot be compiled are skipped, as are rules within
// @media blocks which do not apply to the builder's medium. A sheet which
// cannot be parsed is an error with code core.EINVALID.
func (b *Builder) AddStyleSheet(text string) error {
	sheet, err := parser.Parse(text)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot parse style sheet")
	}
	b.addRules(sheet.Rules)
	tracer().Debugf("style sheet added, have %d rules", len(b.rules))
	return nil
}

// RuleCount returns the number of selector rules added so far.
func (b *Builder) RuleCount() int {
	return len(b.rules)
}

func (b *Builder) addRules(rules []*css.Rule) {
	for _, r := range rules {
		if r.Kind == css.AtRule {
			name := strings.TrimPrefix(strings.ToLower(r.Name), "@")
			if name == "media" && b.mediaMatches(r.Prelude) {
				b.addRules(r.Rules)
			} else {
				tracer().Debugf("skipping @%s %s", name, r.Prelude)
			}
			continue
		}
		b.count++
		for _, s := range r.Selectors {
			sel, err := cascadia.Parse(s)
			if err != nil {
				tracer().Errorf("skipping selector %q: %v", s, err)
				continue
			}
			if sel.PseudoElement() != "" {
				continue
			}
			b.rules = append(b.rules, &rule{
				sel:   sel,
				spec:  sel.Specificity(),
				order: b.count,
				decls: r.Declarations,
			})
		}
	}
}

// mediaMatches evaluates a media query list. Supported are media types and
// the width features (min-width, max-width, width).
func (b *Builder) mediaMatches(prelude string) bool {
	for _, query := range strings.Split(prelude, ",") {
		if b.queryMatches(strings.ToLower(query)) {
			return true
		}
	}
	return false
}

func (b *Builder) queryMatches(query string) bool {
	negate := false
	ok := true
	for _, part := range strings.Split(query, " and ") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "(") {
			ok = ok && b.featureMatches(strings.Trim(part, "()"))
			continue
		}
		words := strings.Fields(part)
		for _, w := range words {
			switch w {
			case "not":
				negate = true
			case "only":
			default:
				ok = ok && (w == "all" || w == b.media.Type)
			}
		}
	}
	return ok != negate
}

func (b *Builder) featureMatches(feature string) bool {
	kv := strings.SplitN(feature, ":", 2)
	if len(kv) != 2 {
		return false
	}
	px, ok := csstype.DimenOption(style.Property(kv[1])).Px(csstype.Context{FontSize: 16, RootFontSize: 16})
	if !ok {
		return false
	}
	w := float64(b.media.Width)
	switch strings.TrimSpace(kv[0]) {
	case "min-width":
		return w >= px
	case "max-width":
		return w <= px
	case "width":
		return w == px
	}
	return false
}

// --- Cascade ---------------------------------------------------------------

// Build styles the DOM tree below root and returns the styled tree. The
// root of the styled tree corresponds to root and carries the defaults.
// Comments and doctype nodes are dropped.
func (b *Builder) Build(root *html.Node, defaults Defaults) *StyNode {
	regs := parameters.NewStyleRegisters()
	regs.Push(parameters.P_FONTFAMILY, defaults.FontFamily)
	regs.Push(parameters.P_FONTSIZE, defaults.FontSize)
	regs.Push(parameters.P_COLOR, defaults.Color)
	regs.Push(parameters.P_LANGUAGE, defaults.Lang)
	c := &cascade{Builder: b, regs: regs, defaults: defaults, root: defaults.FontSize}
	sn := NewNodeForHTMLNode(root)
	sn.SetStyles(c.inheritedStyles())
	c.children(sn)
	return sn
}

type cascade struct {
	*Builder
	regs     *parameters.StyleRegisters
	defaults Defaults
	root     float64 // font size of root element
}

type declaration struct {
	value     style.Property
	important bool
}

func (c *cascade) children(sn *StyNode) {
	for h := sn.htmlNode.FirstChild; h != nil; h = h.NextSibling {
		switch h.Type {
		case html.ElementNode:
			ch := NewNodeForHTMLNode(h)
			sn.AddChild(ch)
			c.element(ch)
		case html.TextNode:
			ch := NewNodeForHTMLNode(h)
			ch.SetStyles(sn.Styles())
			sn.AddChild(ch)
		}
	}
}

func (c *cascade) element(sn *StyNode) {
	c.regs.Begingroup()
	defer c.regs.Endgroup()
	declared := c.declarations(sn.htmlNode)
	parent := sn.parent.Styles()
	styles := style.NewPropertyMap()
	for _, key := range cascadeOrder(declared) {
		value := declared[key].value
		switch {
		case value.Is("inherit"):
			if style.IsInherited(key) {
				continue // carried by the registers
			}
			if value = parent.Get(key); value == style.NullStyle {
				continue
			}
		case value.Is("initial"):
			if style.IsInherited(key) {
				c.pushInitial(key)
			}
			continue
		}
		if reg, ok := style.Register(key); ok {
			c.regs.Push(reg, c.compute(key, value))
			continue
		}
		styles.Set(key, value)
	}
	if lang := attr(sn.htmlNode, "lang"); lang != "" {
		c.regs.Push(parameters.P_LANGUAGE, lang)
	}
	c.snapshot(styles)
	if sn.Tag() == "html" {
		c.root = c.regs.F(parameters.P_FONTSIZE)
	}
	sn.SetStyles(styles)
	c.children(sn)
}

// cascadeOrder sorts the declared properties, font-size first, as other
// properties may depend on it.
func cascadeOrder(declared map[string]declaration) []string {
	keys := make([]string, 0, len(declared))
	for k := range declared {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "font-size" || keys[j] == "font-size" {
			return keys[i] == "font-size"
		}
		return keys[i] < keys[j]
	})
	return keys
}

// declarations collects the declarations applying to an element, the
// winning declaration for each property.
func (c *cascade) declarations(h *html.Node) map[string]declaration {
	declared := make(map[string]declaration)
	set := func(decls []*css.Declaration, important bool) {
		for _, d := range decls {
			if d.Important != important {
				continue
			}
			for k, v := range style.Shorthands(strings.ToLower(d.Property), style.Property(d.Value)) {
				declared[k] = declaration{value: v, important: d.Important}
			}
		}
	}
	var matched []*rule
	for _, r := range c.rules {
		if r.sel.Match(h) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].spec == matched[j].spec {
			return matched[i].order < matched[j].order
		}
		return matched[i].spec.Less(matched[j].spec)
	})
	var inline []*css.Declaration
	if s := attr(h, "style"); s != "" {
		var err error
		if inline, err = parseDeclarations(s); err != nil {
			tracer().Errorf("ignoring style attribute %q: %v", s, err)
			inline = nil
		}
	}
	if ua := style.UserAgentDeclarations(h.Data); ua != "" {
		decls, _ := parseDeclarations(ua)
		set(decls, false)
	}
	for _, important := range []bool{false, true} {
		for _, r := range matched {
			set(r.decls, important)
		}
		set(inline, important)
	}
	return declared
}

// parseDeclarations parses a declaration list as found in style attributes.
// The parser drops the value of a last declaration not terminated by ';'.
func parseDeclarations(text string) ([]*css.Declaration, error) {
	text = strings.TrimSpace(text)
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	return parser.ParseDeclarations(text)
}

func (c *cascade) pushInitial(key string) {
	reg, _ := style.Register(key)
	initial := parameters.NewStyleRegisters().Get(reg)
	switch reg {
	case parameters.P_FONTFAMILY:
		initial = c.defaults.FontFamily
	case parameters.P_FONTSIZE:
		initial = c.defaults.FontSize
	case parameters.P_COLOR:
		initial = c.defaults.Color
	}
	c.regs.Push(reg, initial)
}

// compute converts inherited properties to the values inherited by
// children: font sizes to pixels, font weights to numbers.
func (c *cascade) compute(key string, value style.Property) interface{} {
	switch key {
	case "font-size":
		parent := c.regs.F(parameters.P_FONTSIZE)
		return csstype.FontSize(value, parent, c.root, c.defaults.FontSize)
	case "font-weight":
		w, ok := fontregistry.ParseFontWeight(string(value), c.regs.N(parameters.P_FONTWEIGHT))
		if !ok {
			tracer().Debugf("invalid font weight %q", value)
		}
		return w
	case "line-height":
		// numbers are inherited as numbers, lengths as computed lengths
		d := csstype.DimenOption(value)
		if d.IsNumber() || value.Is("normal") {
			return string(value)
		}
		if px, ok := d.Px(csstype.Context{
			FontSize:     c.regs.F(parameters.P_FONTSIZE),
			RootFontSize: c.root,
			Percent:      c.regs.F(parameters.P_FONTSIZE),
		}); ok {
			return strconv.FormatFloat(px, 'f', -1, 64) + "px"
		}
		return "normal"
	}
	return string(value)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// inheritedStyles creates a property map holding the current values of all
// inherited properties.
func (c *cascade) inheritedStyles() *style.PropertyMap {
	styles := style.NewPropertyMap()
	c.snapshot(styles)
	return styles
}

// snapshot sets the current values of all inherited properties in styles.
// Font sizes are set in pixels.
func (c *cascade) snapshot(styles *style.PropertyMap) {
	for _, key := range style.InheritedProperties() {
		reg, _ := style.Register(key)
		styles.Set(key, style.Property(c.regs.S(reg)))
	}
	size := strconv.FormatFloat(c.regs.F(parameters.P_FONTSIZE), 'f', -1, 64)
	styles.Set("font-size", style.Property(size+"px"))
	styles.Set("lang", style.Property(c.regs.S(parameters.P_LANGUAGE)))
}
