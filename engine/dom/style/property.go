package style

import (
	"sort"
	"strings"

	"github.com/npillmayer/htmlpix/core/parameters"
)

// Property is a raw CSS property value.
type Property string

// NullStyle is an empty property value.
const NullStyle Property = ""

// Is compares a property case-insensitively to a keyword.
func (p Property) Is(keyword string) bool {
	return strings.EqualFold(strings.TrimSpace(string(p)), keyword)
}

func (p Property) String() string {
	return string(p)
}

// PropertyMap holds the CSS properties of an element, keyed by property name.
type PropertyMap struct {
	m map[string]Property
}

// NewPropertyMap creates an empty property map.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{m: make(map[string]Property)}
}

// Property returns the value of a property, if set.
func (pm *PropertyMap) Property(key string) (Property, bool) {
	if pm == nil {
		return NullStyle, false
	}
	p, ok := pm.m[key]
	return p, ok
}

// Get returns the value of a property, or NullStyle.
func (pm *PropertyMap) Get(key string) Property {
	p, _ := pm.Property(key)
	return p
}

// Set sets a property. Keys are normalized to lower case.
func (pm *PropertyMap) Set(key string, value Property) {
	pm.m[strings.ToLower(strings.TrimSpace(key))] = Property(strings.TrimSpace(string(value)))
}

// Delete removes a property.
func (pm *PropertyMap) Delete(key string) {
	delete(pm.m, key)
}

// Len returns the number of properties set.
func (pm *PropertyMap) Len() int {
	if pm == nil {
		return 0
	}
	return len(pm.m)
}

// Keys returns the names of all properties set, sorted.
func (pm *PropertyMap) Keys() []string {
	if pm == nil {
		return nil
	}
	keys := make([]string, 0, len(pm.m))
	for k := range pm.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a copy of pm.
func (pm *PropertyMap) Clone() *PropertyMap {
	c := NewPropertyMap()
	if pm != nil {
		for k, v := range pm.m {
			c.m[k] = v
		}
	}
	return c
}

func (pm *PropertyMap) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range pm.Keys() {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(string(pm.m[k]))
	}
	b.WriteByte('}')
	return b.String()
}

// --- Inheritance -----------------------------------------------------------

// inherited maps inherited CSS properties to the style registers carrying
// them down the tree.
var inherited = map[string]parameters.StyleParameter{
	"font-family":     parameters.P_FONTFAMILY,
	"font-size":       parameters.P_FONTSIZE,
	"font-weight":     parameters.P_FONTWEIGHT,
	"font-style":      parameters.P_FONTSTYLE,
	"color":           parameters.P_COLOR,
	"text-decoration": parameters.P_TEXTDECORATION,
	"line-height":     parameters.P_LINEHEIGHT,
	"list-style-type": parameters.P_LISTSTYLE,
	"white-space":     parameters.P_WHITESPACE,
	"text-align":      parameters.P_TEXTALIGN,
}

// IsInherited is true for properties an element inherits from its parent
// if not set for the element itself. Text decorations are not inherited
// in CSS, but are drawn for descendants, which amounts to the same thing
// here.
func IsInherited(key string) bool {
	_, ok := inherited[key]
	return ok
}

// Register returns the style register for an inherited property.
func Register(key string) (parameters.StyleParameter, bool) {
	p, ok := inherited[key]
	return p, ok
}

// InheritedProperties lists all inherited properties, sorted.
func InheritedProperties() []string {
	keys := make([]string, 0, len(inherited))
	for k := range inherited {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
