/*
Package parameters implements grouped registers for inheritable style
parameters.

Registers hold a base value for every parameter. Clients may open a group,
override parameters inside of it and close the group again, which restores
the values in effect before the group was opened. The styling of an HTML
tree uses one group per element, thus implementing CSS inheritance.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parameters

import (
	"fmt"
)

// StyleParameter is a key for an inheritable style parameter.
type StyleParameter int

//go:generate stringer -type=StyleParameter
const (
	none StyleParameter = iota
	P_FONTFAMILY
	P_FONTSIZE
	P_FONTWEIGHT
	P_FONTSTYLE
	P_COLOR
	P_TEXTDECORATION
	P_LINEHEIGHT
	P_LISTSTYLE
	P_WHITESPACE
	P_LANGUAGE
	P_TEXTALIGN
	P_STOPPER
)

// ParameterGroup holds the parameters overridden within one group level.
type ParameterGroup struct {
	params map[StyleParameter]interface{}
	level  int
	next   *ParameterGroup
}

// StyleRegisters is a set of style parameters with grouping.
type StyleRegisters struct {
	base       [P_STOPPER]interface{}
	groups     *ParameterGroup
	grouplevel int
}

// ----------------------------------------------------------------------

// NewStyleRegisters creates a register set with base values. Base values
// follow the initial values of the corresponding CSS properties.
func NewStyleRegisters() *StyleRegisters {
	regs := &StyleRegisters{}
	initParameters(&regs.base)
	return regs
}

func initParameters(p *[P_STOPPER]interface{}) {
	p[P_FONTFAMILY] = "serif"
	p[P_FONTSIZE] = 16.0 // pixels
	p[P_FONTWEIGHT] = 400
	p[P_FONTSTYLE] = "normal"
	p[P_COLOR] = "black"
	p[P_TEXTDECORATION] = "none"
	p[P_LINEHEIGHT] = "normal"
	p[P_LISTSTYLE] = "disc"
	p[P_WHITESPACE] = "normal"
	p[P_LANGUAGE] = "en"
	p[P_TEXTALIGN] = "left"
}

// Level returns the current group nesting level (0 = base level).
func (regs *StyleRegisters) Level() int {
	return regs.grouplevel
}

// Begingroup opens a new group.
func (regs *StyleRegisters) Begingroup() {
	regs.grouplevel++
}

// Endgroup closes the innermost group, dropping all parameters set within it.
// Calling Endgroup on the base level does nothing.
func (regs *StyleRegisters) Endgroup() {
	if regs.grouplevel == 0 {
		return
	}
	if regs.groups != nil && regs.groups.level == regs.grouplevel {
		regs.groups = regs.groups.next
	}
	regs.grouplevel--
}

// Push sets a parameter for the current group level. On the base level
// it overwrites the base value.
func (regs *StyleRegisters) Push(key StyleParameter, value interface{}) {
	checkKey(key)
	if regs.grouplevel == 0 {
		regs.base[key] = value
		return
	}
	g := regs.groups
	if g == nil || g.level < regs.grouplevel {
		g = &ParameterGroup{
			params: make(map[StyleParameter]interface{}),
			level:  regs.grouplevel,
			next:   regs.groups,
		}
		regs.groups = g
	}
	g.params[key] = value
}

// Get returns the value of a parameter currently in effect.
func (regs *StyleRegisters) Get(key StyleParameter) interface{} {
	checkKey(key)
	for g := regs.groups; g != nil; g = g.next {
		if value, ok := g.params[key]; ok {
			return value
		}
	}
	return regs.base[key]
}

// S returns a string parameter.
func (regs *StyleRegisters) S(key StyleParameter) string {
	if s, ok := regs.Get(key).(string); ok {
		return s
	}
	return fmt.Sprintf("%v", regs.Get(key))
}

// N returns an integer parameter.
func (regs *StyleRegisters) N(key StyleParameter) int {
	switch x := regs.Get(key).(type) {
	case int:
		return x
	case float64:
		return int(x)
	}
	return 0
}

// F returns a floating point parameter.
func (regs *StyleRegisters) F(key StyleParameter) float64 {
	switch x := regs.Get(key).(type) {
	case int:
		return float64(x)
	case float64:
		return x
	}
	return 0
}

func checkKey(key StyleParameter) {
	if key <= none || key >= P_STOPPER {
		panic("parameter key outside range of style parameters")
	}
}
