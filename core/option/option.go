package option

import (
	"errors"
)

var ErrNoSuchMatchPattern = errors.New("no such match pattern")
var ErrCannotMatchUnsetValue = errors.New("cannot match unset value")
var ErrCannotMatchValue = errors.New("cannot match value")

// MaybeOption labels the cases of a match which do not name a concrete
// value.
type MaybeOption int

const (
	None  MaybeOption = iota // the value is unset
	Some                     // the value is set
	Error                    // a case of the match returned an error
)

// Maybe is a type used for matching of optional types.
// It will match `Some` if a value is set, `None` if it is unset, or `Error`
// if an error occurs.
type Maybe map[MaybeOption]interface{}

// Of is a type used for matching of optional types.
// It will first try to match concrete values, and in case of no match will
// then try a Maybe match.
type Of map[interface{}]interface{}

// Type is a type for optional values.
type Type interface {
	Match(choices interface{}) (interface{}, error)
	Equals(other interface{}) bool
	IsNone() bool
}

// Match will do a standard matching of o against choices. Option types
// implement their Match method by calling it.
//
// choices are expected to be of type Of or Maybe. Values of the map may be
// of any type. Values which are functions
//
//     func(interface{}) (interface{}, error)
//     func(interface{}, MaybeOption) (interface{}, error)
//
// are called with o and their result is returned.
//
// If choices is of unknown kind, nil and ErrNoSuchMatchPattern are returned.
func Match(o Type, choices interface{}) (value interface{}, err error) {
	switch c := choices.(type) {
	case Of:
		return c.Match(o)
	case Maybe:
		return c.Match(o)
	}
	return nil, ErrNoSuchMatchPattern
}

// Match matches o against concrete values first, then against Some.
func (of Of) Match(o Type) (interface{}, error) {
	if o.IsNone() {
		return pick(of[None], of[Error], o, None)
	}
	for k, expr := range of {
		if _, isLabel := k.(MaybeOption); !isLabel && o.Equals(k) {
			return pick(expr, of[Error], o, Some)
		}
	}
	return pick(of[Some], of[Error], o, Some)
}

// Match matches o against None or Some.
func (maybe Maybe) Match(o Type) (interface{}, error) {
	if o.IsNone() {
		return pick(maybe[None], maybe[Error], o, None)
	}
	return pick(maybe[Some], maybe[Error], o, Some)
}

// pick evaluates the case expr selected for o. If it fails, the error case
// onError is tried.
func pick(expr, onError interface{}, o Type, t MaybeOption) (interface{}, error) {
	if expr == nil {
		if onError != nil {
			return eval(onError, o, Error)
		}
		if t == None {
			return nil, ErrCannotMatchUnsetValue
		}
		return nil, ErrCannotMatchValue
	}
	value, err := eval(expr, o, t)
	if err != nil && onError != nil {
		tracer().Debugf("match of %v failed: %v", o, err)
		return eval(onError, o, Error)
	}
	return value, err
}

func eval(expr interface{}, o Type, t MaybeOption) (interface{}, error) {
	switch f := expr.(type) {
	case func(interface{}, MaybeOption) (interface{}, error):
		return f(o, t)
	case func(interface{}) (interface{}, error):
		return f(o)
	}
	return expr, nil
}

// Fail may be used as an option case, causing a Match to fail with an error.
// The error will be returned by Match(…), unless caught with an option.Error
// label.
//
//     _, err := o.Match(option.Of{
//          option.None: …,
//          99:          option.Fail(errors.New("99 is illegal")),
//          option.Some: …,
//     })
//
func Fail(err error) func(interface{}) (interface{}, error) {
	return func(interface{}) (interface{}, error) {
		return nil, err
	}
}

// Safe wraps a Match's return values and drops the error value.
func Safe(x interface{}, err error) interface{} {
	return x
}
