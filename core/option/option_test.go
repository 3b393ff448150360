package option_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/npillmayer/htmlpix/core/option"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

// px is a pixel count which may be unset.
type px struct {
	n   int
	set bool
}

func (o px) Match(choices interface{}) (interface{}, error) { return option.Match(o, choices) }
func (o px) IsNone() bool                                   { return !o.set }

func (o px) Equals(other interface{}) bool {
	n, ok := other.(int)
	return ok && o.set && o.n == n
}

func (o px) String() string { return fmt.Sprintf("%dpx", o.n) }

func TestOptionMaybe(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.core")
	defer teardown()
	//
	x := px{42, true}
	y, err := x.Match(option.Maybe{
		option.None: 7,
		option.Some: x.n + 1,
	})
	assert.NoError(t, err)
	assert.Equal(t, 43, y)
	//
	y, _ = px{}.Match(option.Maybe{
		option.None: "No Value",
		option.Some: stringify,
	})
	assert.Equal(t, "No Value", y)
	//
	y, err = x.Match(option.Maybe{
		option.None:  "No Value",
		option.Some:  nonsense,
		option.Error: stringify,
	})
	assert.NoError(t, err)
	assert.Equal(t, "Value = 42px", y, "error case catches the failure")
	//
	_, err = px{}.Match(option.Maybe{option.Some: 1})
	assert.Equal(t, option.ErrCannotMatchUnsetValue, err)
	_, err = x.Match(map[string]int{})
	assert.Equal(t, option.ErrNoSuchMatchPattern, err)
}

func TestOptionOf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.core")
	defer teardown()
	//
	cases := option.Of{
		option.None: 7,
		1:           99,
		option.Some: func(v interface{}, t option.MaybeOption) (interface{}, error) {
			return v.(px).n * 2, nil
		},
	}
	y, _ := px{1, true}.Match(cases)
	assert.Equal(t, 99, y, "concrete values come first")
	y, _ = px{5, true}.Match(cases)
	assert.Equal(t, 10, y)
	y, _ = px{}.Match(cases)
	assert.Equal(t, 7, y)
	_, err := px{5, true}.Match(option.Of{1: 99})
	assert.Equal(t, option.ErrCannotMatchValue, err)
}

func TestOptionFail(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "htmlpix.core")
	defer teardown()
	//
	x := px{1, true}
	_, err := x.Match(option.Of{
		option.None: 7,
		1:           option.Fail(errors.New("Fail")),
		option.Some: 2,
	})
	assert.EqualError(t, err, "Fail")
	_, err = x.Match(option.Of{
		1:            option.Fail(errors.New("Fail")),
		option.Error: option.Fail(errors.New("Caught Fail")),
	})
	assert.EqualError(t, err, "Caught Fail")
	assert.Equal(t, 3, option.Safe(px{}.Match(option.Maybe{option.None: 3})))
}

// ---------------------------------------------------------------------------

func nonsense(x interface{}) (interface{}, error) {
	return nil, errors.New("ERROR")
}

func stringify(x interface{}) (interface{}, error) {
	return fmt.Sprintf("Value = %v", x), nil
}
