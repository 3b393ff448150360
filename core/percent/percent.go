// Package percent implements a simple and straightforward type for percentage
// values, as used in CSS color notation (`rgb(100%, 50%, 0%)`) and relative
// font sizes.
package percent

import (
	"math"
	"strconv"
	"strings"
)

// Percent is a percentage value in the range 0…100.
type Percent uint8

// FromInt clamps n to 0…100.
func FromInt(n int) Percent {
	switch {
	case n <= 0:
		return Percent(0)
	case n >= 100:
		return Percent(100)
	}
	return Percent(n)
}

// FromFloat clamps and rounds f to 0…100.
func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f) || math.IsInf(f, -1):
		return Percent(0)
	case f >= 100 || math.IsInf(f, 1):
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// FromString parses strings like "40%" or "40". Fractional values are
// rounded, values outside of 0…100 are clamped.
func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return FromFloat(f), nil
}

// Of returns p percent of x.
func (p Percent) Of(x float64) float64 {
	return x * float64(p) / 100.0
}

// Byte scales p to a color channel value 0…255.
func (p Percent) Byte() uint8 {
	return uint8(math.Round(p.Of(255)))
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}
