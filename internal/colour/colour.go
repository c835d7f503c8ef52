package colour

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidHex is returned when a string is not a canonical hex colour.
var ErrInvalidHex = errors.New("invalid hex colour")

// Colour is an immutable fixed-width colour value.
//
// Colours are compared with Compare or Equal, never with ==.
type Colour struct {
	space Space
	comps []uint16
}

// ParseHex parses an RGB24 hex colour such as "1F3A5C".
func ParseHex(hex string) (Colour, error) {
	return RGB24.ParseHex(hex)
}

// FromComponents builds an RGB24 colour. See Space.FromComponents.
func FromComponents(values ...int) Colour {
	return RGB24.FromComponents(values...)
}

// Black returns RGB24 black.
func Black() Colour {
	return RGB24.Black()
}

// White returns RGB24 white.
func White() Colour {
	return RGB24.White()
}

// Space returns the space the colour belongs to.
func (c Colour) Space() Space {
	return c.space
}

// Component returns the value of the i'th component.
func (c Colour) Component(i int) int {
	if i < 0 || i >= len(c.comps) {
		panic(fmt.Sprintf("colour: component index %d out of range [0, %d)", i, len(c.comps)))
	}
	return int(c.comps[i])
}

// Components returns a copy of the component values in order.
func (c Colour) Components() []int {
	values := make([]int, len(c.comps))
	for i, v := range c.comps {
		values[i] = int(v)
	}
	return values
}

// CanAddToAllComponents reports whether delta can be added to every
// component without any of them exceeding the space's maximum.
func (c Colour) CanAddToAllComponents(delta int) bool {
	if delta < 0 {
		panic(fmt.Sprintf("colour: negative delta %d", delta))
	}
	limit := c.space.MaxValue() - delta
	for _, v := range c.comps {
		if int(v) > limit {
			return false
		}
	}
	return true
}

// AddToAllComponents returns a new colour with delta added to every component.
// It panics if the result would leave the space; check CanAddToAllComponents first.
func (c Colour) AddToAllComponents(delta int) Colour {
	if !c.CanAddToAllComponents(delta) {
		panic(fmt.Sprintf("colour: adding %d to %s leaves the colour space", delta, c.Hex()))
	}
	values := c.Components()
	for i := range values {
		values[i] += delta
	}
	return c.space.FromComponents(values...)
}

// Hex returns the canonical uppercase hex form, without a leading '#'.
func (c Colour) Hex() string {
	digits := c.space.HexDigitsPerComponent()
	var b strings.Builder
	b.Grow(len(c.comps) * digits)
	for _, v := range c.comps {
		fmt.Fprintf(&b, "%0*X", digits, v)
	}
	return b.String()
}

// String returns the colour as "colour(r, g, b)".
func (c Colour) String() string {
	parts := make([]string, len(c.comps))
	for i, v := range c.comps {
		parts[i] = fmt.Sprint(v)
	}
	return "colour(" + strings.Join(parts, ", ") + ")"
}

// Equal reports whether both colours belong to the same space and have the
// same components.
func (c Colour) Equal(other Colour) bool {
	return c.space == other.space && slices.Equal(c.comps, other.comps)
}

// AreAllComponentsEqual reports whether the colour is a shade of grey.
func (c Colour) AreAllComponentsEqual() bool {
	for _, v := range c.comps {
		if v != c.comps[0] {
			return false
		}
	}
	return true
}

// LargestComponentIndices returns, in ascending order, the indices of the
// components holding the colour's largest component value.
func (c Colour) LargestComponentIndices() []int {
	var result []int
	largest := -1
	for i, v := range c.comps {
		switch {
		case int(v) > largest:
			largest = int(v)
			result = append(result[:0], i)
		case int(v) == largest:
			result = append(result, i)
		}
	}
	return result
}

// SumOfComponentsIgnoring returns the sum of all components whose index is
// not in indices.
func (c Colour) SumOfComponentsIgnoring(indices []int) int {
	sum := 0
	for i, v := range c.comps {
		if !slices.Contains(indices, i) {
			sum += int(v)
		}
	}
	return sum
}
