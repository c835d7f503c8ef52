// Package colour provides the fixed-width colour value type used by the grids,
// together with its display ordering, region enumeration and a few helpers for
// rendering colours on screens and terminals.
package colour

import (
	"fmt"
	"strings"
)

const (
	// hexDigits are the only characters accepted in a hex colour, in value order.
	hexDigits = "0123456789ABCDEF"

	// bitsPerHexDigit is the number of bits encoded by one hex digit.
	bitsPerHexDigit = 4

	// MaxComponentCount is the largest number of components a Space may have.
	MaxComponentCount = 8

	// MaxBitsPerComponent is the widest component a Space may have.
	MaxBitsPerComponent = 16
)

// Space describes the shape of every colour in a colour space: how many
// components a colour has and how many bits each component holds.
//
// A Space is resolved once at startup and passed explicitly to everything that
// builds colours, so that all colours in a process agree on their width.
type Space struct {
	ComponentCount   int `json:"component_count"`
	BitsPerComponent int `json:"bits_per_component"`
}

// RGB24 is the familiar 24-bit red, green and blue colour space.
var RGB24 = Space{ComponentCount: 3, BitsPerComponent: 8}

// Validate checks that the space can be represented with fixed-width hex strings.
func (s Space) Validate() error {
	if s.ComponentCount < 1 || s.ComponentCount > MaxComponentCount {
		return fmt.Errorf("component count %d out of range [1, %d]", s.ComponentCount, MaxComponentCount)
	}
	if s.BitsPerComponent < bitsPerHexDigit || s.BitsPerComponent > MaxBitsPerComponent {
		return fmt.Errorf("bits per component %d out of range [%d, %d]",
			s.BitsPerComponent, bitsPerHexDigit, MaxBitsPerComponent)
	}
	if s.BitsPerComponent%bitsPerHexDigit != 0 {
		return fmt.Errorf("bits per component %d is not a multiple of %d", s.BitsPerComponent, bitsPerHexDigit)
	}
	return nil
}

// HexDigitsPerComponent returns the number of hex digits used for each component.
func (s Space) HexDigitsPerComponent() int {
	return s.BitsPerComponent / bitsPerHexDigit
}

// HexLength returns the exact length of a hex colour in this space.
func (s Space) HexLength() int {
	return s.ComponentCount * s.HexDigitsPerComponent()
}

// MinValue returns the smallest value a component can hold.
func (s Space) MinValue() int {
	return 0
}

// MaxValue returns the largest value a component can hold.
func (s Space) MaxValue() int {
	return 1<<s.BitsPerComponent - 1
}

// ValuesLog2 returns log2 of the number of distinct colours in the space.
func (s Space) ValuesLog2() int {
	return s.ComponentCount * s.BitsPerComponent
}

// IsValidComponent reports whether v lies in [MinValue, MaxValue].
func (s Space) IsValidComponent(v int) bool {
	return v >= s.MinValue() && v <= s.MaxValue()
}

// String returns a short description such as "3x8".
func (s Space) String() string {
	return fmt.Sprintf("%dx%d", s.ComponentCount, s.BitsPerComponent)
}

// ParseHex parses a canonical hex colour: exactly HexLength characters, all of
// them uppercase hex digits. Errors wrap ErrInvalidHex.
func (s Space) ParseHex(hex string) (Colour, error) {
	n := s.HexLength()
	if len(hex) != n {
		return Colour{}, fmt.Errorf("%w: %q does not contain exactly %d hexadecimal digits", ErrInvalidHex, hex, n)
	}

	digits := s.HexDigitsPerComponent()
	comps := make([]uint16, s.ComponentCount)
	for i := range comps {
		v := 0
		for _, ch := range hex[i*digits : (i+1)*digits] {
			d := strings.IndexRune(hexDigits, ch)
			if d < 0 {
				return Colour{}, fmt.Errorf("%w: %q contains %q, which is not an uppercase hexadecimal digit",
					ErrInvalidHex, hex, ch)
			}
			v = v*len(hexDigits) + d
		}
		comps[i] = uint16(v)
	}

	return Colour{space: s, comps: comps}, nil
}

// IsValidHex reports whether hex would be accepted by ParseHex.
func (s Space) IsValidHex(hex string) bool {
	_, err := s.ParseHex(hex)
	return err == nil
}

// FromComponents builds a colour from one value per component.
// It panics if the number of values is wrong or any value is out of range:
// callers must validate untrusted input first.
func (s Space) FromComponents(values ...int) Colour {
	if len(values) != s.ComponentCount {
		panic(fmt.Sprintf("colour: %d components given, space %s needs %d", len(values), s, s.ComponentCount))
	}
	comps := make([]uint16, len(values))
	for i, v := range values {
		if !s.IsValidComponent(v) {
			panic(fmt.Sprintf("colour: component %d value %d out of range [%d, %d]", i, v, s.MinValue(), s.MaxValue()))
		}
		comps[i] = uint16(v)
	}
	return Colour{space: s, comps: comps}
}

// Black returns the colour with every component at MinValue.
func (s Space) Black() Colour {
	return s.repeated(s.MinValue())
}

// White returns the colour with every component at MaxValue.
func (s Space) White() Colour {
	return s.repeated(s.MaxValue())
}

func (s Space) repeated(v int) Colour {
	values := make([]int, s.ComponentCount)
	for i := range values {
		values[i] = v
	}
	return s.FromComponents(values...)
}
