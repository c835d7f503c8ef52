package colour

import (
	"cmp"
	"fmt"
)

// Compare orders colours so that visually related colours sit together when
// a grid is laid out. It returns a negative number when a sorts before b, a
// positive number when it sorts after, and zero only when both have the same
// hex form.
//
// Colours are ordered by:
//  1. the number of components sharing the largest value (fewer first, so
//     colours with a single dominant component come before greys);
//  2. the ascending list of those component indices (lower index first);
//  3. the value of the largest component;
//  4. the sum of the remaining components;
//  5. the canonical hex form.
//
// It panics if the colours belong to different spaces.
func Compare(a, b Colour) int {
	if a.space != b.space {
		panic(fmt.Sprintf("colour: cannot compare colours from spaces %s and %s", a.space, b.space))
	}
	if len(a.comps) == 0 {
		return 0
	}

	maxA := a.LargestComponentIndices()
	maxB := b.LargestComponentIndices()
	if r := cmp.Compare(len(maxA), len(maxB)); r != 0 {
		return r
	}
	for j := range maxA {
		if r := cmp.Compare(maxA[j], maxB[j]); r != 0 {
			return r
		}
	}

	ind := maxA[0]
	if r := cmp.Compare(a.comps[ind], b.comps[ind]); r != 0 {
		return r
	}
	if r := cmp.Compare(a.SumOfComponentsIgnoring(maxA), b.SumOfComponentsIgnoring(maxB)); r != 0 {
		return r
	}

	// Fixed-width uppercase hex compares like the components taken in order.
	for i := range a.comps {
		if r := cmp.Compare(a.comps[i], b.comps[i]); r != 0 {
			return r
		}
	}
	return 0
}

// Less reports whether a sorts before b.
func Less(a, b Colour) bool {
	return Compare(a, b) < 0
}
