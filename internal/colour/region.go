package colour

import (
	"fmt"
	"iter"
)

// RegionIterator walks every colour in the inclusive box [first, last],
// stepping each component by a fixed amount. Component 0 varies fastest.
//
// An iterator is single use: once exhausted it stays exhausted. It may be
// abandoned at any point.
type RegionIterator struct {
	first, last Colour
	step        int
	current     []int
	started     bool
	done        bool
}

// NewRegionIterator returns an iterator over the box [first, last] with the
// given per-component step. It panics if step is not positive or the colours
// belong to different spaces.
func NewRegionIterator(first, last Colour, step int) *RegionIterator {
	if step <= 0 {
		panic(fmt.Sprintf("colour: region step %d is not positive", step))
	}
	if first.space != last.space {
		panic(fmt.Sprintf("colour: region bounds from spaces %s and %s", first.space, last.space))
	}
	return &RegionIterator{
		first: first,
		last:  last,
		step:  step,
	}
}

// Next returns the next colour in the region, or false once the region has
// been exhausted.
func (it *RegionIterator) Next() (Colour, bool) {
	if it.done {
		return Colour{}, false
	}
	if !it.started {
		it.started = true
		it.current = it.first.Components()
		return it.first, true
	}

	for i := range it.current {
		next := it.current[i] + it.step
		if next <= it.last.Component(i) {
			it.current[i] = next
			return it.first.space.FromComponents(it.current...), true
		}
		// Carry into the next component.
		it.current[i] = it.first.Component(i)
	}

	it.done = true
	it.current = nil
	return Colour{}, false
}

// Region returns a sequence over the box [first, last]. Each range over the
// returned sequence uses a fresh RegionIterator.
func Region(first, last Colour, step int) iter.Seq[Colour] {
	return func(yield func(Colour) bool) {
		it := NewRegionIterator(first, last, step)
		for {
			c, ok := it.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}
