// Package grid partitions a colour space into a hierarchy of fixed-size grids.
//
// The grid at depth 0 covers the whole colour space. Each of its cells stands
// for a box of colours, and the grid one level deeper lays that box out in
// turn, until the cells of the deepest (leaf) grids are single colours.
package grid

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/jmylchreest/colourgrid/internal/colour"
)

var (
	// ErrInvalidDepth is returned for a depth that no grid needs: deeper
	// than the leaf level, or negative.
	ErrInvalidDepth = errors.New("invalid grid depth")

	// ErrInvalidStart is returned when a start colour cannot begin a grid at
	// the requested depth.
	ErrInvalidStart = errors.New("invalid grid start colour")
)

// MaxCellsLog2 bounds the number of cells in any one grid to 2^MaxCellsLog2.
const MaxCellsLog2 = 24

// DefaultCellsLog2 returns the log2 cell count used when none is configured:
// eight steps per component in a full grid (512 cells for RGB).
func DefaultCellsLog2(space colour.Space) int {
	return 3 * space.ComponentCount
}

// Geometry holds the immutable configuration every grid is built from: the
// colour space and the log2 of the number of cells in a full grid. It also
// caches the step size of every legal depth.
type Geometry struct {
	space     colour.Space
	cellsLog2 int

	// stepLog2 holds the log2 component step size for each legal depth.
	stepLog2 []int
}

// NewGeometry validates the configuration and precomputes the step sizes.
// cellsLog2 must be positive and divisible by the space's component count so
// that every grid's step is the same whole number on every component.
func NewGeometry(space colour.Space, cellsLog2 int) (*Geometry, error) {
	if err := space.Validate(); err != nil {
		return nil, fmt.Errorf("invalid colour space: %w", err)
	}
	if cellsLog2 <= 0 {
		return nil, fmt.Errorf("cells log2 %d must be positive", cellsLog2)
	}
	if cellsLog2%space.ComponentCount != 0 {
		return nil, fmt.Errorf("cells log2 %d is not divisible by the component count %d",
			cellsLog2, space.ComponentCount)
	}
	// No grid holds more cells than the first one.
	if largest := min(space.ValuesLog2(), cellsLog2); largest > MaxCellsLog2 {
		return nil, fmt.Errorf("grids of 2^%d cells exceed the maximum of 2^%d", largest, MaxCellsLog2)
	}

	return &Geometry{
		space:     space,
		cellsLog2: cellsLog2,
		stepLog2:  stepSizes(space, cellsLog2),
	}, nil
}

// MustGeometry is like NewGeometry but panics on error. It is intended for
// configurations known to be valid at compile time.
func MustGeometry(space colour.Space, cellsLog2 int) *Geometry {
	g, err := NewGeometry(space, cellsLog2)
	if err != nil {
		panic(err)
	}
	return g
}

// stepSizes walks down from depth 0 and returns the log2 step size of every
// legal depth. A depth is legal while the grid one level up still had more
// than one colour per cell.
func stepSizes(space colour.Space, cellsLog2 int) []int {
	n := space.ComponentCount
	var steps []int
	for depth := 0; ; depth++ {
		raw := space.ValuesLog2() - (depth+1)*cellsLog2
		switch {
		case raw > 0:
			if raw%n != 0 {
				panic(fmt.Sprintf("grid: %d colour bits per cell do not split over %d components", raw, n))
			}
			steps = append(steps, raw/n)
		case depth == 0:
			// The whole space fits in the first grid.
			steps = append(steps, 0)
		case raw < -cellsLog2:
			return steps
		case steps[depth-1] > 0:
			steps = append(steps, 0)
		default:
			return steps
		}
	}
}

// ParseDepth parses a depth written as decimal digits only, so forms such as
// "+1" or "-0" are rejected. Errors wrap ErrInvalidDepth.
func ParseDepth(text string) (int, error) {
	if text == "" {
		return 0, fmt.Errorf("%w: empty depth", ErrInvalidDepth)
	}
	for _, ch := range text {
		if ch < '0' || ch > '9' {
			return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidDepth, text)
		}
	}
	depth, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidDepth, text)
	}
	return depth, nil
}

// Space returns the colour space grids are built over.
func (g *Geometry) Space() colour.Space {
	return g.space
}

// CellsLog2 returns log2 of the number of cells in a full grid.
func (g *Geometry) CellsLog2() int {
	return g.cellsLog2
}

// MaxDepth returns the depth of the leaf grids.
func (g *Geometry) MaxDepth() int {
	return len(g.stepLog2) - 1
}

// StepSizeLog2 returns log2 of the per-component step between the cells of a
// grid at depth, or an error wrapping ErrInvalidDepth.
func (g *Geometry) StepSizeLog2(depth int) (int, error) {
	if depth < 0 || depth >= len(g.stepLog2) {
		return 0, fmt.Errorf("%w: %d (grids go from depth 0 to %d)", ErrInvalidDepth, depth, g.MaxDepth())
	}
	return g.stepLog2[depth], nil
}

// First returns the depth 0 grid, which covers every colour.
func (g *Geometry) First() *Grid {
	first, err := g.Grid(0, g.space.Black())
	if err != nil {
		panic(fmt.Sprintf("grid: building the first grid: %v", err))
	}
	return first
}

// Grid returns the grid at depth whose first colour is start.
//
// The error wraps ErrInvalidDepth when no grid is needed at that depth, and
// ErrInvalidStart when start cannot begin a grid there (at depth 0 only black
// can, deeper it must leave room for a whole parent cell).
func (g *Geometry) Grid(depth int, start colour.Colour) (*Grid, error) {
	stepLog2, err := g.StepSizeLog2(depth)
	if err != nil {
		return nil, err
	}
	if start.Space() != g.space {
		panic(fmt.Sprintf("grid: start colour from space %s, geometry uses %s", start.Space(), g.space))
	}

	gr := &Grid{
		geometry: g,
		depth:    depth,
		stepLog2: stepLog2,
		first:    start,
	}

	var sz2 int
	if depth == 0 {
		if !start.Equal(g.space.Black()) {
			return nil, fmt.Errorf("%w: the depth 0 grid starts at %s, not %s",
				ErrInvalidStart, g.space.Black().Hex(), start.Hex())
		}
		gr.last = g.space.White()
		sz2 = g.space.ValuesLog2()
	} else {
		parentLog2 := g.stepLog2[depth-1]
		span := 1<<parentLog2 - 1
		if !start.CanAddToAllComponents(span) {
			return nil, fmt.Errorf("%w: %s leaves no room for %d more values per component",
				ErrInvalidStart, start.Hex(), span)
		}
		gr.last = start.AddToAllComponents(span)
		sz2 = parentLog2 * g.space.ComponentCount
	}
	if stepLog2 > 0 {
		sz2 = g.cellsLog2
	}

	// Displays are wider than they are tall, so columns get the bigger half.
	gr.columnsLog2 = (sz2 + 1) / 2
	gr.rowsLog2 = sz2 / 2

	return gr, nil
}

// Step is one stage of a Trail: a grid and the cell chosen in it.
type Step struct {
	Grid *Grid
	Cell Cell
}

// Trail returns the grids a user passes through to reach target, starting at
// the first grid, with the cell containing target at each depth. The last
// step is a leaf grid whose chosen cell is target itself.
func (g *Geometry) Trail(target colour.Colour) []Step {
	var trail []Step
	gr := g.First()
	for {
		cell, ok := gr.Locate(target)
		if !ok {
			panic(fmt.Sprintf("grid: %s not found in %s", target.Hex(), gr.Summary()))
		}
		trail = append(trail, Step{Grid: gr, Cell: cell})
		if !gr.HasSubgrids() {
			return trail
		}
		next, err := gr.Subgrid(cell.First())
		if err != nil {
			panic(fmt.Sprintf("grid: descending into %s: %v", cell.First().Hex(), err))
		}
		gr = next
	}
}
