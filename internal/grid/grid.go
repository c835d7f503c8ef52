package grid

import (
	"encoding/json"
	"fmt"
	"iter"
	"slices"

	"github.com/jmylchreest/colourgrid/internal/colour"
)

// Grid is one level of the colour hierarchy: a box of colours laid out as
// rows and columns of cells. Grids are immutable and safe for concurrent use.
type Grid struct {
	geometry    *Geometry
	depth       int
	stepLog2    int
	rowsLog2    int
	columnsLog2 int
	first       colour.Colour
	last        colour.Colour
}

// Geometry returns the geometry the grid was built from.
func (g *Grid) Geometry() *Geometry {
	return g.geometry
}

// Depth returns the number of refinements between the first grid and this one.
func (g *Grid) Depth() int {
	return g.depth
}

// RowCount returns the number of rows in the grid.
func (g *Grid) RowCount() int {
	return 1 << g.rowsLog2
}

// ColumnCount returns the number of columns in the grid.
func (g *Grid) ColumnCount() int {
	return 1 << g.columnsLog2
}

// CellCount returns the number of cells in the grid.
func (g *Grid) CellCount() int {
	return g.RowCount() * g.ColumnCount()
}

// HasSubgrids reports whether the cells of the grid span more than one colour.
func (g *Grid) HasSubgrids() bool {
	return g.stepLog2 > 0
}

// ColourComponentStepSize returns the difference between the same component
// of neighbouring cells. It is 1 for leaf grids.
func (g *Grid) ColourComponentStepSize() int {
	return 1 << g.stepLog2
}

// FirstColour returns the smallest colour, component-wise, in the grid.
func (g *Grid) FirstColour() colour.Colour {
	return g.first
}

// LastColour returns the largest colour, component-wise, in the grid.
func (g *Grid) LastColour() colour.Colour {
	return g.last
}

// Subgrid returns the grid one level deeper that starts at start, normally
// the first colour of one of this grid's cells. It panics on a leaf grid.
func (g *Grid) Subgrid(start colour.Colour) (*Grid, error) {
	if !g.HasSubgrids() {
		panic(fmt.Sprintf("grid: depth %d grid at %s has no subgrids", g.depth, g.first.Hex()))
	}
	return g.geometry.Grid(g.depth+1, start)
}

// Contains reports whether c lies in the grid's box of colours.
func (g *Grid) Contains(c colour.Colour) bool {
	return inBox(c, g.first, g.last)
}

// Cells returns the grid's cells in row-major order. The colours are laid
// out sorted by colour.Compare, so related colours end up next to each other.
func (g *Grid) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, cell := range g.AllCells() {
			if !yield(cell) {
				return
			}
		}
	}
}

// AllCells returns the grid's cells in row-major order.
// It panics if the grid's region does not hold exactly CellCount colours.
func (g *Grid) AllCells() []Cell {
	step := g.ColourComponentStepSize()
	colours := slices.Collect(colour.Region(g.first, g.last, step))
	if len(colours) != g.CellCount() {
		panic(fmt.Sprintf("grid: %s holds %d colours at step %d, want %d cells",
			g.Summary(), len(colours), step, g.CellCount()))
	}
	slices.SortFunc(colours, colour.Compare)

	columns := g.ColumnCount()
	cells := make([]Cell, len(colours))
	for k, first := range colours {
		cell := Cell{
			first:  first,
			middle: first,
			last:   first,
			row:    k / columns,
			column: k % columns,
		}
		if step > 1 {
			cell.middle = first.AddToAllComponents(step / 2)
			cell.last = first.AddToAllComponents(step - 1)
		}
		cells[k] = cell
	}
	return cells
}

// Locate returns the cell whose colours include c.
func (g *Grid) Locate(c colour.Colour) (Cell, bool) {
	if c.Space() != g.geometry.space || !g.Contains(c) {
		return Cell{}, false
	}
	for cell := range g.Cells() {
		if cell.Contains(c) {
			return cell, true
		}
	}
	return Cell{}, false
}

// Summary describes the grid the way the grid pages print it, for example
// "16 x 32 = 512 colours: #000000-#FFFFFF / 32".
func (g *Grid) Summary() string {
	return fmt.Sprintf("%d x %d = %d colours: #%s-#%s / %d",
		g.RowCount(), g.ColumnCount(), g.CellCount(),
		g.first.Hex(), g.last.Hex(), g.ColourComponentStepSize())
}

// String implements fmt.Stringer.
func (g *Grid) String() string {
	return fmt.Sprintf("grid(depth %d, %s)", g.depth, g.Summary())
}

// gridJSON is the wire form of a Grid.
type gridJSON struct {
	Depth       int    `json:"depth"`
	Rows        int    `json:"rows"`
	Columns     int    `json:"columns"`
	CellCount   int    `json:"cell_count"`
	Step        int    `json:"step"`
	First       string `json:"first"`
	Last        string `json:"last"`
	HasSubgrids bool   `json:"has_subgrids"`
	Summary     string `json:"summary"`
	Cells       []Cell `json:"cells"`
}

// MarshalJSON implements json.Marshaler. The cells are included in order.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON{
		Depth:       g.depth,
		Rows:        g.RowCount(),
		Columns:     g.ColumnCount(),
		CellCount:   g.CellCount(),
		Step:        g.ColourComponentStepSize(),
		First:       g.first.Hex(),
		Last:        g.last.Hex(),
		HasSubgrids: g.HasSubgrids(),
		Summary:     g.Summary(),
		Cells:       g.AllCells(),
	})
}

func inBox(c, first, last colour.Colour) bool {
	for i := range c.Space().ComponentCount {
		v := c.Component(i)
		if v < first.Component(i) || v > last.Component(i) {
			return false
		}
	}
	return true
}
