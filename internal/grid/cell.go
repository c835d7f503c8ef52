package grid

import (
	"encoding/json"

	"github.com/jmylchreest/colourgrid/internal/colour"
)

// Cell is one position in a Grid and the box of colours it stands for.
// Cells are only produced by Grid.Cells and Grid.AllCells.
type Cell struct {
	first  colour.Colour
	middle colour.Colour
	last   colour.Colour
	row    int
	column int
}

// First returns the first colour of the cell's box. Selecting the cell opens
// the subgrid starting at this colour.
func (c Cell) First() colour.Colour {
	return c.first
}

// Middle returns the colour at (or next to) the middle of the cell's box,
// used to paint the cell.
func (c Cell) Middle() colour.Colour {
	return c.middle
}

// Last returns the last colour of the cell's box.
func (c Cell) Last() colour.Colour {
	return c.last
}

// Row returns the 0-based row of the cell in its grid.
func (c Cell) Row() int {
	return c.row
}

// Column returns the 0-based column of the cell in its grid.
func (c Cell) Column() int {
	return c.column
}

// IsSingleColour reports whether the cell stands for exactly one colour.
func (c Cell) IsSingleColour() bool {
	return c.first.Equal(c.last)
}

// Contains reports whether target lies in the cell's box.
func (c Cell) Contains(target colour.Colour) bool {
	return inBox(target, c.first, c.last)
}

// cellJSON is the wire form of a Cell.
type cellJSON struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	First  string `json:"first"`
	Middle string `json:"middle"`
	Last   string `json:"last"`
}

// MarshalJSON implements json.Marshaler.
func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(cellJSON{
		Row:    c.row,
		Column: c.column,
		First:  c.first.Hex(),
		Middle: c.middle.Hex(),
		Last:   c.last.Hex(),
	})
}
