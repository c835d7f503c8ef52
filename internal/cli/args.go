package cli

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/colourgrid/internal/colour"
	"github.com/jmylchreest/colourgrid/internal/grid"
)

// parseColour accepts a hex colour with or without a leading '#', in either
// case.
func (a *app) parseColour(text string) (colour.Colour, error) {
	hex := strings.ToUpper(strings.TrimPrefix(text, "#"))
	return a.geometry.Space().ParseHex(hex)
}

// lookupGrid resolves the grid named by depth and start colour arguments.
func (a *app) lookupGrid(depthText, hex string) (*grid.Grid, error) {
	depth, err := grid.ParseDepth(depthText)
	if err != nil {
		return nil, err
	}

	start, err := a.parseColour(hex)
	if err != nil {
		return nil, err
	}

	return a.geometry.Grid(depth, start)
}

// gridLink is the picker page path a cell of g leads to.
func gridLink(g *grid.Grid, cell grid.Cell) string {
	if g.HasSubgrids() {
		return fmt.Sprintf("/%d/%s", g.Depth()+1, cell.First().Hex())
	}
	return "/?prev=" + cell.First().Hex()
}
