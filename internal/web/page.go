package web

import (
	"net/url"
	"strconv"

	"github.com/jmylchreest/colourgrid/internal/colour"
	"github.com/jmylchreest/colourgrid/internal/grid"
)

// Query arguments understood by the grid pages.
const (
	prevArg    = "prev"
	reverseArg = "rev"
	reverseOn  = "1"
)

const (
	defaultForeground = "#000000"
	defaultBackground = "#FFFFFF"
)

// pageData is what the grid page template renders.
type pageData struct {
	Title       string
	Foreground  string
	Background  string
	Previous    string
	Rows        [][]cellView
	Summary     string
	ReverseHref string
}

// cellView is one table cell on a grid page.
type cellView struct {
	Href       string
	Background string
	Marker     string
	Label      string
}

// newPageData lays out g for the page at path requested with query.
// previous is the hex of the last chosen colour, or empty.
func newPageData(g *grid.Grid, title, path string, query url.Values, previous string) pageData {
	reversed := query.Get(reverseArg) == reverseOn

	data := pageData{
		Title:       title,
		Foreground:  defaultForeground,
		Background:  defaultBackground,
		Previous:    previous,
		Rows:        make([][]cellView, g.RowCount()),
		Summary:     g.Summary(),
		ReverseHref: reverseHref(path, query),
	}
	if reversed {
		data.Foreground, data.Background = data.Background, data.Foreground
	}

	for cell := range g.Cells() {
		data.Rows[cell.Row()] = append(data.Rows[cell.Row()], cellView{
			Href:       cellHref(g, cell, reversed),
			Background: cell.Middle().RGB().Hex(),
			Marker:     colour.Readable(cell.Middle()).Hex(),
			Label:      cellLabel(cell),
		})
	}

	return data
}

// cellHref links a cell to its subgrid, or back to the first grid carrying
// the chosen colour when g is a leaf.
func cellHref(g *grid.Grid, cell grid.Cell, reversed bool) string {
	query := url.Values{}
	if reversed {
		query.Set(reverseArg, reverseOn)
	}

	var path string
	if g.HasSubgrids() {
		path = "/" + strconv.Itoa(g.Depth()+1) + "/" + cell.First().Hex()
	} else {
		path = "/"
		query.Set(prevArg, cell.First().Hex())
	}

	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func cellLabel(cell grid.Cell) string {
	if cell.IsSingleColour() {
		return "#" + cell.First().Hex()
	}
	return "#" + cell.First().Hex() + "-#" + cell.Last().Hex()
}

// reverseHref reloads path with the page colours swapped, keeping every
// other query argument.
func reverseHref(path string, query url.Values) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	if q.Has(reverseArg) {
		q.Del(reverseArg)
	} else {
		q.Set(reverseArg, reverseOn)
	}

	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
