// Package swatch renders colour grids as images.
package swatch

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/jmylchreest/colourgrid/internal/colour"
	"github.com/jmylchreest/colourgrid/internal/grid"
)

const (
	// DefaultCellSize is the edge length of a cell in pixels.
	DefaultCellSize = 24

	// MaxCellSize bounds the edge length of a cell.
	MaxCellSize = 256

	// MaxPixels bounds the rendered image size when Options.MaxPixels is
	// zero.
	MaxPixels = 4096 * 4096

	labelPadding = 2
)

// Options controls how a grid is rendered.
type Options struct {
	// CellSize is the edge length of each cell in pixels. Zero selects
	// DefaultCellSize.
	CellSize int

	// Labels draws each cell's first colour as hex text when it fits.
	Labels bool

	// MaxPixels is the largest image Render produces. Zero selects
	// MaxPixels.
	MaxPixels int
}

func (o Options) cellSize() int {
	if o.CellSize == 0 {
		return DefaultCellSize
	}
	return o.CellSize
}

func (o Options) maxPixels() int {
	if o.MaxPixels == 0 {
		return MaxPixels
	}
	return o.MaxPixels
}

// Validate checks the options.
func (o Options) Validate() error {
	if size := o.cellSize(); size < 1 || size > MaxCellSize {
		return fmt.Errorf("cell size %d out of range [1, %d]", size, MaxCellSize)
	}
	if o.MaxPixels < 0 {
		return fmt.Errorf("pixel limit %d is negative", o.MaxPixels)
	}
	return nil
}

// checkSize rejects images of g larger than the pixel limit.
func (o Options) checkSize(g *grid.Grid) error {
	size := o.cellSize()
	width, height := g.ColumnCount()*size, g.RowCount()*size
	if width*height > o.maxPixels() {
		return fmt.Errorf("%dx%d image exceeds the limit of %d pixels", width, height, o.maxPixels())
	}
	return nil
}

// Render draws g with one square per cell, filled with the cell's middle
// colour, in the grid's row-major layout.
func Render(g *grid.Grid, opts Options) (*image.RGBA, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := opts.checkSize(g); err != nil {
		return nil, err
	}
	size := opts.cellSize()

	// One pixel per cell, scaled up afterwards.
	small := image.NewRGBA(image.Rect(0, 0, g.ColumnCount(), g.RowCount()))
	for cell := range g.Cells() {
		small.Set(cell.Column(), cell.Row(), cell.Middle())
	}

	dst := image.NewRGBA(image.Rect(0, 0, g.ColumnCount()*size, g.RowCount()*size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), small, small.Bounds(), draw.Src, nil)

	if opts.Labels && labelFits(g, size) {
		for cell := range g.Cells() {
			drawLabel(dst, cell, size)
		}
	}

	return dst, nil
}

// labelFits reports whether a hex label fits inside a cell.
func labelFits(g *grid.Grid, size int) bool {
	face := basicfont.Face7x13
	width := g.Geometry().Space().HexLength() * face.Advance
	return width+2*labelPadding <= size && face.Height+2*labelPadding <= size
}

func drawLabel(dst *image.RGBA, cell grid.Cell, size int) {
	face := basicfont.Face7x13
	text := cell.First().Hex()

	x := cell.Column()*size + (size-len(text)*face.Advance)/2
	y := cell.Row()*size + (size+face.Ascent-face.Descent)/2

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(colour.Readable(cell.Middle())),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode swatch: %w", err)
	}
	return nil
}
