package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmylchreest/colourgrid/internal/colour"
	"github.com/jmylchreest/colourgrid/internal/grid"
)

// Output formats for show.
const (
	formatSwatch = "swatch"
	formatTable  = "table"
	formatJSON   = "json"
)

const (
	minSwatchWidth     = 1
	maxSwatchWidth     = 4
	defaultSwatchWidth = 2

	// Table previews carry the same marker as the web page cells.
	cellMarker   = "+"
	previewWidth = 3
)

func newShowCmd(a *app) *cobra.Command {
	var (
		format   string
		noColour bool
	)

	cmd := &cobra.Command{
		Use:   "show [depth] [hex]",
		Short: "Print a colour grid",
		Long: `Print the grid at depth starting at hex, or the first grid when no
arguments are given.

Formats:
  swatch  coloured blocks laid out as the grid (default)
  table   one line per cell
  json    grid description with every cell

Examples:
  colourgrid show
  colourgrid show 1 200000
  colourgrid show 2 241C08 --format table`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) == 1 || len(args) > 2 {
				return errors.New("expected no arguments or both depth and hex")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			g := a.geometry.First()
			if len(args) == 2 {
				var err error
				if g, err = a.lookupGrid(args[0], args[1]); err != nil {
					return err
				}
			}

			useColour := !noColour && os.Getenv("NO_COLOR") == ""
			out := cmd.OutOrStdout()

			switch format {
			case formatSwatch:
				if !useColour {
					return writeTable(out, g, false)
				}
				return writeSwatch(out, g, swatchWidth(out, g))
			case formatTable:
				return writeTable(out, g, useColour)
			case formatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(g)
			default:
				return fmt.Errorf("unknown format %q (want %s, %s or %s)", format, formatSwatch, formatTable, formatJSON)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSwatch, "output format (swatch, table, json)")
	cmd.Flags().BoolVar(&noColour, "no-colour", false, "disable ANSI colours")

	return cmd
}

// swatchWidth fits the grid's columns to the terminal, when out is one.
func swatchWidth(out io.Writer, g *grid.Grid) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultSwatchWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultSwatchWidth
	}
	return min(max(width/g.ColumnCount(), minSwatchWidth), maxSwatchWidth)
}

func writeSwatch(out io.Writer, g *grid.Grid, width int) error {
	var b strings.Builder
	row := -1
	for cell := range g.Cells() {
		if cell.Row() != row {
			if row >= 0 {
				b.WriteString("\n")
			}
			row = cell.Row()
		}
		b.WriteString(colour.ColourPreview(cell.Middle().RGB(), width))
	}
	b.WriteString("\n")
	b.WriteString(g.Summary())
	b.WriteString("\n")

	_, err := io.WriteString(out, b.String())
	return err
}

func writeTable(out io.Writer, g *grid.Grid, useColour bool) error {
	headers := []string{"ROW", "COLUMN", "FIRST", "MIDDLE", "LAST", "LINK"}
	if useColour {
		headers = append(headers, "PREVIEW")
	}

	table := NewTable(headers...)
	table.AlignRight(0)
	table.AlignRight(1)
	for cell := range g.Cells() {
		row := []string{
			strconv.Itoa(cell.Row()),
			strconv.Itoa(cell.Column()),
			"#" + cell.First().Hex(),
			"#" + cell.Middle().Hex(),
			"#" + cell.Last().Hex(),
			gridLink(g, cell),
		}
		if useColour {
			row = append(row, colour.ColourPreviewWithText(cell.Middle().RGB(), cellMarker, previewWidth))
		}
		table.AddRow(row...)
	}

	_, err := fmt.Fprintf(out, "%s%s\n", table.Render(), g.Summary())
	return err
}
