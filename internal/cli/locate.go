package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newLocateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locate <hex>",
		Short: "Show the cells that lead to a colour",
		Long: `Print the grid and cell chosen at every depth to reach a colour from the
first grid, ending at the single-colour cell of the finest grid.

Example:
  colourgrid locate 6A3BF1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := a.parseColour(args[0])
			if err != nil {
				return err
			}

			table := NewTable("DEPTH", "GRID", "ROW", "COLUMN", "CELL", "LINK")
			table.AlignRight(0)
			table.AlignRight(2)
			table.AlignRight(3)
			for _, step := range a.geometry.Trail(target) {
				cell := step.Cell
				cellRange := "#" + cell.First().Hex()
				if !cell.IsSingleColour() {
					cellRange += "-#" + cell.Last().Hex()
				}
				table.AddRow(
					strconv.Itoa(step.Grid.Depth()),
					"#"+step.Grid.FirstColour().Hex(),
					strconv.Itoa(cell.Row()),
					strconv.Itoa(cell.Column()),
					cellRange,
					gridLink(step.Grid, cell),
				)
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), table.Render())
			return err
		},
	}
}
