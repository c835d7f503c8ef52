package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourgrid/internal/swatch"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		output string
		opts   swatch.Options
	)

	cmd := &cobra.Command{
		Use:   "export <depth> <hex>",
		Short: "Save a grid as a PNG swatch",
		Long: `Render the grid at depth starting at hex as a PNG image, one square per
cell filled with the cell's middle colour.

Examples:
  colourgrid export 0 000000 -o first.png
  colourgrid export 2 241C08 -o leaf.png --cell-size 64 --labels`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			g, err := a.lookupGrid(args[0], args[1])
			if err != nil {
				return err
			}

			img, err := swatch.Render(g, opts)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer func() {
				err = errors.Join(err, f.Close())
			}()

			if err := swatch.Encode(f, img); err != nil {
				return err
			}

			a.logger.Info("swatch written", "path", output, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write")
	cmd.Flags().IntVar(&opts.CellSize, "cell-size", swatch.DefaultCellSize, "cell edge length in pixels")
	cmd.Flags().BoolVar(&opts.Labels, "labels", false, "label cells with their first colour")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
