// Package cli provides the command-line interface for colourgrid.
package cli

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourgrid/internal/config"
	"github.com/jmylchreest/colourgrid/internal/grid"
	"github.com/jmylchreest/colourgrid/internal/logging"
	"github.com/jmylchreest/colourgrid/internal/version"
)

// app holds the state shared by every command once the configuration has
// been resolved.
type app struct {
	configPath string
	verbose    bool
	quiet      bool

	cfg      config.Config
	logger   hclog.Logger
	geometry *grid.Geometry
}

// NewRootCmd builds the colourgrid command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "colourgrid",
		Short: "Pick exact colours from progressively finer grids",
		Long: `colourgrid partitions a colour space into a grid of cells. Choosing a cell
opens a finer grid covering just that cell, until every cell is a single
colour.

Browse the grids in a web browser (serve), in the terminal (show, pick), or
export them as PNG swatches (export).`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.String(config.FlagLogLevel, config.DefaultLogLevel, "log level (trace, debug, info, warn, error, off)")
	flags.Bool(config.FlagLogJSON, false, "log in JSON format")
	flags.Int(config.FlagComponents, 3, "number of colour components")
	flags.Int(config.FlagBits, 8, "bits per colour component (4, 8, 12 or 16)")
	flags.Int(config.FlagCellsLog2, 0, "log2 of the number of cells per grid (default 3 x components)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(a),
		newShowCmd(a),
		newLocateCmd(a),
		newPickCmd(a),
		newExportCmd(a),
		newTemplatesCmd(a),
	)

	return rootCmd
}

// setup resolves configuration, logging and the grid geometry before any
// command runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewBuilder().
		WithFile(a.configPath).
		WithEnvConfig().
		WithFlags(cmd.Flags()).
		Build()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:   cfg.Log.Level,
		JSON:    cfg.Log.JSON,
		Verbose: a.verbose,
		Quiet:   a.quiet,
		Output:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	geometry, err := cfg.Geometry()
	if err != nil {
		return err
	}

	logger.Debug("configuration resolved",
		"space", geometry.Space().String(),
		"cells_log2", geometry.CellsLog2(),
		"max_depth", geometry.MaxDepth())

	a.cfg = cfg
	a.logger = logger
	a.geometry = geometry
	return nil
}

// newVersionCmd represents the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
