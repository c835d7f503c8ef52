package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourgrid/internal/tui"
)

// errNothingPicked is returned when the picker is closed without a choice.
var errNothingPicked = errors.New("no colour picked")

func newPickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a colour interactively in the terminal",
		Long: `Open the first grid in the terminal. Move with the arrow keys or hjkl,
press enter to open the highlighted cell and esc to go back. Pressing enter on
a single colour prints it and exits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			program := tea.NewProgram(
				tui.NewModel(a.geometry),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.ErrOrStderr()),
				tea.WithContext(cmd.Context()),
				tea.WithAltScreen(),
			)

			final, err := program.Run()
			if err != nil {
				return fmt.Errorf("picker failed: %w", err)
			}

			m, ok := final.(tui.Model)
			if !ok {
				return fmt.Errorf("picker returned unexpected model %T", final)
			}
			if err := m.Err(); err != nil {
				return err
			}

			picked, ok := m.Selected()
			if !ok {
				return errNothingPicked
			}

			a.logger.Debug("colour picked", "hex", picked.Hex())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "#%s\n", picked.Hex())
			return err
		},
	}
}
