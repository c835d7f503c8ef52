package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	tmplloader "github.com/jmylchreest/colourgrid/internal/template"
	"github.com/jmylchreest/colourgrid/internal/web"
)

func newTemplatesCmd(a *app) *cobra.Command {
	var dir string

	loader := func() (*tmplloader.Loader, error) {
		d := dir
		if d == "" {
			d = a.cfg.Server.TemplateDir
		}
		// Expand tilde to home directory if present.
		if strings.HasPrefix(d, "~/") {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			d = filepath.Join(home, d[2:])
		}
		return web.NewTemplateLoader(d).WithLogger(a.logger), nil
	}

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage the web page templates",
		Long: `List or dump the page templates used by serve.

Templates can be customised by dumping them to the template directory
(~/.config/colourgrid/templates/web/ unless --dir or server.template_dir says
otherwise) and editing them. Custom templates are used instead of the
embedded ones.

Examples:
  colourgrid templates list
  colourgrid templates dump
  colourgrid templates dump --dir ./templates --force`,
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "custom template directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the page templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := loader()
			if err != nil {
				return err
			}
			names, err := l.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Custom template directory: %s\n", l.CustomDir())
			fmt.Fprintln(out, "Templates:")
			hasCustom := false
			for _, name := range names {
				if l.HasCustomTemplate(name) {
					fmt.Fprintf(out, "  - %s*\n", name)
					hasCustom = true
				} else {
					fmt.Fprintf(out, "  - %s\n", name)
				}
			}
			if hasCustom {
				fmt.Fprintln(out, "Templates with active overrides are shown with an asterisk (*).")
			}
			return nil
		},
	}

	var force bool
	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump the embedded templates for customisation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := loader()
			if err != nil {
				return err
			}

			dumped, err := l.DumpAll(force)
			for _, path := range dumped {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			if errors.Is(err, tmplloader.ErrTemplateExists) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Skipped existing templates:\n%v\n", err)
				return nil
			}
			return err
		},
	}
	dumpCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite existing custom templates")

	cmd.AddCommand(listCmd, dumpCmd)
	return cmd
}
