package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/colourgrid/internal/config"
	"github.com/jmylchreest/colourgrid/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [port]",
		Short: "Serve the colour picker over HTTP",
		Long: `Serve the colour grids as linked web pages.

The first grid is at /. Each cell links to the finer grid it covers, and the
cells of the finest grids link back to / with the chosen colour.

Other endpoints:
  /api/grids/{depth}/{hex}         grid description as JSON
  /swatches/{depth}/{hex}.png      grid rendered as a PNG

Examples:
  colourgrid serve
  colourgrid serve 8080
  colourgrid serve --addr 127.0.0.1:8080 --title "Paint picker"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := a.cfg.Server.Addr
			if len(args) == 1 {
				var err error
				if addr, err = withPort(addr, args[0]); err != nil {
					return err
				}
			}

			loader := web.NewTemplateLoader(a.cfg.Server.TemplateDir)
			srv, err := web.New(a.geometry, loader, a.logger, web.Options{
				Addr:            addr,
				Title:           a.cfg.Server.Title,
				ShutdownTimeout: a.cfg.Server.ShutdownTimeout,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().String(config.FlagAddr, config.DefaultAddr, "address to listen on")
	cmd.Flags().String(config.FlagTitle, config.DefaultTitle, "page title")
	cmd.Flags().String(config.FlagTemplateDir, "", "directory holding customised page templates")

	return cmd
}

// withPort replaces the port of addr.
func withPort(addr, portText string) (string, error) {
	port, err := strconv.Atoi(portText)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid port %q", portText)
	}

	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}
