package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/runoshun/taskring/internal/app"
	"github.com/runoshun/taskring/internal/web"
)

// newServeCommand creates the serve command.
func newServeCommand(c *app.Container) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task API over HTTP",
		Long: `Serve a JSON API over the same store the dial uses.

The address defaults to [server] addr in config.toml.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = c.AppConfig.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", addr)
			return web.NewServer(c).Run(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (host:port)")

	return cmd
}
