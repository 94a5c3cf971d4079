package cli

import (
	"net"

	"github.com/spf13/cobra"

	"github.com/matzehuels/citeforest/pkg/server"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the loaded data over HTTP",
		Long: `Serve the loaded data over a JSON HTTP API.

The store starts with the datasets given with --data and is modified only
through the API. Changes are lost when the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.loadStore(ctx)
			if err != nil {
				return err
			}
			logger := loggerFromContext(ctx)
			srv := server.New(s)
			err = srv.ListenAndServe(ctx, addr, func(a net.Addr) {
				logger.Info("Listening", "addr", a.String())
			})
			if err != nil {
				return err
			}
			logger.Info("Server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", envOr(envAddr, server.DefaultAddr), "listen address, env "+envAddr)
	return cmd
}
