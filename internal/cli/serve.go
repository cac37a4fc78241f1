package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/scenesvg/internal/server"
	"github.com/matzehuels/scenesvg/pkg/cache"
	"github.com/matzehuels/scenesvg/pkg/export"
)

const defaultAddr = ":8080"

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the export API over HTTP",
		Long: `Serve runs the HTTP API until interrupted.

Routes:
  GET  /healthz      liveness
  POST /v1/export    scene JSON in, drawing out
  POST /v1/outline   scene JSON in, hierarchy graph out
  GET  /v1/scale     parse and round a scale`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") && c.Config.Server.Addr != "" {
				addr = c.Config.Server.Addr
			}

			cch, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			runner := export.NewRunner(cch, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:"), c.Logger)
			runner.TTL = c.Config.Cache.TTL
			defer runner.Close()

			sessions, err := c.newSessionStore(ctx)
			if err != nil {
				return err
			}
			defer sessions.Close()

			srv := server.New(server.Options{
				Runner:        runner,
				Sessions:      sessions,
				Logger:        c.Logger,
				ExportTimeout: c.Config.Server.ExportTimeout,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
