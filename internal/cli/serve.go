package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/skelgraph/internal/server"
	"github.com/matzehuels/skelgraph/pkg/pipeline"
	"github.com/matzehuels/skelgraph/pkg/sparse"
	"github.com/matzehuels/skelgraph/pkg/store"
)

// serveCommand creates the serve command, which exposes one graph over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		load      string
		noCache   bool
		redisAddr string
		snapshots bool
		mongoURI  string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a graph over an HTTP API",
		Long: `Serve a graph over an HTTP API.

The server starts from --load, or from an empty graph. With --snapshots the
/snapshots routes save and restore the graph through the snapshot store
(files under the data directory, or MongoDB with --mongo).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			g := sparse.New()
			if load != "" {
				var err error
				if g, err = loadGraph(c.Logger, load); err != nil {
					return err
				}
			}

			ch, keyer, err := c.newCache(ctx, noCache, redisAddr)
			if err != nil {
				return err
			}
			defer ch.Close()

			var st store.Store
			if snapshots || mongoURI != "" {
				if st, err = c.newStore(ctx, mongoURI); err != nil {
					return err
				}
				defer st.Close()
			}

			srv := server.New(g, server.Options{
				Runner: pipeline.NewRunner(ch, keyer, c.Logger),
				Store:  st,
				Logger: c.Logger,
			})
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&load, "load", "", "graph file to serve")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for the render cache (env "+envRedisAddr+")")
	cmd.Flags().BoolVar(&snapshots, "snapshots", false, "enable the /snapshots routes")
	cmd.Flags().StringVar(&mongoURI, "mongo", "", "MongoDB URI for snapshots (env "+envMongoURI+")")

	return cmd
}
