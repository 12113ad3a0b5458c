package main

import (
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shahar-caura/qalcrun/internal/config"
	"github.com/shahar-caura/qalcrun/internal/server"
)

func newServeCmd(logger *slog.Logger, opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP query service",
		Long: `Start the HTTP query service.

The config file is watched while serving; changes to engine.dir and
engine.timeout take effect without a restart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = opts.cfg.Server.Port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			c := wireComponents(opts.cfg, logger)
			srv, err := server.New(port, version, opts.cfg.Launcher.Keyword, c.plugin, logger)
			if err != nil {
				return err
			}

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				if err := config.Watch(ctx, opts.configPath, logger, c.apply); err != nil {
					logger.Warn("config watch disabled", "error", err)
				}
				return nil
			})
			g.Go(func() error {
				return srv.Run(ctx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "HTTP server port (overrides server.port)")

	return cmd
}
