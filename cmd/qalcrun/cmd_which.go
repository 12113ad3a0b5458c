package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shahar-caura/qalcrun/internal/engine"
)

func newWhichCmd(logger *slog.Logger, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "which",
		Short: "Print the resolved qalc executable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := engine.NewResolver(opts.cfg.Engine.Dir, logger).Require()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
