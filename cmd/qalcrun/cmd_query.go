package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shahar-caura/qalcrun/internal/launcher"
)

func newQueryCmd(logger *slog.Logger, opts *rootOptions) *cobra.Command {
	var explicit bool
	var copyResult bool

	cmd := &cobra.Command{
		Use:   "query <text...>",
		Short: "Evaluate a launcher query",
		Long: `Evaluate a launcher query the way the launcher would.

Without --explicit (or a leading trigger keyword) the query is ambient: it is
only sent to qalc when it looks like math, and failures print nothing.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.Join(args, " ")
			q := launcher.ParseQuery(raw, opts.cfg.Launcher.Keyword)
			if explicit && !q.Explicit() {
				q = q.MarkExplicit(opts.cfg.Launcher.Keyword)
			}

			c := wireComponents(opts.cfg, logger)
			results := c.plugin.Query(cmd.Context(), q)

			for _, r := range results {
				fmt.Fprintln(cmd.OutOrStdout(), r.Title)
				if r.Action == nil {
					fmt.Fprintln(cmd.ErrOrStderr(), r.SubTitle)
				}
			}

			if copyResult && len(results) > 0 && results[0].Action != nil {
				if !results[0].Action() {
					return errors.New("copying result to clipboard failed")
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&explicit, "explicit", false, "treat the query as typed after the trigger keyword")
	cmd.Flags().BoolVar(&copyResult, "copy", false, "copy the result to the clipboard")

	return cmd
}
