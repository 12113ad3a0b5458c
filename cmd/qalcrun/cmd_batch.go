package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shahar-caura/qalcrun/internal/launcher"
)

func newBatchCmd(logger *slog.Logger, opts *rootOptions) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate ambient queries read from stdin, one per line",
		Long: `Evaluate ambient queries read from stdin, one per line.

Each non-blank line is printed as "<query>\t<result>" in input order. Lines
that are not math, or that qalc cannot answer, get an empty result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers < 1 {
				return fmt.Errorf("--workers must be at least 1, got %d", workers)
			}

			var queries []string
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if line := strings.TrimSpace(scanner.Text()); line != "" {
					queries = append(queries, line)
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading queries: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			c := wireComponents(opts.cfg, logger)
			answers := make([]string, len(queries))

			g, ctx := errgroup.WithContext(ctx)
			g.SetLimit(workers)
			for i, query := range queries {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					results := c.plugin.Query(ctx, launcher.Query{Search: query, RawQuery: query})
					if len(results) > 0 {
						answers[i] = results[0].Title
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, query := range queries {
				fmt.Fprintf(out, "%s\t%s\n", query, answers[i])
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "number of concurrent qalc processes")

	return cmd
}
