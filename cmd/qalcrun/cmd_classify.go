package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shahar-caura/qalcrun/internal/classify"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <text...>",
		Short: "Report whether an ambient query would be evaluated",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			checks := classify.Matches(query)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, len(checks) > 0)
			if len(checks) > 0 {
				fmt.Fprintln(out, strings.Join(checks, ", "))
			}
			return nil
		},
	}
}
