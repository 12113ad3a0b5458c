package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shahar-caura/qalcrun/internal/config"
)

var version = "dev"

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := newRootCmd(logger, level).Execute(); err != nil {
		logger.Error("qalcrun failed", "error", err)
		os.Exit(1)
	}
}

// rootOptions holds persistent flags and the config they resolve to.
type rootOptions struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd(logger *slog.Logger, level *slog.LevelVar) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "qalcrun",
		Short:         "Answer launcher queries with qalc",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnvFiles()

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.Log.Level = opts.logLevel
			}
			lvl, err := config.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			level.Set(lvl)

			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "path to config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newQueryCmd(logger, opts),
		newClassifyCmd(),
		newWhichCmd(logger, opts),
		newBatchCmd(logger, opts),
		newServeCmd(logger, opts),
		newCompletionCmd(),
	)

	return root
}
