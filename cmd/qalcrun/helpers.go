package main

import (
	"log/slog"

	"github.com/shahar-caura/qalcrun/internal/config"
	"github.com/shahar-caura/qalcrun/internal/engine"
	"github.com/shahar-caura/qalcrun/internal/launcher"
)

// components is everything a command needs to answer queries.
type components struct {
	resolver  *engine.Resolver
	evaluator *engine.Evaluator
	plugin    *launcher.Plugin
}

func wireComponents(cfg *config.Config, logger *slog.Logger) *components {
	resolver := engine.NewResolver(cfg.Engine.Dir, logger)
	evaluator := engine.NewEvaluator(cfg.Engine.Timeout.Duration, logger)

	plugin := launcher.New(resolver, evaluator, logger)
	plugin.Score = cfg.Launcher.Score

	return &components{
		resolver:  resolver,
		evaluator: evaluator,
		plugin:    plugin,
	}
}

// apply pushes the reloadable parts of cfg into running components.
func (c *components) apply(cfg *config.Config) {
	c.resolver.Override(cfg.Engine.Dir)
	c.evaluator.SetTimeout(cfg.Engine.Timeout.Duration)
}
