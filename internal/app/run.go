package app

import (
	"context"
	"fmt"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/coverage"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/engine"
)

// Run executes the requested targets in order, loading the grid model once
// and reusing the same engine for every target.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, eval, err := a.loader.Load(ctx, a.cfg.GridPath)
	if err != nil {
		return fmt.Errorf("failed to load grid configuration: %w", err)
	}
	a.logger.Debug("Grid model loaded.", "rules", len(model.Rules), "patterns", len(model.Patterns))

	eng := engine.New(model, eval, a.stamps, a.runner, a.cfg.Dir)

	for _, target := range a.cfg.Targets {
		switch target {
		case "clean":
			if err := eng.Clean(ctx); err != nil {
				return err
			}
		case "test":
			if err := eng.Build(ctx, target); err != nil {
				return err
			}
			if err := a.reportCoverage(model.Coverage); err != nil {
				return err
			}
		default:
			if err := eng.Build(ctx, target); err != nil {
				return err
			}
		}
		a.logger.Info("🏁 Target finished.", "target", target)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// reportCoverage prints every annotated line the test run flagged. A grid
// without a coverage block skips the report.
func (a *App) reportCoverage(spec *config.CoverageSpec) error {
	if spec == nil {
		return nil
	}
	flagged, err := coverage.Report(a.out, a.cfg.Dir, spec.Annotations, spec.Marker)
	if err != nil {
		return fmt.Errorf("coverage report failed: %w", err)
	}
	if flagged > 0 {
		a.logger.Warn("Uncovered lines found.", "count", flagged)
	}
	return nil
}
