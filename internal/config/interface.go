package config

import (
	"context"

	"github.com/hashicorp/hcl/v2"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads grid configuration from the given paths, translates it into
	// the format-agnostic model, and returns a matching Evaluator.
	Load(ctx context.Context, paths ...string) (*Model, Evaluator, error)
}

// Evaluator is the interface for format-specific expression evaluation. It
// is the bridge between a rule's unevaluated `run` expression and the
// concrete argv lists the engine executes.
type Evaluator interface {
	// EvalArgv evaluates a `run` expression into an ordered list of argv
	// commands. vars supplies per-target string variables (e.g. "source" and
	// "target" for pattern rules).
	EvalArgv(ctx context.Context, expr hcl.Expression, vars map[string]string) ([][]string, error)
}
