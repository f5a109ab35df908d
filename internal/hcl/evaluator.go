package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/taskgrid/internal/config"
)

// Evaluator is the HCL-specific implementation of config.Evaluator. It
// evaluates `run` expressions against an EvalContext exposing the grid
// settings plus any per-target variables supplied by the engine.
type Evaluator struct {
	settings cty.Value
}

// NewEvaluator creates an Evaluator exposing the given settings to rule
// bodies as the `settings` object variable.
func NewEvaluator(s *config.Settings) *Evaluator {
	maxLen := config.DefaultMaxLineLength
	if s != nil {
		maxLen = s.MaxLineLength
	}
	return &Evaluator{
		settings: cty.ObjectVal(map[string]cty.Value{
			"max_line_length": cty.NumberIntVal(int64(maxLen)),
		}),
	}
}

// EvalArgv evaluates a `run` expression into an ordered list of argv
// commands. A nil expression (rule with no run attribute) yields no actions.
func (e *Evaluator) EvalArgv(ctx context.Context, expr hcl.Expression, vars map[string]string) ([][]string, error) {
	if expr == nil {
		return nil, nil
	}

	variables := map[string]cty.Value{"settings": e.settings}
	for name, value := range vars {
		variables[name] = cty.StringVal(value)
	}
	evalCtx := &hcl.EvalContext{Variables: variables}

	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate run expression: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}

	// HCL list literals come back as tuples; normalize before binding.
	val, err := convert.Convert(val, cty.List(cty.List(cty.String)))
	if err != nil {
		return nil, fmt.Errorf("run must be a list of argv string lists: %w", err)
	}

	var argvs [][]string
	if err := gocty.FromCtyValue(val, &argvs); err != nil {
		return nil, fmt.Errorf("failed to bind run expression: %w", err)
	}
	for i, argv := range argvs {
		if len(argv) == 0 {
			return nil, fmt.Errorf("run[%d] is an empty command", i)
		}
	}
	return argvs, nil
}
