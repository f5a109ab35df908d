package hcl

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/testutil"
)

func TestLoader_ParsesFullGrid(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteGrid(t, dir, `
		settings {
			max_line_length = 90
		}

		pattern_rule ".pyl" {
			source = ".py"
			run = [
				["mypy", source],
				["flake8", "--max-line-length=${settings.max_line_length}", source],
				["pydocstyle", source],
			]
		}

		rule "all" {
			phony  = true
			inputs = ["pkg/a.pyl"]
			run    = [["pip", "install", "."]]
		}

		clean {
			files     = ["pkg/*.pyl"]
			dirs      = [".mypy_cache"]
			dir_names = ["__pycache__"]
		}

		coverage {
			annotations = "pkg/*,cover"
		}
	`)

	model, eval, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, eval)

	require.Len(t, model.Rules, 1)
	rule := model.Rules[0]
	assert.Equal(t, "all", rule.Name)
	assert.True(t, rule.Phony)
	assert.Equal(t, []string{"pkg/a.pyl"}, rule.Inputs)

	require.Len(t, model.Patterns, 1)
	pattern := model.Patterns[0]
	assert.Equal(t, ".pyl", pattern.TargetSuffix)
	assert.Equal(t, ".py", pattern.SourceSuffix)

	require.NotNil(t, model.Clean)
	assert.Equal(t, []string{"pkg/*.pyl"}, model.Clean.Files)

	require.NotNil(t, model.Coverage)
	assert.Equal(t, "pkg/*,cover", model.Coverage.Annotations)
	assert.Equal(t, "!", model.Coverage.Marker, "marker defaults to '!'")

	require.NotNil(t, model.Settings)
	assert.Equal(t, 90, model.Settings.MaxLineLength)
}

func TestLoader_DefaultsSettings(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteGrid(t, dir, `
		rule "all" {
			phony = true
		}
	`)

	model, _, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.NotNil(t, model.Settings)
	assert.Equal(t, config.DefaultMaxLineLength, model.Settings.MaxLineLength)
}

func TestLoader_RejectsDuplicateRule(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteGrid(t, dir, `
		rule "all" { phony = true }
		rule "all" { phony = true }
	`)

	_, _, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, `duplicate rule for artifact "all"`)
}

func TestLoader_RejectsDuplicatePatternSuffix(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteGrid(t, dir, `
		pattern_rule ".pyl" {
			source = ".py"
			run    = [["mypy", source]]
		}
		pattern_rule ".pyl" {
			source = ".txt"
			run    = [["mypy", source]]
		}
	`)

	_, _, err := NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.ErrorContains(t, err, `duplicate pattern rule for suffix ".pyl"`)
}

func TestLoader_NoGridFiles(t *testing.T) {
	_, _, err := NewLoader().Load(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, "no grid files found")
}

func TestEvaluator_EvalArgv(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteGrid(t, dir, `
		settings {
			max_line_length = 100
		}

		pattern_rule ".pyl" {
			source = ".py"
			run = [
				["mypy", source],
				["flake8", "--max-line-length=${settings.max_line_length}", source],
				["pydocstyle", source],
			]
		}
	`)

	model, eval, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	argvs, err := eval.EvalArgv(context.Background(), model.Patterns[0].Run, map[string]string{
		"source": "scad_models/scad.py",
		"target": "scad_models/scad.pyl",
	})
	require.NoError(t, err)

	want := [][]string{
		{"mypy", "scad_models/scad.py"},
		{"flake8", "--max-line-length=100", "scad_models/scad.py"},
		{"pydocstyle", "scad_models/scad.py"},
	}
	assert.Empty(t, cmp.Diff(want, argvs))
}

func TestLoader_GridBuilderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	testutil.NewGridBuilder().
		Rule("all", []string{"pkg/a.pyl"}, [][]string{{"pip", "install", "."}}, true).
		Rule("pkg/a.pyl", nil, [][]string{{"mypy", "pkg/a.py"}}, false).
		Clean([]string{"pkg/*.pyl"}, []string{".mypy_cache"}, []string{"__pycache__"}).
		Write(t, dir)

	model, eval, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, model.Rules, 2)
	assert.Equal(t, "all", model.Rules[0].Name)
	assert.True(t, model.Rules[0].Phony)

	argvs, err := eval.EvalArgv(context.Background(), model.Rules[1].Run, nil)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"mypy", "pkg/a.py"}}, argvs)

	require.NotNil(t, model.Clean)
	assert.Equal(t, []string{"__pycache__"}, model.Clean.DirNames)
}

func TestEvaluator_NilExpression(t *testing.T) {
	eval := NewEvaluator(nil)
	argvs, err := eval.EvalArgv(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, argvs)
}

func TestEvaluator_RejectsEmptyCommand(t *testing.T) {
	eval := NewEvaluator(nil)
	expr := testutil.Expr(t, `[[]]`)

	_, err := eval.EvalArgv(context.Background(), expr, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "empty command")
}
