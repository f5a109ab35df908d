package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Model is the unified, format-agnostic representation of the entire grid
// configuration: the rule table plus the clean, coverage and settings policy.
type Model struct {
	Rules    []*Rule
	Patterns []*PatternRule
	Clean    *CleanSpec
	Coverage *CoverageSpec
	Settings *Settings
}

// Rule is the format-agnostic representation of a `rule` block. Run stays an
// unevaluated expression until the engine resolves a concrete target, so the
// model carries no evaluated values.
type Rule struct {
	Name   string
	Inputs []string
	Run    hcl.Expression
	Phony  bool
}

// PatternRule is the format-agnostic representation of a `pattern_rule`
// block. A target name matching TargetSuffix derives its single input by
// substituting SourceSuffix for TargetSuffix.
type PatternRule struct {
	TargetSuffix string
	SourceSuffix string
	Run          hcl.Expression
}

// CleanSpec lists everything the clean operation removes: file globs,
// fixed directories, and directory basenames pruned recursively (caches
// like __pycache__ appear once per package).
type CleanSpec struct {
	Files    []string
	Dirs     []string
	DirNames []string
}

// CoverageSpec configures the annotated-coverage report run after tests.
// Marker is the character a failing/uninstrumented line begins with.
type CoverageSpec struct {
	Annotations string
	Marker      string
}

// Settings holds tunable values exposed to rule bodies via the evaluation
// context.
type Settings struct {
	MaxLineLength int
}

// DefaultMaxLineLength is used when the grid declares no settings block.
const DefaultMaxLineLength = 100
