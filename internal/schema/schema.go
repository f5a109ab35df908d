package schema

import (
	"github.com/hashicorp/hcl/v2"
)

// Rule represents a `rule` block from a user's grid file. It binds an exact
// artifact name to its inputs and the ordered commands that produce it.
type Rule struct {
	Name   string         `hcl:"name,label"`
	Inputs []string       `hcl:"inputs,optional"`
	Run    hcl.Expression `hcl:"run,optional"`
	Phony  bool           `hcl:"phony,optional"`
}

// PatternRule represents a `pattern_rule` block. The target suffix is the
// block label; the input name is derived from the target name by swapping
// the target suffix for the source suffix.
type PatternRule struct {
	TargetSuffix string         `hcl:"target_suffix,label"`
	SourceSuffix string         `hcl:"source"`
	Run          hcl.Expression `hcl:"run"`
}

// Clean represents the `clean` block: everything the clean operation removes.
type Clean struct {
	Files    []string `hcl:"files,optional"`
	Dirs     []string `hcl:"dirs,optional"`
	DirNames []string `hcl:"dir_names,optional"`
}

// Coverage represents the `coverage` block configuring the annotated-line
// report that follows a test run.
type Coverage struct {
	Annotations string `hcl:"annotations"`
	Marker      string `hcl:"marker,optional"`
}

// Settings represents the `settings` block of tunable values exposed to rule
// bodies through the evaluation context.
type Settings struct {
	MaxLineLength int `hcl:"max_line_length,optional"`
}

// GridConfig represents the top-level structure of a grid file.
type GridConfig struct {
	Rules    []*Rule        `hcl:"rule,block"`
	Patterns []*PatternRule `hcl:"pattern_rule,block"`
	Clean    *Clean         `hcl:"clean,block"`
	Coverage *Coverage      `hcl:"coverage,block"`
	Settings *Settings      `hcl:"settings,block"`
	Body     hcl.Body       `hcl:",remain"`
}
