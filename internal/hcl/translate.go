package hcl

import (
	"fmt"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/schema"
)

// translate converts the HCL-specific grid schema into the agnostic model,
// merging it into model. Singleton blocks (clean, coverage, settings) may
// appear in at most one file.
func (l *Loader) translate(root *schema.GridConfig, model *config.Model) error {
	for _, r := range root.Rules {
		model.Rules = append(model.Rules, &config.Rule{
			Name:   r.Name,
			Inputs: r.Inputs,
			Run:    r.Run,
			Phony:  r.Phony,
		})
	}
	for _, p := range root.Patterns {
		model.Patterns = append(model.Patterns, &config.PatternRule{
			TargetSuffix: p.TargetSuffix,
			SourceSuffix: p.SourceSuffix,
			Run:          p.Run,
		})
	}

	if root.Clean != nil {
		if model.Clean != nil {
			return fmt.Errorf("duplicate clean block")
		}
		model.Clean = &config.CleanSpec{
			Files:    root.Clean.Files,
			Dirs:     root.Clean.Dirs,
			DirNames: root.Clean.DirNames,
		}
	}
	if root.Coverage != nil {
		if model.Coverage != nil {
			return fmt.Errorf("duplicate coverage block")
		}
		marker := root.Coverage.Marker
		if marker == "" {
			marker = "!"
		}
		model.Coverage = &config.CoverageSpec{
			Annotations: root.Coverage.Annotations,
			Marker:      marker,
		}
	}
	if root.Settings != nil {
		if model.Settings != nil {
			return fmt.Errorf("duplicate settings block")
		}
		maxLen := root.Settings.MaxLineLength
		if maxLen == 0 {
			maxLen = config.DefaultMaxLineLength
		}
		model.Settings = &config.Settings{MaxLineLength: maxLen}
	}
	return nil
}

// validate enforces the model invariants that hold across all files: at most
// one producing rule per artifact name and one pattern per target suffix.
func validate(model *config.Model) error {
	ruleNames := make(map[string]struct{}, len(model.Rules))
	for _, r := range model.Rules {
		if r.Name == "" {
			return fmt.Errorf("rule with empty name")
		}
		if _, dup := ruleNames[r.Name]; dup {
			return fmt.Errorf("duplicate rule for artifact %q", r.Name)
		}
		ruleNames[r.Name] = struct{}{}
	}

	suffixes := make(map[string]struct{}, len(model.Patterns))
	for _, p := range model.Patterns {
		if p.TargetSuffix == "" || p.SourceSuffix == "" {
			return fmt.Errorf("pattern rule with empty suffix")
		}
		if p.TargetSuffix == p.SourceSuffix {
			return fmt.Errorf("pattern rule %q maps a suffix to itself", p.TargetSuffix)
		}
		if _, dup := suffixes[p.TargetSuffix]; dup {
			return fmt.Errorf("duplicate pattern rule for suffix %q", p.TargetSuffix)
		}
		suffixes[p.TargetSuffix] = struct{}{}
	}

	if model.Settings == nil {
		model.Settings = &config.Settings{MaxLineLength: config.DefaultMaxLineLength}
	}
	return nil
}
