package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load orchestrates the entire HCL grid loading process. Multiple files are
// merged into a single model; rule and pattern declarations keep their
// file-order positions so resolution stays deterministic.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, config.Evaluator, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	gridFiles, err := l.findAllGridFiles(paths)
	if err != nil {
		return nil, nil, err
	}
	if len(gridFiles) == 0 {
		return nil, nil, fmt.Errorf("no grid files found under %v", paths)
	}
	logger.Debug("Discovered grid files.", "count", len(gridFiles))

	parser := hclparse.NewParser()
	model := &config.Model{}

	for _, file := range gridFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse grid file %s: %w", file, diags)
		}

		var root schema.GridConfig
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode grid file %s: %w", file, diags)
		}

		if err := l.translate(&root, model); err != nil {
			return nil, nil, fmt.Errorf("invalid grid file %s: %w", file, err)
		}
	}

	if err := validate(model); err != nil {
		return nil, nil, err
	}

	logger.Debug("HCL loading complete.",
		"rules", len(model.Rules),
		"patterns", len(model.Patterns),
	)
	return model, NewEvaluator(model.Settings), nil
}

// findAllGridFiles walks all given paths and returns a flat list of every
// .hcl file found, in a stable order.
func (l *Loader) findAllGridFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && filepath.Ext(p) == ".hcl" {
					if _, wasSeen := seen[p]; !wasSeen {
						allFiles = append(allFiles, p)
						seen[p] = struct{}{}
					}
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if filepath.Ext(path) == ".hcl" {
			if _, wasSeen := seen[path]; !wasSeen {
				allFiles = append(allFiles, path)
				seen[path] = struct{}{}
			}
		}
	}
	return allFiles, nil
}
