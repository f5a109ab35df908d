// Package testutil provides helpers for writing grid files and HCL
// expressions in tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// WriteGrid writes raw grid HCL to a file under dir and returns its path.
func WriteGrid(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "grid.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Expr parses src as a standalone HCL expression. It is the shortest way to
// hand a rule's `run` attribute to the engine in a unit test.
func Expr(t *testing.T, src string) hcl.Expression {
	t.Helper()
	expr, diags := hclsyntax.ParseExpression([]byte(src), "test.hcl", hcl.InitialPos)
	require.False(t, diags.HasErrors(), "parse %q: %s", src, diags.Error())
	return expr
}

// GridBuilder programmatically assembles a grid file via hclwrite.
type GridBuilder struct {
	file *hclwrite.File
}

// NewGridBuilder returns an empty grid builder.
func NewGridBuilder() *GridBuilder {
	return &GridBuilder{file: hclwrite.NewEmptyFile()}
}

// Rule appends an exact rule block with literal argv actions.
func (b *GridBuilder) Rule(name string, inputs []string, argvs [][]string, phony bool) *GridBuilder {
	block := b.file.Body().AppendNewBlock("rule", []string{name})
	if len(inputs) > 0 {
		block.Body().SetAttributeValue("inputs", stringList(inputs))
	}
	if len(argvs) > 0 {
		block.Body().SetAttributeValue("run", argvList(argvs))
	}
	if phony {
		block.Body().SetAttributeValue("phony", cty.BoolVal(true))
	}
	return b
}

// Clean appends a clean block.
func (b *GridBuilder) Clean(files, dirs, dirNames []string) *GridBuilder {
	block := b.file.Body().AppendNewBlock("clean", nil)
	if len(files) > 0 {
		block.Body().SetAttributeValue("files", stringList(files))
	}
	if len(dirs) > 0 {
		block.Body().SetAttributeValue("dirs", stringList(dirs))
	}
	if len(dirNames) > 0 {
		block.Body().SetAttributeValue("dir_names", stringList(dirNames))
	}
	return b
}

// Write renders the grid into dir and returns the file path.
func (b *GridBuilder) Write(t *testing.T, dir string) string {
	t.Helper()
	return WriteGrid(t, dir, string(b.file.Bytes()))
}

func stringList(items []string) cty.Value {
	vals := make([]cty.Value, len(items))
	for i, item := range items {
		vals[i] = cty.StringVal(item)
	}
	return cty.ListVal(vals)
}

func argvList(argvs [][]string) cty.Value {
	vals := make([]cty.Value, len(argvs))
	for i, argv := range argvs {
		vals[i] = stringList(argv)
	}
	return cty.TupleVal(vals)
}
