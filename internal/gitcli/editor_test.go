package gitcli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeEditor installs a shell script standing in for the operator's
// editor; scripts receive the description file path as $1.
func writeEditor(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-editor")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestComposeDescription_AbortWithoutSaving(t *testing.T) {
	// `true` exits 0 leaving the seeded buffer untouched, the quit-without-
	// saving case. Only comment lines remain, so this must abort.
	op := &EditorOperator{Editor: "true"}

	_, err := op.ComposeDescription(context.Background(), "ab12cd3 tighten hole tolerances")
	require.Error(t, err)
	assert.ErrorContains(t, err, "empty description")
}

func TestComposeDescription_EditorFailure(t *testing.T) {
	op := &EditorOperator{Editor: "false"}

	_, err := op.ComposeDescription(context.Background(), "ab12cd3 wip")
	require.Error(t, err)
	assert.ErrorContains(t, err, "editor session failed")
}

func TestComposeDescription_AuthoredText(t *testing.T) {
	editor := writeEditor(t, "#!/bin/sh\nprintf 'Tighten hole tolerances.\\n\\n# scratch note\\n' > \"$1\"\n")
	op := &EditorOperator{Editor: editor}

	msg, err := op.ComposeDescription(context.Background(), "ab12cd3 wip")
	require.NoError(t, err)
	assert.Equal(t, "Tighten hole tolerances.", msg, "comment lines are stripped from the result")
}

func TestComposeDescription_OnlyCommentsAborts(t *testing.T) {
	editor := writeEditor(t, "#!/bin/sh\nprintf '# just thinking out loud\\n' > \"$1\"\n")
	op := &EditorOperator{Editor: editor}

	_, err := op.ComposeDescription(context.Background(), "ab12cd3 wip")
	require.Error(t, err)
	assert.ErrorContains(t, err, "empty description")
}
