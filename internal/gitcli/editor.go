package gitcli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// EditorOperator implements release.Operator by handing a seeded temp file
// to the operator's editor and reading the result back. This is the one
// place the process blocks on human input, indefinitely and by design.
type EditorOperator struct {
	// Editor overrides the $EDITOR environment variable. Empty falls back
	// to $EDITOR, then vi.
	Editor string
}

// ComposeDescription opens the editor on a file seeded with the latest
// commit summary and instructions, blocks until the session ends, and
// returns the authored text with comment lines stripped. A non-zero editor
// exit or an empty result is treated as operator cancellation.
//
// The seed is written as comment lines only: an editor session that exits
// without saving leaves no description and therefore aborts, rather than
// silently submitting the commit summary as the description.
func (o *EditorOperator) ComposeDescription(ctx context.Context, seed string) (string, error) {
	f, err := os.CreateTemp("", "pr-description-*.txt")
	if err != nil {
		return "", err
	}
	path := f.Name()
	defer os.Remove(path)

	_, err = fmt.Fprintf(f, "\n# Latest commit: %s\n# Write the pull request description above.\n# Lines starting with '#' are ignored; an empty description aborts.\n", seed)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}

	editor := o.Editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("editor session failed: %w", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var lines []string
	for _, line := range strings.Split(string(raw), "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	message := strings.TrimSpace(strings.Join(lines, "\n"))
	if message == "" {
		return "", errors.New("empty description")
	}
	return message, nil
}
