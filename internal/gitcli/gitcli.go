// Package gitcli implements the release workflow's repository and operator
// capabilities by shelling out to git, hub, and the operator's editor.
package gitcli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Client runs git and hub against the repository at Dir (empty means the
// process working directory).
type Client struct {
	Dir string
	Out io.Writer
}

// New creates a Client for the repository at dir, writing tool output
// (e.g. the created pull request's URL) to stdout.
func New(dir string) *Client {
	return &Client{Dir: dir, Out: os.Stdout}
}

// git runs a git subcommand and returns its trimmed stdout. On failure the
// combined output is carried in the error verbatim.
func (c *Client) git(ctx context.Context, args ...string) (string, error) {
	return c.command(ctx, "git", args...)
}

func (c *Client) command(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = c.Dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s %s: %s: %w", name, strings.Join(args, " "),
			strings.TrimSpace(out.String()), err)
	}
	return strings.TrimSpace(out.String()), nil
}

// DirtyPaths returns every path that differs between the working tree and
// the last commit, parsed from porcelain status output.
func (c *Client) DirtyPaths(ctx context.Context) ([]string, error) {
	out, err := c.git(ctx, "status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parsePorcelain(out), nil
}

// parsePorcelain extracts paths from `git status --porcelain` output.
// Porcelain lines are "XY path"; rename entries are "XY old -> new".
func parsePorcelain(out string) []string {
	if out == "" {
		return nil
	}
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if i := strings.Index(path, " -> "); i >= 0 {
			path = path[i+4:]
		}
		paths = append(paths, path)
	}
	return paths
}

// CurrentBranch returns the checked-out branch name.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// Push pushes branch to remote, establishing upstream tracking if absent.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	_, err := c.git(ctx, "push", "--set-upstream", remote, branch)
	return err
}

// HeadSummary returns the most recent commit's one-line summary.
func (c *Client) HeadSummary(ctx context.Context) (string, error) {
	return c.git(ctx, "log", "-1", "--format=%h %s")
}

// CreatePullRequest opens a pull request against the default upstream via
// hub, with the given description as the PR message.
func (c *Client) CreatePullRequest(ctx context.Context, message string) error {
	out, err := c.command(ctx, "hub", "pull-request", "-m", message)
	if err != nil {
		return err
	}
	if out != "" && c.Out != nil {
		fmt.Fprintln(c.Out, out)
	}
	return nil
}
