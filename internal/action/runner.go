// Package action defines the capability for running a rule's external
// commands, and its os/exec-backed implementation.
package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/vk/taskgrid/internal/ctxlog"
)

// Runner executes a single external command. Implementations must not mask
// the command's own output; diagnostics belong to the underlying tool.
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// ExitError reports that a command ran and exited non-zero.
type ExitError struct {
	Argv   []string
	Status int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command %q exited with status %d", strings.Join(e.Argv, " "), e.Status)
}

// CommandRunner runs commands through os/exec, streaming their output
// unmodified to the configured writers.
type CommandRunner struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes argv and waits for completion. A non-zero exit is returned
// as an *ExitError; failures to start the command at all are returned as-is.
func (r *CommandRunner) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Running command.", "argv", argv)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Argv: argv, Status: exitErr.ExitCode()}
	}
	return fmt.Errorf("failed to run %q: %w", argv[0], err)
}
