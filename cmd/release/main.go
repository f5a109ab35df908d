package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/gitcli"
	"github.com/vk/taskgrid/internal/release"
)

// main is the entrypoint for the release workflow automator. It takes no
// flags: the ambient repository state is the only input.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	git := gitcli.New("")
	workflow := release.NewWorkflow(git, &gitcli.EditorOperator{}, os.Stdout)

	state, err := workflow.Run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "release aborted in %s: %v\n", state, err)
		os.Exit(1)
	}
}
