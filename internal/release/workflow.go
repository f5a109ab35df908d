package release

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/vk/taskgrid/internal/ctxlog"
)

// State identifies a position in the release workflow's linear state
// machine. Blocked and Done are terminal.
type State string

const (
	StateChecking   State = "CHECKING"
	StateBlocked    State = "BLOCKED"
	StatePushing    State = "PUSHING"
	StateDescribing State = "DESCRIBING"
	StateDone       State = "DONE"
)

// DefaultRemote is the fixed remote identity the current branch is pushed
// to before a pull request is opened.
const DefaultRemote = "staging"

// Git is the workflow's view of the ambient repository. The real
// implementation shells out to git and hub; tests inject a fake.
type Git interface {
	// DirtyPaths returns every path differing between the working tree and
	// the last commit on the current branch.
	DirtyPaths(ctx context.Context) ([]string, error)
	// CurrentBranch returns the checked-out branch name.
	CurrentBranch(ctx context.Context) (string, error)
	// Push pushes branch to remote, establishing upstream tracking if absent.
	Push(ctx context.Context, remote, branch string) error
	// HeadSummary returns the most recent commit's one-line summary.
	HeadSummary(ctx context.Context) (string, error)
	// CreatePullRequest opens a pull request against the default upstream
	// with the given description.
	CreatePullRequest(ctx context.Context, message string) error
}

// Operator is the single suspension point in the system: it blocks until
// the human has authored a pull-request description, and fails if the
// editor session is cancelled.
type Operator interface {
	ComposeDescription(ctx context.Context, seed string) (string, error)
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	blockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// Workflow is a single-use release gate: it is created, run once, and
// discarded with the process.
type Workflow struct {
	git    Git
	op     Operator
	out    io.Writer
	remote string
}

// NewWorkflow creates a Workflow over the given repository and operator
// capabilities, writing its transcript to out.
func NewWorkflow(git Git, op Operator, out io.Writer) *Workflow {
	return &Workflow{git: git, op: op, out: out, remote: DefaultRemote}
}

// Run drives the state machine to a terminal state. Every failure is
// terminal for this invocation; nothing is retried. The returned State is
// the one the machine stopped in.
func (w *Workflow) Run(ctx context.Context) (State, error) {
	logger := ctxlog.FromContext(ctx)

	// CHECKING
	logger.Debug("Checking working tree.")
	branch, err := w.git.CurrentBranch(ctx)
	if err != nil {
		return StateChecking, fmt.Errorf("failed to determine current branch: %w", err)
	}
	paths, err := w.git.DirtyPaths(ctx)
	if err != nil {
		return StateChecking, fmt.Errorf("failed to inspect working tree: %w", err)
	}

	if len(paths) > 0 {
		fmt.Fprintln(w.out, blockedStyle.Render("Uncommitted files block the release:"))
		for _, path := range paths {
			fmt.Fprintf(w.out, "  %s\n", pathStyle.Render(path))
		}
		fmt.Fprintf(w.out, "Commit them on branch %q and re-run.\n", branch)
		return StateBlocked, &DirtyWorkingTreeError{Branch: branch, Paths: paths}
	}

	// PUSHING
	fmt.Fprintln(w.out, headerStyle.Render(fmt.Sprintf("Pushing %s to %s...", branch, w.remote)))
	if err := w.git.Push(ctx, w.remote, branch); err != nil {
		return StatePushing, &RemoteOperationError{Op: "push", Err: err}
	}

	// DESCRIBING
	summary, err := w.git.HeadSummary(ctx)
	if err != nil {
		return StateDescribing, fmt.Errorf("failed to read latest commit: %w", err)
	}
	fmt.Fprintf(w.out, "Latest commit: %s\n", summary)

	message, err := w.op.ComposeDescription(ctx, summary)
	if err != nil {
		return StateDescribing, fmt.Errorf("pull request description aborted: %w", err)
	}

	if err := w.git.CreatePullRequest(ctx, message); err != nil {
		return StateDescribing, &RemoteOperationError{Op: "pull request creation", Err: err}
	}

	// DONE
	fmt.Fprintln(w.out, okStyle.Render("Pull request created."))
	return StateDone, nil
}
