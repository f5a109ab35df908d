package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vk/taskgrid/internal/action"
	"github.com/vk/taskgrid/internal/config"
	"github.com/vk/taskgrid/internal/ctxlog"
	"github.com/vk/taskgrid/internal/dag"
	"github.com/vk/taskgrid/internal/fsutil"
)

// Stamper is the engine's view of artifact timestamps. The real
// implementation reads the file system; tests inject a fake to simulate
// staleness without touching a real clock.
type Stamper interface {
	// Timestamp returns the artifact's modification time, or false if the
	// artifact has no timestamp at all.
	Timestamp(name string) (time.Time, bool)
	// Touch updates the artifact's timestamp to now, creating an empty
	// marker file if none exists.
	Touch(name string) error
}

// Artifact is a named unit resolved from the rule table: its inputs, the
// evaluated actions that produce it, and whether it is phony or a raw
// source with no producing rule.
type Artifact struct {
	Name    string
	Inputs  []string
	Actions [][]string
	Phony   bool
	Source  bool
}

// Engine resolves target names against the rule table and brings requested
// artifacts up to date by executing the minimal ordered set of actions.
type Engine struct {
	model  *config.Model
	eval   config.Evaluator
	stamps Stamper
	runner action.Runner
	dir    string
	rules  map[string]*config.Rule
}

// New creates an Engine over the given model. dir is the root all clean
// operations are applied under.
func New(model *config.Model, eval config.Evaluator, stamps Stamper, runner action.Runner, dir string) *Engine {
	rules := make(map[string]*config.Rule, len(model.Rules))
	for _, r := range model.Rules {
		rules[r.Name] = r
	}
	return &Engine{
		model:  model,
		eval:   eval,
		stamps: stamps,
		runner: runner,
		dir:    dir,
		rules:  rules,
	}
}

// Resolve looks up an exact rule by name, else attempts pattern-rule
// matching by suffix, else accepts the name as a raw source if a backing
// file exists. It fails with *UnresolvedTargetError otherwise.
func (e *Engine) Resolve(ctx context.Context, name string) (*Artifact, error) {
	if r, ok := e.rules[name]; ok {
		actions, err := e.eval.EvalArgv(ctx, r.Run, map[string]string{"target": name})
		if err != nil {
			return nil, err
		}
		return &Artifact{Name: name, Inputs: r.Inputs, Actions: actions, Phony: r.Phony}, nil
	}

	for _, p := range e.model.Patterns {
		if !strings.HasSuffix(name, p.TargetSuffix) {
			continue
		}
		source := strings.TrimSuffix(name, p.TargetSuffix) + p.SourceSuffix
		actions, err := e.eval.EvalArgv(ctx, p.Run, map[string]string{
			"target": name,
			"source": source,
		})
		if err != nil {
			return nil, err
		}
		return &Artifact{Name: name, Inputs: []string{source}, Actions: actions}, nil
	}

	if _, ok := e.stamps.Timestamp(name); ok {
		return &Artifact{Name: name, Source: true}, nil
	}
	return nil, &UnresolvedTargetError{Name: name}
}

// Build brings every requested target and its transitive inputs up to date.
// The dependency closure is resolved and validated for cycles before any
// action runs; the walk is depth-first, inputs before target, memoized by
// name so a shared input's actions execute at most once per invocation.
func (e *Engine) Build(ctx context.Context, names ...string) error {
	logger := ctxlog.FromContext(ctx)

	resolved, err := e.resolveClosure(ctx, names)
	if err != nil {
		return err
	}
	logger.Debug("Dependency closure resolved.", "artifact_count", len(resolved))

	done := make(map[string]bool, len(resolved))
	for _, name := range names {
		if err := e.buildOne(ctx, name, resolved, done); err != nil {
			return err
		}
	}
	return nil
}

// resolveClosure resolves every artifact reachable from the requested names
// and rejects cyclic graphs before any action has run.
func (e *Engine) resolveClosure(ctx context.Context, names []string) (map[string]*Artifact, error) {
	resolved := make(map[string]*Artifact)
	graph := dag.New()

	worklist := append([]string(nil), names...)
	for len(worklist) > 0 {
		name := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if _, ok := resolved[name]; ok {
			continue
		}

		art, err := e.Resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		resolved[name] = art

		graph.AddNode(name)
		for _, input := range art.Inputs {
			graph.AddNode(input)
			if err := graph.AddEdge(name, input); err != nil {
				return nil, err
			}
			worklist = append(worklist, input)
		}
	}

	if cycle := graph.DetectCycles(); cycle != nil {
		return nil, &CyclicDependencyError{Members: cycle}
	}
	return resolved, nil
}

func (e *Engine) buildOne(ctx context.Context, name string, resolved map[string]*Artifact, done map[string]bool) error {
	if done[name] {
		return nil
	}
	art := resolved[name]

	for _, input := range art.Inputs {
		if err := e.buildOne(ctx, input, resolved, done); err != nil {
			return err
		}
	}

	if e.stale(art, resolved) {
		if err := e.execute(ctx, art); err != nil {
			return err
		}
	}
	done[name] = true
	return nil
}

// stale is the single rebuild predicate: phony artifacts always satisfy it,
// otherwise an artifact is stale when it has no timestamp or any input is
// newer. A phony input keeps its dependents permanently stale.
func (e *Engine) stale(art *Artifact, resolved map[string]*Artifact) bool {
	if art.Phony {
		return true
	}
	ts, ok := e.stamps.Timestamp(art.Name)
	if !ok {
		return true
	}
	for _, input := range art.Inputs {
		if resolved[input].Phony {
			return true
		}
		inputTS, ok := e.stamps.Timestamp(input)
		if !ok || inputTS.After(ts) {
			return true
		}
	}
	return false
}

// execute runs the artifact's actions in declared order, stopping on the
// first failure. On success a non-phony artifact's timestamp is updated to
// now; a finished phony target keeps no meaningful timestamp.
func (e *Engine) execute(ctx context.Context, art *Artifact) error {
	logger := ctxlog.FromContext(ctx)
	if len(art.Actions) > 0 {
		logger.Info("Building target.", "target", art.Name, "actions", len(art.Actions))
	}

	for _, argv := range art.Actions {
		if err := e.runner.Run(ctx, argv); err != nil {
			var exitErr *action.ExitError
			if errors.As(err, &exitErr) {
				return &ActionError{Target: art.Name, Argv: argv, Status: exitErr.Status, Err: err}
			}
			return err
		}
	}

	if art.Phony || art.Source {
		return nil
	}
	return e.stamps.Touch(art.Name)
}

// Clean deletes the configured artifact files, auxiliary outputs and cache
// directories, ignoring anything already absent.
func (e *Engine) Clean(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	spec := e.model.Clean
	if spec == nil {
		logger.Warn("No clean block configured, nothing to remove.")
		return nil
	}

	logger.Info("Cleaning.", "globs", len(spec.Files), "dirs", len(spec.Dirs), "dir_names", len(spec.DirNames))
	if err := fsutil.RemoveGlobs(e.dir, spec.Files); err != nil {
		return err
	}
	if err := fsutil.RemoveDirs(e.dir, spec.Dirs); err != nil {
		return err
	}
	return fsutil.RemoveDirsNamed(e.dir, spec.DirNames)
}
