package engine

import (
	"fmt"
	"strings"
)

// UnresolvedTargetError reports a requested name with no producing rule and
// no backing file.
type UnresolvedTargetError struct {
	Name string
}

func (e *UnresolvedTargetError) Error() string {
	return fmt.Sprintf("no rule to make target %q", e.Name)
}

// CyclicDependencyError reports that the dependency closure of the requested
// targets contains a cycle. Members lists the cycle's artifact names in
// dependency order, with the entry point repeated at the end.
type CyclicDependencyError struct {
	Members []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Members, " -> "))
}

// ActionError reports that one of a rule's external commands exited
// non-zero. The command's own output has already been streamed verbatim;
// this error carries the context a caller needs for the exit path.
type ActionError struct {
	Target string
	Argv   []string
	Status int
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("target %q: command %q failed with status %d",
		e.Target, strings.Join(e.Argv, " "), e.Status)
}

func (e *ActionError) Unwrap() error { return e.Err }
