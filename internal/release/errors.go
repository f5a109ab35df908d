package release

import (
	"fmt"
	"strings"
)

// DirtyWorkingTreeError reports the uncommitted paths that block a release.
// It is recoverable by the operator, not the program: commit or stash, then
// re-invoke.
type DirtyWorkingTreeError struct {
	Branch string
	Paths  []string
}

func (e *DirtyWorkingTreeError) Error() string {
	return fmt.Sprintf("branch %q has %d uncommitted file(s): %s",
		e.Branch, len(e.Paths), strings.Join(e.Paths, ", "))
}

// RemoteOperationError reports a failed push or pull-request creation. The
// underlying tool's message is carried verbatim.
type RemoteOperationError struct {
	Op  string
	Err error
}

func (e *RemoteOperationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *RemoteOperationError) Unwrap() error { return e.Err }
