// Package release implements the release-gating workflow: a single-pass
// state machine that verifies a clean working tree, pushes the current
// branch to the staging remote, and drives pull-request creation through an
// interactive description step.
package release
