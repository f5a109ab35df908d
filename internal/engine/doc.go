// Package engine implements the incremental build core: resolving target
// names to artifacts through exact and pattern rules, deciding staleness
// from modification timestamps, and executing the minimal ordered set of
// external commands to bring requested artifacts up to date.
package engine
