// Package fsutil provides the file system capabilities the engine depends
// on: modification-time stamps, marker touching, and removal helpers for
// the clean operation.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Stamps reads and writes artifact timestamps on the real file system.
type Stamps struct {
	// Dir is the directory artifact names are resolved against. Empty means
	// the process working directory.
	Dir string
}

func (s *Stamps) path(name string) string {
	if s.Dir == "" {
		return name
	}
	return filepath.Join(s.Dir, name)
}

// Timestamp returns the artifact's modification time, or false if the
// backing file does not exist.
func (s *Stamps) Timestamp(name string) (time.Time, bool) {
	info, err := os.Stat(s.path(name))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Touch updates the artifact's timestamp to now, creating an empty marker
// file if none exists.
func (s *Stamps) Touch(name string) error {
	path := s.path(name)
	now := time.Now()
	if err := os.Chtimes(path, now, now); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

// RemoveGlobs deletes every file matching the given glob patterns, relative
// to dir. Missing files are not an error.
func RemoveGlobs(dir string, patterns []string) error {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return err
		}
		for _, match := range matches {
			if err := os.Remove(match); err != nil && !os.IsNotExist(err) {
				return err
			}
		}
	}
	return nil
}

// RemoveDirs deletes the given directories and their contents, relative to
// dir. Missing directories are not an error.
func RemoveDirs(dir string, names []string) error {
	for _, name := range names {
		if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// RemoveDirsNamed walks root and deletes every directory whose basename is
// in names, wherever it appears (per-package caches show up once per
// package directory).
func RemoveDirsNamed(root string, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if root == "" {
		root = "."
	}
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	var doomed []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, ok := wanted[d.Name()]; ok && path != root {
			doomed = append(doomed, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, path := range doomed {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return nil
}
