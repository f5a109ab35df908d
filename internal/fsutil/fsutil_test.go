package fsutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStamps_TimestampMissing(t *testing.T) {
	s := &Stamps{Dir: t.TempDir()}
	_, ok := s.Timestamp("absent.pyl")
	assert.False(t, ok)
}

func TestStamps_TouchCreatesMarker(t *testing.T) {
	dir := t.TempDir()
	s := &Stamps{Dir: dir}

	require.NoError(t, s.Touch("check.pyl"))

	info, err := os.Stat(filepath.Join(dir, "check.pyl"))
	require.NoError(t, err)
	assert.Zero(t, info.Size(), "markers are zero-content files")

	ts, ok := s.Timestamp("check.pyl")
	require.True(t, ok)
	assert.Equal(t, info.ModTime(), ts)
}

func TestStamps_TouchAdvancesExisting(t *testing.T) {
	dir := t.TempDir()
	s := &Stamps{Dir: dir}
	path := filepath.Join(dir, "check.pyl")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	old := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, old, old))

	require.NoError(t, s.Touch("check.pyl"))
	ts, ok := s.Timestamp("check.pyl")
	require.True(t, ok)
	assert.True(t, ts.After(old))
}

func TestRemoveGlobs_IgnoresMissing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.pyl"), nil, 0o644))

	require.NoError(t, RemoveGlobs(dir, []string{"*.pyl", "missing/*.cover"}))

	_, err := os.Stat(filepath.Join(dir, "a.pyl"))
	assert.True(t, os.IsNotExist(err))
}

func TestRemoveDirsNamed(t *testing.T) {
	dir := t.TempDir()
	for _, sub := range []string{"pkg/__pycache__", "tests/__pycache__", "pkg/keep"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
	}

	require.NoError(t, RemoveDirsNamed(dir, []string{"__pycache__"}))

	_, err := os.Stat(filepath.Join(dir, "pkg", "__pycache__"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "tests", "__pycache__"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "pkg", "keep"))
	assert.NoError(t, err)
}
