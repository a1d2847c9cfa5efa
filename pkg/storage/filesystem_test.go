package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndPath(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	rel, err := s.Save("transcript_R100_abc.csv", []byte("Course,Grade\n"))
	require.NoError(t, err)
	assert.Equal(t, "transcript_R100_abc.csv", rel)

	data, err := os.ReadFile(s.Path(rel))
	require.NoError(t, err)
	assert.Equal(t, "Course,Grade\n", string(data))
}

func TestCleanupOlderThanRemovesOnlyStaleFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = s.Save("old.csv", []byte("x"))
	require.NoError(t, err)
	_, err = s.Save("fresh.csv", []byte("y"))
	require.NoError(t, err)

	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.csv"), stale, stale))

	deleted, err := s.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"old.csv"}, deleted)

	_, err = os.Stat(filepath.Join(dir, "old.csv"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "fresh.csv"))
	assert.NoError(t, err)
}

func TestCleanupOlderThanEmptyDir(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	deleted, err := s.CleanupOlderThan(time.Hour)
	require.NoError(t, err)
	assert.Empty(t, deleted)
}
