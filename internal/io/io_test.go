package ioutils

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "mp3s", "nested")

	created, err := EnsureDir(dir)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = EnsureDir(dir)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "show.cue")

	require.NoError(t, WriteFile(context.Background(), path, []byte("TITLE")))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "TITLE", string(data))
	assert.True(t, FileExists(path))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, WriteFile(ctx, filepath.Join(t.TempDir(), "other.cue"), nil))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, FileExists(filepath.Join(dir, "missing.mp3")))
	assert.False(t, FileExists(dir))
}

func TestLockDir(t *testing.T) {
	dir := t.TempDir()

	lock, err := LockDir(dir)
	require.NoError(t, err)

	_, err = LockDir(dir)
	assert.True(t, errors.Is(err, ErrDirLocked), "got %v", err)

	require.NoError(t, lock.Unlock())

	again, err := LockDir(dir)
	require.NoError(t, err)
	require.NoError(t, again.Unlock())
}
