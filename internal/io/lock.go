package ioutils

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created inside an output directory while a run writes to it.
const LockFileName = ".wefunk-cue.lock"

// ErrDirLocked is returned when another run holds the output directory.
var ErrDirLocked = errors.New("output directory is in use by another run")

// DirLock is an advisory lock on an output directory.
type DirLock struct {
	lock *flock.Flock
	path string
}

// LockDir acquires the lock for dir without blocking.
//
// Example:
//
//	lock, err := LockDir("mp3s")
//	if err != nil {
//	    return err
//	}
//	defer lock.Unlock()
func LockDir(dir string) (*DirLock, error) {
	path := filepath.Join(dir, LockFileName)
	lock := flock.New(path)

	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", dir, ErrDirLocked)
	}

	return &DirLock{lock: lock, path: path}, nil
}

// Unlock releases the lock.
func (l *DirLock) Unlock() error {
	return l.lock.Unlock()
}
