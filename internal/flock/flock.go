package flock

import (
	"os"

	"github.com/mrz1836/keysweep/internal/errors"
)

// Lock is a held exclusive file lock.
type Lock struct {
	f    *os.File
	path string
}

// Acquire opens (creating if needed) the lock file at path and takes an
// exclusive lock without blocking. A lock held elsewhere yields ErrLocked.
func Acquire(path string) (*Lock, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600) //nolint:gosec // path derives from the configured artifact
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open lock file %s", path)
	}

	if err := exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(errors.ErrLocked, "%s: %v", path, err)
	}

	return &Lock{f: f, path: path}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks and closes the lock file. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	unlockErr := unlock(l.f.Fd())
	closeErr := l.f.Close()
	l.f = nil
	if unlockErr != nil {
		return errors.Wrap(unlockErr, "failed to unlock")
	}
	return closeErr
}
