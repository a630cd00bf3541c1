// Package lock serializes the naming engine across concurrently handled
// device events with an advisory lock on a well-known file.
package lock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// NamedLock is an exclusive cross-process lock on a fixed path. The lock
// file is created on first use and never removed, so the path stays valid
// for every process that ever contends on it.
type NamedLock struct {
	fl *flock.Flock
}

// New creates the handle for the lock file at path. Nothing is locked
// until Acquire.
func New(path string) *NamedLock {
	return &NamedLock{fl: flock.New(path)}
}

// Acquire blocks until the exclusive lock is held.
func (l *NamedLock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0o755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	if err := l.fl.Lock(); err != nil {
		return fmt.Errorf("acquire %s: %w", l.fl.Path(), err)
	}
	return nil
}

// Release drops the lock. Releasing a lock that is not held is a no-op.
func (l *NamedLock) Release() error {
	return l.fl.Unlock()
}

// Close releases the lock if held and closes the underlying file.
func (l *NamedLock) Close() error {
	return l.fl.Close()
}
