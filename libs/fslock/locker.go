// Package fslock implements a simple advisory file lock guarding a node's
// store directory from concurrent use.
package fslock

import (
	"errors"
	"os"
)

// ErrLocked is returned when the directory is already locked by another
// process.
var ErrLocked = errors.New("fslock: directory is locked")

// Lock creates a Locker under the given path and immediately locks it.
func Lock(path string) (*Locker, error) {
	l := New(path)
	if err := l.Lock(); err != nil {
		return nil, err
	}

	return l, nil
}

// Locker is an advisory lock over a single file.
type Locker struct {
	file *os.File
	path string
}

// New creates a new Locker over the given file path.
func New(path string) *Locker {
	return &Locker{path: path}
}

// Lock takes the lock, failing with ErrLocked if it is held by another
// process.
func (l *Locker) Lock() error {
	return l.lock()
}

// Unlock releases the lock and removes the lock file.
func (l *Locker) Unlock() error {
	if l == nil || l.file == nil {
		return nil
	}

	return l.unlock()
}
