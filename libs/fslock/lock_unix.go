//go:build darwin || freebsd || linux

package fslock

import (
	"fmt"
	"os"
	"strconv"
	"syscall"
)

func (l *Locker) lock() (err error) {
	l.file, err = os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0666)
	if err != nil {
		return fmt.Errorf("fslock: opening lock file: %w", err)
	}

	if _, err := l.file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		return fmt.Errorf("fslock: writing pid: %w", err)
	}

	err = syscall.Flock(int(l.file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
	if err == syscall.EWOULDBLOCK {
		return ErrLocked
	}
	if err != nil {
		return fmt.Errorf("fslock: flock: %w", err)
	}

	return nil
}

func (l *Locker) unlock() error {
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN|syscall.LOCK_NB); err != nil {
		return fmt.Errorf("fslock: unflock: %w", err)
	}

	file := l.file
	l.file = nil
	if err := file.Close(); err != nil {
		return fmt.Errorf("fslock: closing lock file: %w", err)
	}

	return os.Remove(l.path)
}
