// Package lock keeps a single kiegate process per state database.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// StateLock is an flock(2) held on a PID file next to the state database.
// The lock lives as long as the file descriptor stays open.
type StateLock struct {
	path string
	f    *os.File
}

// PathFor returns the lock file guarding statePath.
func PathFor(statePath string) string {
	return statePath + ".lock"
}

// Acquire takes the lock for statePath without blocking and records the
// current PID in the lock file.
func Acquire(statePath string) (*StateLock, error) {
	if statePath == "" {
		return nil, fmt.Errorf("state path is empty")
	}
	path := PathFor(statePath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}
	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("state %s is in use by another process: %w", statePath, err)
	}

	l := &StateLock{path: path, f: f}
	if err := l.writePID(); err != nil {
		_ = l.Release()
		return nil, err
	}
	return l, nil
}

func (l *StateLock) writePID() error {
	if err := l.f.Truncate(0); err != nil {
		return fmt.Errorf("truncate lock file: %w", err)
	}
	if _, err := l.f.WriteAt([]byte(fmt.Sprintf("%d\n", os.Getpid())), 0); err != nil {
		return fmt.Errorf("write pid: %w", err)
	}
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("sync lock file: %w", err)
	}
	return nil
}

func (l *StateLock) Path() string { return l.path }

// Release drops the lock. It is safe to call more than once.
func (l *StateLock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = syscall.Flock(int(l.f.Fd()), syscall.LOCK_UN)
	err := l.f.Close()
	l.f = nil
	return err
}
