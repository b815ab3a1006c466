package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gofrs/flock"
)

var unsafeLockChars = regexp.MustCompile(`[^\w\-.]`)

// ProcessLock stops two bot processes from serving the same store
type ProcessLock struct {
	lockFile *flock.Flock
	lockPath string
}

// sanitizeLockName converts a store location (file path or database URL) to a
// safe file name
func sanitizeLockName(location string) string {
	sanitized := strings.ReplaceAll(location, "/", "--")
	sanitized = strings.ReplaceAll(sanitized, "\\", "--")
	sanitized = strings.ReplaceAll(sanitized, ":", "--")
	sanitized = unsafeLockChars.ReplaceAllString(sanitized, "-")

	// no hidden files
	sanitized = strings.Trim(sanitized, ".-")

	if sanitized == "" {
		sanitized = "default"
	}
	return sanitized
}

// NewProcessLock creates a lock keyed on the store location. Relative file
// paths are resolved first so the same file always maps to the same lock.
func NewProcessLock(storeLocation string) (*ProcessLock, error) {
	location := storeLocation
	if abs, err := filepath.Abs(storeLocation); err == nil && !strings.Contains(storeLocation, "://") {
		location = abs
	}

	lockDir := filepath.Join(os.TempDir(), "bankbot")
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	lockPath := filepath.Join(lockDir, sanitizeLockName(location)+".lock")
	return &ProcessLock{
		lockFile: flock.New(lockPath),
		lockPath: lockPath,
	}, nil
}

// TryLock acquires the lock or fails if another instance holds it
func (l *ProcessLock) TryLock() error {
	locked, err := l.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another bankbot instance is already running against this store")
	}
	return nil
}

// Unlock releases the lock and removes the lock file
func (l *ProcessLock) Unlock() error {
	if l.lockFile == nil {
		return nil
	}

	if err := l.lockFile.Unlock(); err != nil {
		return fmt.Errorf("failed to unlock: %w", err)
	}

	if err := os.Remove(l.lockPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// LockPath returns the path to the lock file
func (l *ProcessLock) LockPath() string {
	return l.lockPath
}
