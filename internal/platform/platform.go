// Package platform provides OS-aware helpers for paths.
// All code that needs to behave differently per OS must use this package.
// Never use runtime.GOOS checks scattered across the codebase — put them here.
package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// IsWindows returns true when running on Windows.
func IsWindows() bool { return runtime.GOOS == "windows" }

// HomeDir returns the user's home directory, falling back to the
// OS-appropriate profile env var when os.UserHomeDir fails.
func HomeDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	if IsWindows() {
		return os.Getenv("USERPROFILE")
	}
	return os.Getenv("HOME")
}

// DefaultLogPath returns the default diagnostic log location:
// ~/.claude/hooks/rate-limit.log under the user's home directory.
func DefaultLogPath() string {
	return filepath.Join(HomeDir(), ".claude", "hooks", "rate-limit.log")
}

// EnsureDir creates a directory and all parents if they don't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// EnsureParent creates the parent directory of a file path.
func EnsureParent(path string) error {
	return EnsureDir(filepath.Dir(path))
}
