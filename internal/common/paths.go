package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

const (
	// ConfigFileName is the config store, relative to the working directory
	ConfigFileName = ".gt-config.json"

	// ChangesFileName is the change log store, relative to the working directory
	ChangesFileName = ".gt-changes.json"
)

// ResolvePath returns an absolute, cleaned path. Relative paths are resolved
// against baseDir, or the process working directory when baseDir is empty.
func ResolvePath(baseDir, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("invalid path: empty")
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to resolve working directory: %w", err)
		}
		baseDir = wd
	}

	return filepath.Clean(filepath.Join(baseDir, path)), nil
}

// FileExists reports whether path exists and is a regular file
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		if info.IsDir() {
			return false, fmt.Errorf("%s is a directory", path)
		}
		return true, nil
	}
	// a parent that is a regular file means path cannot exist either
	if os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, err
}

// EnsureDir creates the directory that will hold path when it is missing
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPermissionNormal); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
