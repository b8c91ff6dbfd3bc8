package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gittrack/internal/common"
)

// TestHelper provides common test utilities
type TestHelper struct {
	t *testing.T
}

// NewTestHelper creates a new test helper
func NewTestHelper(t *testing.T) *TestHelper {
	return &TestHelper{t: t}
}

// Workspace creates a temporary directory, makes it the working directory
// for the rest of the test and returns it.
func (h *TestHelper) Workspace() string {
	h.t.Helper()
	dir := h.t.TempDir()

	old, err := os.Getwd()
	if err != nil {
		h.t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		h.t.Fatalf("Failed to change to %s: %v", dir, err)
	}
	h.t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			h.t.Errorf("Failed to restore working directory: %v", err)
		}
	})
	return dir
}

// WriteFile writes content to a file in the given directory
func (h *TestHelper) WriteFile(dir, filename, content string) string {
	h.t.Helper()
	path := filepath.Join(dir, filename)

	if err := os.MkdirAll(filepath.Dir(path), common.DirPermissionNormal); err != nil {
		h.t.Fatalf("Failed to create directories: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), common.FilePermissionNormal); err != nil {
		h.t.Fatalf("Failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the contents of path, failing the test when unreadable
func (h *TestHelper) ReadFile(path string) string {
	h.t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		h.t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// ReadJSON decodes the JSON file at path into v
func (h *TestHelper) ReadJSON(path string, v interface{}) {
	h.t.Helper()
	if err := json.Unmarshal([]byte(h.ReadFile(path)), v); err != nil {
		h.t.Fatalf("Failed to decode %s: %v", path, err)
	}
}

// AssertNotExists fails the test when path exists
func (h *TestHelper) AssertNotExists(path string) {
	h.t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		h.t.Errorf("Expected %s not to exist (stat err: %v)", path, err)
	}
}
