package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	base := t.TempDir()

	got, err := ResolvePath(base, ConfigFileName)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, ConfigFileName), got)

	got, err = ResolvePath(base, "../shared/"+ChangesFileName)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(base), "shared", ChangesFileName), got)

	abs := filepath.Join(base, "x", "..", "y.json")
	got, err = ResolvePath("/ignored", abs)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "y.json"), got)

	_, err = ResolvePath(base, "")
	assert.Error(t, err)
}

func TestResolvePathUsesWorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ResolvePath("", ChangesFileName)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, ChangesFileName), got)
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")

	exists, err := FileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, []byte("{}"), FilePermissionNormal))
	exists, err = FileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = FileExists(dir)
	assert.Error(t, err)
}

func TestFileExistsUnderRegularFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, FilePermissionNormal))

	exists, err := FileExists(filepath.Join(blocker, ChangesFileName))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", ChangesFileName)

	require.NoError(t, EnsureDir(path))
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, FilePermissionNormal))
	assert.Error(t, EnsureDir(filepath.Join(blocker, "sub", ChangesFileName)))
}
