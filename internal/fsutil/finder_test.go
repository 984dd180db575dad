package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// touch creates an empty file, making any parent directories first.
func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindSourceFiles_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "system.arc")
	touch(t, path)

	files, err := FindSourceFiles(path)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFindSourceFiles_RejectsWrongExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	touch(t, path)

	_, err := FindSourceFiles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a .arc file")
}

func TestFindSourceFiles_DirectoryRecursesAndSorts(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.arc"))
	touch(t, filepath.Join(dir, "a.arc"))
	touch(t, filepath.Join(dir, "nested", "c.arc"))
	touch(t, filepath.Join(dir, "readme.md"))

	files, err := FindSourceFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.arc"),
		filepath.Join(dir, "b.arc"),
		filepath.Join(dir, "nested", "c.arc"),
	}, files)
}

func TestFindSourceFiles_EmptyDirectory(t *testing.T) {
	files, err := FindSourceFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindSourceFiles_MissingPath(t *testing.T) {
	_, err := FindSourceFiles(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
