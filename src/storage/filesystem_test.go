package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreListsRegularFilesSorted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.log"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("y"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "noext"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	files, err := NewFileStore().ListFiles(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "a.csv"),
		filepath.Join(dir, "b.log"),
		filepath.Join(dir, "noext"),
	}, files)
}

func TestFileStoreDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	s := NewFileStore()
	assert.True(t, s.DirExists(dir))
	assert.False(t, s.DirExists(file), "a file is not a directory")
	assert.False(t, s.DirExists(filepath.Join(dir, "missing")))
}

func TestFileStoreListMissingDir(t *testing.T) {
	_, err := NewFileStore().ListFiles(filepath.Join(t.TempDir(), "gone"))
	assert.Error(t, err)
}

func TestFileStoreOpenWhileAppending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.log")
	w, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	require.NoError(t, err)
	defer w.Close()
	_, err = w.WriteString("\"FN1\",\"Node\",\"1\"\n")
	require.NoError(t, err)

	r, err := NewFileStore().Open(path)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "\"FN1\",\"Node\",\"1\"\n", string(data))
}
