package storage

import (
	"io"
	"os"
	"path/filepath"
)

// -----------------------------------------------------------------------------

// FileStore serves day directories from the local filesystem.
type FileStore struct{}

// -----------------------------------------------------------------------------

func NewFileStore() *FileStore {
	return &FileStore{}
}

// -----------------------------------------------------------------------------

func (s *FileStore) DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// -----------------------------------------------------------------------------

// ListFiles returns regular files only; os.ReadDir sorts entries by name.
func (s *FileStore) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// -----------------------------------------------------------------------------

// Open opens path read-only. On Windows os.Open shares read and write access,
// so log files still being appended can be read.
func (s *FileStore) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}
