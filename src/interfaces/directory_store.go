package interfaces

import "io"

// -----------------------------------------------------------------------------
// IDirectoryStore abstracts the storage backend holding the day directories.
// -----------------------------------------------------------------------------

type IDirectoryStore interface {

	// -----------------------------------------------------------------------------

	// DirExists reports whether path is an existing directory. Access errors count as absent.
	DirExists(path string) bool

	// -----------------------------------------------------------------------------

	// ListFiles returns the regular files directly under dir, in a stable order.
	ListFiles(dir string) ([]string, error)

	// -----------------------------------------------------------------------------

	// Open opens a file for reading without blocking concurrent writers.
	Open(path string) (io.ReadCloser, error)
}
