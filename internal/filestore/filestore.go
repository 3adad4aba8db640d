// Package filestore persists uploaded files under a single upload root.
package filestore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

var ErrBadName = errors.New("invalid file name")

// Store writes and resolves files inside its root directory.
type Store struct {
	root string
}

// New creates the upload root if needed and returns a store over it.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Store{root: root}, nil
}

// SafeName strips any directory components from a client-supplied name so it
// cannot escape the upload root.
func SafeName(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	return name
}

// Save writes src to <root>/<name>, overwriting any previous file of that name.
// Returns the full path on disk.
func (s *Store) Save(name string, src io.Reader) (string, error) {
	if SafeName(name) != name || name == "" {
		return "", ErrBadName
	}
	path := filepath.Join(s.root, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

// Path resolves a stored file name to its location on disk, or "" when the
// name is unsafe.
func (s *Store) Path(name string) string {
	if SafeName(name) != name || name == "" {
		return ""
	}
	return filepath.Join(s.root, name)
}
