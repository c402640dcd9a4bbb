package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Store writes uploaded blobs to a directory on local disk. Records in the
// database keep only the returned relative path; the bytes live here.
type Store struct {
	root string
}

// Files is the process-wide store, set up in main.
var Files *Store

func InitStore(root string) error {
	store, err := NewStore(root)

	if err != nil {
		return err
	}

	Files = store
	return nil
}

// NewStore makes sure the root directory and its subdirectories exist.
func NewStore(root string) (*Store, error) {
	for _, dir := range []string{root, filepath.Join(root, "attachments"), filepath.Join(root, "profiles")} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	return &Store{root: root}, nil
}

// Save streams the multipart file into subdir under a fresh uuid-based
// name, keeping the original extension. Returns the path relative to the
// store root.
func (s *Store) Save(file *multipart.FileHeader, subdir string) (string, error) {
	src, err := file.Open()

	if err != nil {
		return "", err
	}

	defer src.Close()

	name := uuid.New().String() + filepath.Ext(file.Filename)
	relative := filepath.Join(subdir, name)

	dst, err := os.Create(filepath.Join(s.root, relative))

	if err != nil {
		return "", err
	}

	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return relative, nil
}

// Path resolves a stored relative path to an absolute one for serving.
func (s *Store) Path(relative string) string {
	return filepath.Join(s.root, relative)
}

// Remove deletes a stored blob. Missing files are not an error; the row is
// already gone and there is nothing left to clean.
func (s *Store) Remove(relative string) error {
	err := os.Remove(filepath.Join(s.root, relative))

	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// RemoveAll deletes a batch of stored blobs, best effort.
func (s *Store) RemoveAll(relatives []string) {
	for _, relative := range relatives {
		_ = s.Remove(relative)
	}
}
