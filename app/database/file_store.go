package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each document in <dir>/<key><ext>.
type FileStore struct {
	dir string
	ext string
}

func NewFileStore(dir string) (*FileStore, error) {
	return NewFileStoreWithExt(dir, ".json")
}

// NewFileStoreWithExt uses ext as the file suffix. An empty ext makes the key
// the exact file name.
func NewFileStoreWithExt(dir, ext string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir, ext: ext}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+s.ext)
}

func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Put writes to a temporary file and renames it over the target so readers
// never observe a partial document.
func (s *FileStore) Put(key string, body []byte) error {
	path := s.path(key)
	tempPath := path + ".tmp"

	if err := os.WriteFile(tempPath, body, 0644); err != nil {
		return fmt.Errorf("failed to write temporary %s: %w", key, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	return nil
}

func (s *FileStore) Close() error {
	return nil
}
