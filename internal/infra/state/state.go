package state

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore persists small string values under a directory, one file per
// key. It backs the session keys so a restart restores the signed-in
// account, mirroring how the browser client kept them in local storage.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	// Keys are fixed identifiers, but sanitize anyway.
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, key)
}

// Get returns the stored value and whether the key exists.
func (s *FileStore) Get(key string) (string, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes the value atomically via a temp file rename.
func (s *FileStore) Set(key, value string) error {
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("write state %s: %w", key, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("commit state %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete state %s: %w", key, err)
	}
	return nil
}
