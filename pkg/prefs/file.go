package prefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// FileStore persists values as a flat YAML mapping. Every Set rewrites the
// file through a temporary file and rename.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// OpenFileStore loads path, creating parent directories on first write. A
// missing file starts empty.
func OpenFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("prefs: file path is required")
	}
	store := &FileStore{path: path, values: map[string]string{}}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return store, nil
	case err != nil:
		return nil, fmt.Errorf("prefs: read %s: %w", path, err)
	}
	if len(data) == 0 {
		return store, nil
	}
	if err := yaml.Unmarshal(data, &store.values); err != nil {
		return nil, fmt.Errorf("prefs: decode %s: %w", path, err)
	}
	if store.values == nil {
		store.values = map[string]string{}
	}
	return store, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.values[normalizeKey(key)]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set implements Store.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	key = normalizeKey(key)
	if key == "" {
		return errors.New("prefs: key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.values[key]
	s.values[key] = value
	if err := s.flush(); err != nil {
		if existed {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) flush() error {
	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("prefs: create directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*.yaml")
	if err != nil {
		return fmt.Errorf("prefs: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("prefs: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("prefs: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("prefs: replace %s: %w", s.path, err)
	}
	return nil
}
