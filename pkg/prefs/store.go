// Package prefs persists the handful of user preferences the page keeps
// between visits (theme, font size). Stores are plain key/value maps; the
// Preferences wrapper turns every storage failure into a silent fallback so
// the page never breaks when storage is disabled.
package prefs

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var (
	// ErrNotFound reports a key that has never been written.
	ErrNotFound = errors.New("prefs: key not found")
	// ErrUnavailable reports a store that cannot be read or written, the
	// equivalent of a browser with storage disabled.
	ErrUnavailable = errors.New("prefs: storage unavailable")
)

// Store is a durable string key/value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns a store optionally seeded with values.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	values := make(map[string]string, len(seed))
	for key, value := range seed {
		values[key] = value
	}
	return &MemoryStore{values: values}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[normalizeKey(key)]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	key = normalizeKey(key)
	if key == "" {
		return errors.New("prefs: key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Snapshot returns a copy of the stored values.
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// UnavailableStore fails every operation with ErrUnavailable.
type UnavailableStore struct{}

// Get implements Store.
func (UnavailableStore) Get(context.Context, string) (string, error) {
	return "", ErrUnavailable
}

// Set implements Store.
func (UnavailableStore) Set(context.Context, string, string) error {
	return ErrUnavailable
}

func normalizeKey(key string) string {
	return strings.TrimSpace(key)
}
