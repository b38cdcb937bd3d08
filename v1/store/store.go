package store

import (
	"context"
	"sync"
)

// Store is the minimal contract the lock algorithm needs from a shared
// key-value store. Every method maps to a single primitive that must be
// atomic at the store level; no retries or timeouts are layered on top here.
type Store interface {
	// SetIfAbsent stores value under key only if the key does not exist.
	// The boolean return reports whether this call created the key.
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)
	// Get retrieves the value for a key. The boolean return indicates
	// whether the key was found; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// GetSet atomically replaces the value under key and returns the
	// previous value. The boolean return indicates whether a previous
	// value existed.
	GetSet(ctx context.Context, key string, value []byte) ([]byte, bool, error)
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Exists reports whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)
}

// Memory is a Store implementation backed by a map. It provides the same
// atomicity guarantees as the remote backends within a single process and is
// the store used by the algorithm tests.
type Memory struct {
	mu    sync.Mutex
	items map[string][]byte
}

// NewMemory returns a new in-memory Store.
func NewMemory() *Memory {
	return &Memory{items: make(map[string][]byte)}
}

// SetIfAbsent implements Store.SetIfAbsent.
func (s *Memory) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok {
		return false, nil
	}
	s.items[key] = value
	return true, nil
}

// Get implements Store.Get.
func (s *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	v, ok := s.items[key]
	s.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

// GetSet implements Store.GetSet.
func (s *Memory) GetSet(ctx context.Context, key string, value []byte) ([]byte, bool, error) {
	s.mu.Lock()
	prev, ok := s.items[key]
	s.items[key] = value
	s.mu.Unlock()
	if !ok {
		return nil, false, nil
	}
	return prev, true, nil
}

// Delete implements Store.Delete.
func (s *Memory) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

// Exists implements Store.Exists.
func (s *Memory) Exists(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	_, ok := s.items[key]
	s.mu.Unlock()
	return ok, nil
}
