// Package storage holds the key-value slots that mirror the record stores.
package storage

import (
	"context"
	"sync"
)

type (
	// KeyValueStore is an opaque string-to-string slot store.
	KeyValueStore interface {
		Get(ctx context.Context, key string) (string, bool, error)
		Set(ctx context.Context, key, value string) error
	}

	memoryStore struct {
		mu    sync.RWMutex
		slots map[string]string
	}
)

func NewMemoryStore() KeyValueStore {
	return &memoryStore{slots: make(map[string]string)}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.slots[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = value
	return nil
}
