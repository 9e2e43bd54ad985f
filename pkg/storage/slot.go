package storage

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2/log"
)

// Slot mirrors one collection as a JSON array under a single key.
type Slot[T any] struct {
	store KeyValueStore
	key   string
}

func NewSlot[T any](store KeyValueStore, key string) *Slot[T] {
	return &Slot[T]{store: store, key: key}
}

func (s *Slot[T]) Key() string {
	return s.key
}

// Load returns the stored collection, or seed() when the key is absent,
// unreadable or holds something that does not decode into []T.
func (s *Slot[T]) Load(ctx context.Context, seed func() []T) []T {
	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		log.Warnf("storage: reading %q failed, using seed data: %v", s.key, err)
		return seed()
	}
	if !ok {
		return seed()
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		log.Warnf("storage: %q holds malformed data, using seed data: %v", s.key, err)
		return seed()
	}
	if records == nil {
		records = []T{}
	}
	return records
}

// Save writes records under the slot key. Failures are logged and
// swallowed; callers keep their in-memory state either way.
func (s *Slot[T]) Save(ctx context.Context, records []T) {
	if records == nil {
		records = []T{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		log.Errorf("storage: encoding %q failed: %v", s.key, err)
		return
	}
	if err := s.store.Set(ctx, s.key, string(raw)); err != nil {
		log.Errorf("storage: writing %q failed: %v", s.key, err)
	}
}

// Exists reports whether the slot has ever been written.
func (s *Slot[T]) Exists(ctx context.Context) (bool, error) {
	_, ok, err := s.store.Get(ctx, s.key)
	return ok, err
}
