package kv

import "context"

// Slot binds a single fixed key of a KV store to a value type.
type Slot[T any] struct {
	store KV
	key   string
}

// NewSlot returns a Slot[T] reading and writing key in store.
func NewSlot[T any](store KV, key string) *Slot[T] {
	return &Slot[T]{store: store, key: key}
}

// Key returns the key the slot is bound to.
func (s *Slot[T]) Key() string {
	return s.key
}

// Get retrieves and deserializes the slot value.
// The error wraps ErrNotFound when the slot has never been written.
func (s *Slot[T]) Get(ctx context.Context) (T, error) {
	var v T
	if err := s.store.Get(ctx, s.key, &v); err != nil {
		return v, err
	}
	return v, nil
}

// Set serializes and stores the slot value.
func (s *Slot[T]) Set(ctx context.Context, value T) error {
	return s.store.Set(ctx, s.key, value)
}

// Delete removes the slot.
func (s *Slot[T]) Delete(ctx context.Context) error {
	return s.store.Delete(ctx, s.key)
}

// Has reports whether the slot has been written.
func (s *Slot[T]) Has(ctx context.Context) (bool, error) {
	return s.store.Has(ctx, s.key)
}
