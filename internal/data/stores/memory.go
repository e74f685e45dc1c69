package stores

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hay-kot/inbox/internal/core/kv"
	mapkv "github.com/hay-kot/inbox/pkg/kv"
)

// MemoryKV implements kv.KV in process memory. Values are stored as encoded
// JSON so callers observe the same copy semantics as the durable backends.
type MemoryKV struct {
	data *mapkv.Store[string, json.RawMessage]
}

var _ kv.KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty in-memory KV store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: mapkv.New[string, json.RawMessage]()}
}

// Get deserializes the value stored under key into dest.
func (m *MemoryKV) Get(_ context.Context, key string, dest any) error {
	raw, ok := m.data.Get(key)
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set serializes value under key.
func (m *MemoryKV) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}
	m.data.Set(key, raw)
	return nil
}

// SetRaw stores already-encoded bytes under key without validation.
func (m *MemoryKV) SetRaw(key string, raw []byte) {
	m.data.Set(key, json.RawMessage(raw))
}

// Delete removes key.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.data.Delete(key)
	return nil
}

// Has reports whether key is present.
func (m *MemoryKV) Has(_ context.Context, key string) (bool, error) {
	return m.data.Has(key), nil
}

// ListKeys returns all keys in sorted order.
func (m *MemoryKV) ListKeys(_ context.Context) ([]string, error) {
	return m.data.Keys(), nil
}

// Close satisfies io.Closer; there is nothing to release.
func (m *MemoryKV) Close() error {
	return nil
}
