// Package jsonfile provides a JSON-file-backed key-value store and a watcher
// that reports when another process rewrites the file.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/hay-kot/inbox/internal/core/kv"
	"github.com/hay-kot/inbox/internal/core/logging"
)

// KVFile implements kv.KV on top of a single JSON object on disk.
// Every call reads the file, so writes from other processes are observed;
// concurrent writers are not coordinated and the last rename wins.
type KVFile struct {
	path string
	mu   sync.Mutex
}

var _ kv.KV = (*KVFile)(nil)

// NewKVFile creates a store persisting to path. The file and its directory
// are created on first write.
func NewKVFile(path string) *KVFile {
	return &KVFile{path: path}
}

// Path returns the file backing the store.
func (f *KVFile) Path() string {
	return f.path
}

// Get deserializes the value stored under key into dest.
func (f *KVFile) Get(_ context.Context, key string, dest any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return fmt.Errorf("kv get %q: %w", key, err)
	}

	raw, ok := entries[key]
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, kv.ErrNotFound)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set serializes value under key and rewrites the file atomically.
// An unreadable file is replaced rather than blocking all further writes.
func (f *KVFile) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		logger := logging.Component("jsonfile")
		logger.Warn().Err(err).Str("path", f.path).Msg("replacing unreadable kv file")
		entries = map[string]json.RawMessage{}
	}

	entries[key] = raw
	if err := f.save(entries); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (f *KVFile) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}

	if _, ok := entries[key]; !ok {
		return nil
	}

	delete(entries, key)
	if err := f.save(entries); err != nil {
		return fmt.Errorf("kv delete %q: %w", key, err)
	}
	return nil
}

// Has reports whether key is present.
func (f *KVFile) Has(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return false, fmt.Errorf("kv has %q: %w", key, err)
	}

	_, ok := entries[key]
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (f *KVFile) ListKeys(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries, err := f.load()
	if err != nil {
		return nil, fmt.Errorf("kv list keys: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close satisfies io.Closer; the file is never held open.
func (f *KVFile) Close() error {
	return nil
}

// load reads the file from disk.
// Returns an empty map if the file doesn't exist or is empty.
func (f *KVFile) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	if entries == nil {
		entries = map[string]json.RawMessage{}
	}

	return entries, nil
}

// save writes the file to disk atomically.
func (f *KVFile) save(entries map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, f.path)
}
