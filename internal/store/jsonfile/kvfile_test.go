package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/inbox/internal/core/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKVFile(t *testing.T) *KVFile {
	t.Helper()
	return NewKVFile(filepath.Join(t.TempDir(), "nested", "inbox.json"))
}

func TestKVFile_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := newTestKVFile(t)

	type payload struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	require.NoError(t, store.Set(ctx, "k", payload{Name: "hello", Value: 42}))

	var got payload
	require.NoError(t, store.Get(ctx, "k", &got))
	assert.Equal(t, payload{Name: "hello", Value: 42}, got)

	_, err := os.Stat(store.Path())
	require.NoError(t, err, "file is created on first write")
	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file is renamed away")
}

func TestKVFile_GetMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestKVFile(t)

	var v string
	err := store.Get(ctx, "nope", &v)
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Set(ctx, "other", "x"))
	err = store.Get(ctx, "nope", &v)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestKVFile_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := newTestKVFile(t)

	require.NoError(t, store.Set(ctx, "b", 2))
	require.NoError(t, store.Set(ctx, "a", 1))
	require.NoError(t, store.Set(ctx, "b", 3))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	var a, b int
	require.NoError(t, store.Get(ctx, "a", &a))
	require.NoError(t, store.Get(ctx, "b", &b))
	assert.Equal(t, 1, a)
	assert.Equal(t, 3, b)
}

func TestKVFile_DeleteAndHas(t *testing.T) {
	ctx := context.Background()
	store := newTestKVFile(t)

	require.NoError(t, store.Delete(ctx, "missing"))

	require.NoError(t, store.Set(ctx, "k", true))
	has, err := store.Has(ctx, "k")
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, store.Delete(ctx, "k"))
	has, err = store.Has(ctx, "k")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestKVFile_CorruptFile(t *testing.T) {
	ctx := context.Background()
	store := newTestKVFile(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("{not json"), 0o644))

	var v int
	err := store.Get(ctx, "k", &v)
	require.Error(t, err)
	assert.False(t, kv.IsNotFound(err))

	// A write replaces the unreadable file.
	require.NoError(t, store.Set(ctx, "k", 5))
	require.NoError(t, store.Get(ctx, "k", &v))
	assert.Equal(t, 5, v)
}

func TestKVFile_EmptyFile(t *testing.T) {
	ctx := context.Background()
	store := newTestKVFile(t)

	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), nil, 0o644))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestKVFile_SeesOtherWriters(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inbox.json")

	a := NewKVFile(path)
	b := NewKVFile(path)

	require.NoError(t, a.Set(ctx, "k", "from a"))

	var got string
	require.NoError(t, b.Get(ctx, "k", &got))
	assert.Equal(t, "from a", got)
}
