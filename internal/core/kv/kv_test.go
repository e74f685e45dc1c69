package kv_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/hay-kot/inbox/internal/core/kv"
	"github.com/hay-kot/inbox/internal/data/stores"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlot_SetAndGet(t *testing.T) {
	ctx := context.Background()
	store := stores.NewMemoryKV()
	slot := kv.NewSlot[[]string](store, "names")

	require.NoError(t, slot.Set(ctx, []string{"a", "b"}))

	got, err := slot.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, "names", slot.Key())
}

func TestSlot_GetMissing(t *testing.T) {
	ctx := context.Background()
	slot := kv.NewSlot[int](stores.NewMemoryKV(), "missing")

	_, err := slot.Get(ctx)
	require.Error(t, err)
	assert.True(t, kv.IsNotFound(err))
}

func TestSlot_HasAndDelete(t *testing.T) {
	ctx := context.Background()
	store := stores.NewMemoryKV()
	slot := kv.NewSlot[int](store, "count")

	has, err := slot.Has(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, slot.Set(ctx, 3))
	has, err = slot.Has(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, slot.Delete(ctx))
	has, err = slot.Has(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSlot_SharesStoreWithRawAccess(t *testing.T) {
	ctx := context.Background()
	store := stores.NewMemoryKV()

	require.NoError(t, kv.NewSlot[int](store, "one").Set(ctx, 1))
	require.NoError(t, kv.NewSlot[int](store, "two").Set(ctx, 2))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, keys)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, kv.IsNotFound(fmt.Errorf("get %q: %w", "k", kv.ErrNotFound)))
	assert.False(t, kv.IsNotFound(fmt.Errorf("boom")))
	assert.False(t, kv.IsNotFound(nil))
}
