package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitForChange(t *testing.T, w *Watcher, timeout time.Duration) bool {
	t.Helper()
	select {
	case <-w.Changes():
		return true
	case <-time.After(timeout):
		return false
	}
}

func TestWatcher_ReportsWrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "inbox.json")
	w, err := NewWatcher(path, 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	require.NoError(t, NewKVFile(path).Set(context.Background(), "k", 1))

	require.True(t, waitForChange(t, w, 5*time.Second), "timeout waiting for change")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w, err := NewWatcher(filepath.Join(dir, "inbox.json"), 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644))

	require.False(t, waitForChange(t, w, 200*time.Millisecond))
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "inbox.json")
	w, err := NewWatcher(path, 100*time.Millisecond)
	require.NoError(t, err)
	defer w.Close() //nolint:errcheck

	store := NewKVFile(path)
	for i := range 5 {
		require.NoError(t, store.Set(context.Background(), "k", i))
	}

	require.True(t, waitForChange(t, w, 5*time.Second))
	require.False(t, waitForChange(t, w, 300*time.Millisecond), "burst should produce one signal")
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "inbox.json"), 0)
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
