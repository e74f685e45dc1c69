package stores

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/inbox/internal/core/config"
	"github.com/hay-kot/inbox/internal/data/db"
	"github.com/hay-kot/inbox/internal/store/jsonfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Storage.Driver = driver
	return &cfg
}

func TestOpen_Drivers(t *testing.T) {
	for _, driver := range config.Drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			backend, err := Open(ctx, testConfig(t, driver))
			require.NoError(t, err)
			defer func() { _ = backend.Close() }()

			require.NoError(t, backend.Set(ctx, "k", "v"))

			var got string
			require.NoError(t, backend.Get(ctx, "k", &got))
			assert.Equal(t, "v", got)
		})
	}
}

func TestOpen_FileDriverUsesStoragePath(t *testing.T) {
	cfg := testConfig(t, config.DriverFile)
	cfg.Storage.Path = filepath.Join(t.TempDir(), "custom.json")

	backend, err := Open(context.Background(), cfg)
	require.NoError(t, err)

	file, ok := backend.(*jsonfile.KVFile)
	require.True(t, ok)
	assert.Equal(t, cfg.Storage.Path, file.Path())
}

func TestOpen_SQLitePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.DriverSQLite)

	first, err := Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "k", 7))
	require.NoError(t, first.Close())

	second, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	var got int
	require.NoError(t, second.Get(ctx, "k", &got))
	assert.Equal(t, 7, got)
}

func TestOpen_RecoversCorruptDatabase(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.DriverSQLite)
	require.NoError(t, os.MkdirAll(cfg.DataDir, 0o755))

	dbPath := filepath.Join(cfg.DataDir, db.FileName)
	garbage := make([]byte, 4096)
	for i := range garbage {
		garbage[i] = 'x'
	}
	require.NoError(t, os.WriteFile(dbPath, garbage, 0o644))

	backend, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer func() { _ = backend.Close() }()

	require.NoError(t, backend.Set(ctx, "k", "fresh"))

	matches, err := filepath.Glob(dbPath + ".corrupt.*")
	require.NoError(t, err)
	assert.NotEmpty(t, matches, "corrupt file is kept as a backup")
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t, "etcd"))
	assert.ErrorContains(t, err, "unknown storage driver")
}

func TestIsCorruptionError(t *testing.T) {
	assert.False(t, IsCorruptionError(nil))
	assert.True(t, IsCorruptionError(assertError("file is not a database")))
	assert.True(t, IsCorruptionError(assertError("database disk image is malformed")))
	assert.False(t, IsCorruptionError(assertError("disk full")))
}

type assertError string

func (e assertError) Error() string { return string(e) }
