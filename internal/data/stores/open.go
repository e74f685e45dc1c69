package stores

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hay-kot/inbox/internal/core/config"
	"github.com/hay-kot/inbox/internal/core/kv"
	"github.com/hay-kot/inbox/internal/core/logging"
	"github.com/hay-kot/inbox/internal/data/db"
	"github.com/hay-kot/inbox/internal/store/jsonfile"
)

// Backend is a KV store that owns resources to release on shutdown.
type Backend interface {
	kv.KV
	io.Closer
}

// sqliteBackend ties a KVStore to the database it must close.
type sqliteBackend struct {
	*KVStore
	database *db.DB
}

func (b sqliteBackend) Close() error {
	return b.database.Close()
}

// Open returns the KV backend selected by cfg.Storage.Driver.
// A corrupted sqlite database is moved aside and recreated empty.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return NewMemoryKV(), nil
	case config.DriverFile:
		return jsonfile.NewKVFile(cfg.StoragePath()), nil
	case config.DriverSQLite:
		return openSQLite(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func openSQLite(ctx context.Context, cfg *config.Config) (Backend, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	opts := db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeout,
	}

	database, err := db.Open(cfg.DataDir, opts)
	if IsCorruptionError(err) {
		backup, recoverErr := RecoverFromCorruption(cfg.DataDir)
		if recoverErr != nil {
			return nil, fmt.Errorf("recover database: %w", recoverErr)
		}
		logger := logging.ComponentCtx(ctx, "stores")
		logger.Warn().Err(err).Str("backup", backup).Msg("database was corrupt, starting fresh")
		database, err = db.Open(cfg.DataDir, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return sqliteBackend{KVStore: NewKVStore(database), database: database}, nil
}
