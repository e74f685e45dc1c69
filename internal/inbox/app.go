// Package inbox wires configuration, storage and the notification store into
// the App consumed by commands.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/hay-kot/inbox/internal/core/config"
	"github.com/hay-kot/inbox/internal/core/logging"
	"github.com/hay-kot/inbox/internal/core/notify"
	"github.com/hay-kot/inbox/internal/data/stores"
)

// App is the central entry point for inbox operations.
// Commands consume App instead of cherry-picking raw dependencies.
type App struct {
	Store   *notify.Store
	Config  *config.Config
	Backend stores.Backend

	failures *atomic.Int64
}

// Open opens the configured backend and loads the persisted notifications.
// Extra options are applied after the defaults derived from cfg.
func Open(ctx context.Context, cfg *config.Config, opts ...notify.Option) (*App, error) {
	backend, err := stores.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	ctx = logging.WithDriver(ctx, cfg.Storage.Driver)
	failures := &atomic.Int64{}
	storeOpts := append([]notify.Option{
		notify.WithKey(cfg.Storage.Key),
		notify.WithLogger(logging.ComponentCtx(ctx, "notify")),
		notify.WithErrorHook(func(string, error) { failures.Add(1) }),
	}, opts...)

	store := notify.NewStore(backend, storeOpts...)
	store.Load(ctx)

	return &App{
		Store:    store,
		Config:   cfg,
		Backend:  backend,
		failures: failures,
	}, nil
}

// StorageFailures returns how many reads and writes the store swallowed.
// The store already logged each one.
func (a *App) StorageFailures() int {
	if a == nil || a.failures == nil {
		return 0
	}
	return int(a.failures.Load())
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a == nil || a.Backend == nil {
		return nil
	}
	if err := a.Backend.Close(); err != nil {
		return errors.Join(errors.New("close storage"), err)
	}
	return nil
}
