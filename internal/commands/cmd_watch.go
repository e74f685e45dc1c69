package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/internal/core/config"
	"github.com/hay-kot/inbox/internal/core/logging"
	"github.com/hay-kot/inbox/internal/inbox"
	"github.com/hay-kot/inbox/internal/store/jsonfile"
)

type WatchCmd struct {
	flags *Flags
	app   *inbox.App

	interval   time.Duration
	jsonOutput bool
}

// NewWatchCmd creates a new watch command
func NewWatchCmd(flags *Flags, app *inbox.App) *WatchCmd {
	return &WatchCmd{flags: flags, app: app}
}

// Register adds the watch command to the application
func (cmd *WatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "watch",
		Usage:     "Print the unread count whenever it changes",
		UsageText: "inbox watch [--json] [--interval 2s]",
		Description: `Prints the current unread count, then a new line each time another process
changes the stored notifications. The file driver is watched with filesystem
events; the sqlite driver is polled every --interval. Runs until interrupted.`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:        "interval",
				Usage:       "poll interval for the sqlite driver",
				Value:       2 * time.Second,
				Destination: &cmd.interval,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print JSON lines with unread and total counts",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *WatchCmd) run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.app.Config
	logger := logging.ComponentCtx(ctx, "watch")

	var (
		changes <-chan struct{}
		stop    func()
	)

	switch cfg.Storage.Driver {
	case config.DriverFile:
		w, err := jsonfile.NewWatcher(cfg.StoragePath(), cfg.Watch.Debounce)
		if err != nil {
			return fmt.Errorf("watch %s: %w", cfg.StoragePath(), err)
		}
		changes = w.Changes()
		stop = func() { _ = w.Close() }
	case config.DriverSQLite:
		if cmd.interval <= 0 {
			return fmt.Errorf("--interval must be positive")
		}
		ch, cancel := poll(ctx, cmd.interval)
		changes = ch
		stop = cancel
	default:
		return fmt.Errorf("watch is not supported by the %q driver", cfg.Storage.Driver)
	}
	defer stop()

	p := &countPrinter{w: c.Root().Writer, json: cmd.jsonOutput, last: Counts{Unread: -1}}
	report := func() {
		counts := Counts{
			Unread: cmd.app.Store.UnreadCount(),
			Total:  len(cmd.app.Store.Messages()),
		}
		if err := p.print(counts); err != nil {
			logger.Warn().Err(err).Msg("write count")
		}
	}

	unsubscribe := cmd.app.Store.Subscribe(report)
	defer unsubscribe()

	report()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			logger.Debug().Msg("storage changed, reloading")
			cmd.app.Store.Load(ctx)
		}
	}
}

// poll emits a tick on the returned channel every interval until cancelled.
func poll(ctx context.Context, interval time.Duration) (<-chan struct{}, func()) {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan struct{}, 1)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case ch <- struct{}{}:
				default:
				}
			}
		}
	}()

	return ch, cancel
}

// countPrinter writes counts, skipping repeats of the last printed value.
type countPrinter struct {
	w    io.Writer
	json bool
	last Counts
}

func (p *countPrinter) print(c Counts) error {
	if c == p.last {
		return nil
	}
	p.last = c

	if p.json {
		return json.NewEncoder(p.w).Encode(c)
	}

	_, err := fmt.Fprintln(p.w, c.Unread)
	return err
}
