package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/internal/commands"
	"github.com/hay-kot/inbox/internal/core/config"
	"github.com/hay-kot/inbox/internal/core/logging"
	"github.com/hay-kot/inbox/internal/inbox"
	"github.com/hay-kot/inbox/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, init() populates
	// these from runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	// ldflags aren't set by `go install module@version`; fall back to the
	// module version and VCS metadata Go records in the binary.
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var (
		logCloser func()
		inboxApp  = &inbox.App{}
	)

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "inbox",
		Usage:     "Keep a persistent list of notifications",
		UsageText: "inbox [global options] command [command options]",
		Description: `inbox stores notifications newest first, tracks which ones have been read,
and keeps the list in a SQLite database or a JSON file between runs.

Run 'inbox add --title TITLE' to record a notification and 'inbox ls' to list them.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("INBOX_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/inbox.log)",
				Sources:     cli.EnvVars("INBOX_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("INBOX_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("INBOX_DATA_DIR"),
				Value:       commands.DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.StringFlag{
				Name:        "storage",
				Usage:       "storage driver override (sqlite, file, memory)",
				Sources:     cli.EnvVars("INBOX_STORAGE"),
				Destination: &flags.Storage,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logFile := flags.LogFile
			if logFile == "" {
				logFile = filepath.Join(flags.DataDir, "inbox.log")
			}

			logger, closer, err := logutils.New(flags.LogLevel, logFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath, flags.DataDir)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}

			if flags.Storage != "" {
				cfg.Storage.Driver = flags.Storage
				if err := cfg.Validate(); err != nil {
					return ctx, fmt.Errorf("invalid --storage: %w", err)
				}
			}
			flags.Config = cfg

			if len(c.Args().Slice()) > 0 {
				ctx = logging.WithCommand(ctx, c.Args().First())
			}

			// config validate must work even when storage can't be opened
			if c.Args().First() == "config" {
				return ctx, nil
			}

			opened, err := inbox.Open(ctx, cfg)
			if err != nil {
				return ctx, err
			}

			// Populate the pre-allocated App struct (commands already hold a pointer to it)
			*inboxApp = *opened

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if n := inboxApp.StorageFailures(); n > 0 {
				_, _ = fmt.Fprintf(c.Root().ErrWriter, "warning: %d notification storage operation(s) failed; changes may not be saved (see the log file)\n", n)
			}

			if err := inboxApp.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close storage")
				return err
			}

			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = commands.NewAddCmd(flags, inboxApp).Register(app)
	app = commands.NewLsCmd(flags, inboxApp).Register(app)
	app = commands.NewShowCmd(flags, inboxApp).Register(app)
	app = commands.NewRmCmd(flags, inboxApp).Register(app)
	app = commands.NewReadCmd(flags, inboxApp).Register(app)
	app = commands.NewClearCmd(flags, inboxApp).Register(app)
	app = commands.NewCountCmd(flags, inboxApp).Register(app)
	app = commands.NewWatchCmd(flags, inboxApp).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	stop()
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
