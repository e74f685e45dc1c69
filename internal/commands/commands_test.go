package commands

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/inbox/internal/core/config"
	"github.com/hay-kot/inbox/internal/inbox"
)

// syncBuffer is a bytes.Buffer safe for concurrent writers and readers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type testEnv struct {
	flags *Flags
	app   *inbox.App
}

func newTestEnv(t *testing.T, driver string) *testEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(t.TempDir(), "data")
	cfg.Storage.Driver = driver

	app, err := inbox.Open(context.Background(), &cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	return &testEnv{flags: &Flags{Config: &cfg}, app: app}
}

func (e *testEnv) root(stdout, stderr *syncBuffer, stdin string) *cli.Command {
	root := &cli.Command{
		Name:           "inbox",
		Writer:         stdout,
		ErrWriter:      stderr,
		Reader:         strings.NewReader(stdin),
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	NewAddCmd(e.flags, e.app).Register(root)
	NewLsCmd(e.flags, e.app).Register(root)
	NewShowCmd(e.flags, e.app).Register(root)
	NewRmCmd(e.flags, e.app).Register(root)
	NewReadCmd(e.flags, e.app).Register(root)
	NewClearCmd(e.flags, e.app).Register(root)
	NewCountCmd(e.flags, e.app).Register(root)
	NewWatchCmd(e.flags, e.app).Register(root)
	NewConfigValidateCmd(e.flags).Register(root)

	return root
}

// run executes args against a fresh command tree and returns stdout and stderr.
func (e *testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return e.runWithInput(t, "", args...)
}

func (e *testEnv) runWithInput(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr syncBuffer
	err := e.root(&stdout, &stderr, stdin).Run(context.Background(), append([]string{"inbox"}, args...))
	return stdout.String(), stderr.String(), err
}

// mustAdd adds a notification through the CLI and returns its ID.
func (e *testEnv) mustAdd(t *testing.T, args ...string) string {
	t.Helper()

	out, _, err := e.run(t, append([]string{"add"}, args...)...)
	require.NoError(t, err)
	return strings.TrimSpace(out)
}
