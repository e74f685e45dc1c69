package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/inbox/internal/core/config"
	"github.com/hay-kot/inbox/internal/core/notify"
)

func TestAdd_FromFlags(t *testing.T) {
	env := newTestEnv(t, config.DriverMemory)

	id := env.mustAdd(t, "--type", "warning", "--title", "Disk", "almost", "full")

	msgs := env.app.Store.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, id, msgs[0].ID)
	assert.Equal(t, notify.TypeWarning, msgs[0].Type)
	assert.Equal(t, "Disk", msgs[0].Title)
	assert.Equal(t, "almost full", msgs[0].Content)
	assert.False(t, msgs[0].Read)
}

func TestAdd_DefaultsToInfo(t *testing.T) {
	env := newTestEnv(t, config.DriverMemory)

	env.mustAdd(t, "--title", "Hello")

	assert.Equal(t, notify.TypeInfo, env.app.Store.Messages()[0].Type)
}

func TestAdd_TypeIsCaseInsensitive(t *testing.T) {
	env := newTestEnv(t, config.DriverMemory)

	env.mustAdd(t, "--type", "ERROR", "--title", "Boom")

	assert.Equal(t, notify.TypeError, env.app.Store.Messages()[0].Type)
}

func TestAdd_RejectsUnknownType(t *testing.T) {
	env := newTestEnv(t, config.DriverMemory)

	_, _, err := env.run(t, "add", "--type", "fatal", "--title", "Nope")

	require.ErrorIs(t, err, notify.ErrInvalidType)
	assert.Empty(t, env.app.Store.Messages())
}

func TestAdd_RequiresTitle(t *testing.T) {
	env := newTestEnv(t, config.DriverMemory)

	_, _, err := env.run(t, "add", "--type", "info", "no", "title")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
	assert.Empty(t, env.app.Store.Messages())
}

func TestAdd_FromStdin(t *testing.T) {
	env := newTestEnv(t, config.DriverMemory)

	out, _, err := env.runWithInput(t, `{"type":"success","title":"Saved","content":"ok"}`, "add", "-f", "-", "--json")
	require.NoError(t, err)

	var got notify.Message
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, notify.TypeSuccess, got.Type)
	assert.Equal(t, "Saved", got.Title)
	assert.Equal(t, "ok", got.Content)
	assert.Equal(t, []notify.Message{got}, env.app.Store.Messages())
}

func TestAdd_FromFile(t *testing.T) {
	env := newTestEnv(t, config.DriverMemory)

	path := filepath.Join(t.TempDir(), "draft.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"info","title":"From file"}`), 0o644))

	env.mustAdd(t, "--file", path)

	assert.Equal(t, "From file", env.app.Store.Messages()[0].Title)
}

func TestAdd_InvalidJSON(t *testing.T) {
	env := newTestEnv(t, config.DriverMemory)

	_, _, err := env.runWithInput(t, `{not json`, "add", "-f", "-")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode JSON")
	assert.Empty(t, env.app.Store.Messages())
}

func TestAdd_NewestFirst(t *testing.T) {
	env := newTestEnv(t, config.DriverMemory)

	first := env.mustAdd(t, "--title", "A")
	second := env.mustAdd(t, "--title", "B")

	msgs := env.app.Store.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, second, msgs[0].ID)
	assert.Equal(t, first, msgs[1].ID)
}
