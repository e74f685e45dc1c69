package logutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "inbox.log")

	logger, closer, err := New("info", file)
	require.NoError(t, err)

	logger.Debug().Msg("filtered")
	logger.Info().Msg("kept")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"kept"`)
	assert.NotContains(t, string(data), "filtered")
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestNew_Appends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "inbox.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := New("debug", file)
		require.NoError(t, err)
		logger.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New("loud", "")
	require.Error(t, err)
	assert.NotNil(t, closer)
}
