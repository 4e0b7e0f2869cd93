package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New("loud", "")
	require.Error(t, err)
	assert.NotNil(t, closer)
}

func TestNew_FileOutput(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "gtm.log")

	logger, closer, err := New("info", file)
	require.NoError(t, err)

	logger.Debug().Msg("hidden")
	logger.Info().Str("dir", "/tmp/x").Msg("cloned")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry), "exactly one JSON line expected")
	assert.Equal(t, "cloned", entry["message"])
	assert.Equal(t, "/tmp/x", entry["dir"])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(os.Getpid()), entry["pid"])

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNew_FileAppends(t *testing.T) {
	file := filepath.Join(t.TempDir(), "gtm.log")

	for _, msg := range []string{"first run", "second run"} {
		logger, closer, err := New("info", file)
		require.NoError(t, err)
		logger.Info().Msg(msg)
		closer()
	}

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first run")
	assert.Contains(t, lines[1], "second run")
}
