package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	l, err := New(dir, zerolog.InfoLevel)
	require.NoError(t, err)
	l.Info().Str("component", "tracker").Msg("action toggled")
	l.Debug().Msg("hidden")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "tracker", entry["component"])
	assert.Equal(t, "ninety", entry["app"])
	assert.Equal(t, "action toggled", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewAppends(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 2; i++ {
		l, err := New(dir, zerolog.InfoLevel)
		require.NoError(t, err)
		l.Info().Int("run", i).Msg("start")
		require.NoError(t, l.Close())
	}
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")))
}

func TestNilLoggerClose(t *testing.T) {
	var l *Logger
	assert.NoError(t, l.Close())
}
