package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOptionsWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "squeeze.log")

	log, err := NewWithOptions("test", &Options{Level: "debug", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Debugw("container encoded", "size", 42)
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "container encoded")
	assert.Contains(t, string(data), `"size":42`)
	assert.Contains(t, string(data), `"logger":"test"`)
}

func TestNewWithOptionsRejectsUnknownLevel(t *testing.T) {
	_, err := NewWithOptions("test", &Options{Level: "loud"})
	require.Error(t, err)
}

func TestLevelFiltersOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "squeeze.log")

	log, err := NewWithOptions("test", &Options{Level: "warn", File: path})
	require.NoError(t, err)

	log.Infow("hidden")
	log.Warnw("shown")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}
