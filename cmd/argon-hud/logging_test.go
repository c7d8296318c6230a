package main

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// enableLogging turns file logging on in a fresh working directory and restores discard on cleanup
func enableLogging(t *testing.T) *os.File {
	t.Helper()
	f := setupLogging(true)
	require.NotNil(t, f, "debug logging must open a file")
	t.Cleanup(func() {
		setupLogging(false)
		f.Close()
	})
	return f
}

func TestLoggingOffDiscardsEverything(t *testing.T) {
	t.Chdir(t.TempDir())

	assert.Nil(t, setupLogging(false))
	assert.Equal(t, io.Discard, log.Writer())
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelError))

	_, err := os.Stat(logDir)
	assert.True(t, os.IsNotExist(err), "no log directory without debug")
}

func TestLoggingDebugWritesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	enableLogging(t)

	log.Println("bind requested")
	slog.Info("bound", "actor", "Aria", "generation", 3)
	slog.Debug("build settled", "main", 2)

	data, err := os.ReadFile(filepath.Join(logDir, logFileName))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "bind requested")
	assert.Contains(t, out, "actor=Aria")
	assert.Contains(t, out, "generation=3")
	assert.Contains(t, out, "build settled", "debug level is enabled")
	assert.NotContains(t, out, "\x1b[", "file output carries no color codes")
}

func TestLoggingRotatesLargeFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(logDir, 0o755))
	path := filepath.Join(logDir, logFileName)
	require.NoError(t, os.WriteFile(path, make([]byte, maxLogSize+1), 0o644))

	enableLogging(t)

	entries, err := os.ReadDir(logDir)
	require.NoError(t, err)
	var rotated []string
	for _, e := range entries {
		if e.Name() != logFileName && strings.HasPrefix(e.Name(), "argon-hud-") {
			rotated = append(rotated, e.Name())
		}
	}
	assert.Len(t, rotated, 1)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(maxLogSize))
}

func TestLoggingNeverTouchesTerminal(t *testing.T) {
	t.Chdir(t.TempDir())
	enableLogging(t)

	w := log.Writer()
	assert.NotEqual(t, os.Stdout, w)
	assert.NotEqual(t, os.Stderr, w)
}
