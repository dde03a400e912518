package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToFile(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	logFile := filepath.Join(t.TempDir(), "log", "studytrack.log")

	closer, err := Init(Config{LogFile: logFile})
	require.NoError(t, err)

	slog.Info("task completed", slog.String("task_id", "abc"))
	slog.Debug("not recorded")

	require.NoError(t, closer.Close())

	b, err := os.ReadFile(logFile)
	require.NoError(t, err)

	assert.Contains(t, string(b), "task completed")
	assert.Contains(t, string(b), "task_id=abc")
	assert.NotContains(t, string(b), "not recorded")
}

func TestInitDebugMirrorsToStderr(t *testing.T) {
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	var stderr bytes.Buffer

	closer, err := Init(Config{
		LogFile: filepath.Join(t.TempDir(), "studytrack.log"),
		Debug:   true,
		Stderr:  &stderr,
	})
	require.NoError(t, err)

	defer closer.Close()

	slog.Debug("opening database")

	assert.Contains(t, stderr.String(), "opening database")
}
