package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"purchase flow", "purchase_flow"},
		{"../etc/passwd", "etc_passwd"},
		{"", "run"},
		{"***", "run"},
		{"checkout-step_1", "checkout-step_1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitize(tt.in))
		})
	}
}

func TestSanitize_Truncates(t *testing.T) {
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	assert.Len(t, sanitize(string(long)), 60)
}

func TestLoggerAdapter_WithFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewFromZap(zap.New(core))

	log.WithField("scenario", "login").WithFields(map[string]any{"attempt": 2}).Info("scenario started", "user", "standard_user")

	entries := logs.All()
	require.Len(t, entries, 1)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "scenario started", entries[0].Message)
	assert.Equal(t, "login", ctx["scenario"])
	assert.EqualValues(t, 2, ctx["attempt"])
	assert.Equal(t, "standard_user", ctx["user"])
}

func TestNewLoggerAdapter_WritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLoggerAdapter("smoke run", Config{Dir: dir, Level: "debug"})
	require.NoError(t, err)

	log.Debug("wait failed", "selector", "#missing")
	require.NoError(t, log.Close())

	files, err := filepath.Glob(filepath.Join(dir, "*_smoke_run.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	f, err := os.Open(files[0])
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var entry map[string]any
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
	assert.Equal(t, "wait failed", entry["message"])
	assert.Equal(t, "#missing", entry["selector"])
	assert.Equal(t, "debug", entry["level"])
	assert.Contains(t, entry, "timestamp")
}

func TestNewLoggerAdapter_BadLevelFallsBackToInfo(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLoggerAdapter("x", Config{Dir: dir, Level: "chatty"})
	require.NoError(t, err)
	defer log.Close()

	assert.False(t, log.base.Core().Enabled(zap.DebugLevel))
	assert.True(t, log.base.Core().Enabled(zap.InfoLevel))
}
