package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelInfo, ParseLevel(" info "))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelWarn, ParseLevel("bogus"))
}

func TestInitLogger_ConsoleLevelFilter(t *testing.T) {
	defer InitLogger(LogOptions{Level: "warn"}, os.Stderr)

	var buf bytes.Buffer
	InitLogger(LogOptions{Level: "info", Format: "console"}, &buf)

	Debug("hidden %d", 1)
	Info("particles=%d", 1000)
	SyncLogger()

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "particles=1000")
	assert.Contains(t, out, RunID)
	assert.Equal(t, LevelInfo, CurrentLevel())
}

func TestInitLogger_JSON(t *testing.T) {
	defer InitLogger(LogOptions{Level: "warn"}, os.Stderr)

	var buf bytes.Buffer
	InitLogger(LogOptions{Level: "debug", Format: "json"}, &buf)

	Warn("camera lerp %.4f", 0.0125)
	SyncLogger()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "camera lerp 0.0125", entry["msg"])
	assert.Equal(t, RunID, entry["run"])
}

func TestInitLogger_File(t *testing.T) {
	defer InitLogger(LogOptions{Level: "warn"}, os.Stderr)

	path := filepath.Join(t.TempDir(), "cursor-escape.log")
	var console bytes.Buffer
	InitLogger(LogOptions{Level: "error", File: path, MaxSizeMB: 1}, &console)

	Error("boom")
	SyncLogger()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"boom"`), string(data))
	assert.Contains(t, console.String(), "boom")
}

func TestRaylibLogCallback(t *testing.T) {
	defer InitLogger(LogOptions{Level: "warn"}, os.Stderr)

	var buf bytes.Buffer
	InitLogger(LogOptions{Level: "warn"}, &buf)

	RaylibLogCallback(3, "INFO: window created")
	RaylibLogCallback(4, "WARNING: shader fallback")
	SyncLogger()

	out := buf.String()
	assert.NotContains(t, out, "window created")
	assert.Contains(t, out, "[RAYLIB] WARNING: shader fallback")
}
