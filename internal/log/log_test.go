package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestSetOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "debug", "json")
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}, "error", "text") })

	With("component", "test").Debug("row binarized", "y", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "row binarized", rec["msg"])
	assert.Equal(t, "test", rec["component"])
	assert.EqualValues(t, 3, rec["y"])
}

func TestSetOutputFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, "warn", "text")
	t.Cleanup(func() { SetOutput(&bytes.Buffer{}, "error", "text") })

	Info("dropped")
	assert.Empty(t, buf.String())
	Warn("kept")
	assert.Contains(t, buf.String(), "msg=kept")
}
