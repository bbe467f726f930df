package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Init(&buf, "json", "info")

	l.Info("ticket created", "ticket_id", 7)
	l.Debug("hidden")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "ticket created", entry["msg"])
	assert.EqualValues(t, 7, entry["ticket_id"])
}

func TestInitTextAndSetLevel(t *testing.T) {
	var buf bytes.Buffer
	l := Init(&buf, "text", "warn")

	l.Info("dropped")
	assert.Empty(t, buf.String())

	SetLevel(slog.LevelInfo)
	l.Info("kept", "tag_id", 2)
	out := buf.String()
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "tag_id=2")
	// non-terminal writers never get ANSI escapes
	assert.NotContains(t, out, "\x1b[")
}
