package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := New(Config{Level: slog.LevelInfo, Format: FormatJSON, Output: buffer})
	logger.Debug("hidden")
	logger.Info("session opened", "sessionId", "abc")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "session opened", entry["msg"])
	assert.Equal(t, "abc", entry["sessionId"])

	buffer.Reset()
	logger = New(Config{Level: slog.LevelDebug, Format: FormatDev, Output: buffer})
	logger.Debug("visible")
	assert.Contains(t, buffer.String(), "visible")
}

func TestParse(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatDev, ParseFormat("dev"))
	assert.Equal(t, FormatText, ParseFormat(""))
}
