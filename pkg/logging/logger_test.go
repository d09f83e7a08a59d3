package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: LevelInfo, JSONFormat: true, Output: &buf})

	log.Info("parsed transcript", F("messages", 42), F("format", "android"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parsed transcript", entry["message"])
	assert.Equal(t, float64(42), entry["messages"])
	assert.Equal(t, "android", entry["format"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: LevelWarn, JSONFormat: true, Output: &buf})

	log.Debug("dropped")
	log.Info("dropped too")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestNewLogger_ErrField(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: LevelError, JSONFormat: true, Output: &buf})

	log.Error("read failed", Err(errors.New("boom")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "boom", entry["error"])
}

func TestWith_AttachesFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&Config{Level: LevelInfo, JSONFormat: true, Output: &buf})

	scoped := log.With(F("export", "chat.zip"))
	scoped.Info("reading")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "chat.zip", entry["export"])
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()

	// Must not panic, and With returns a usable logger.
	log.Debug("x")
	log.With(F("k", "v")).Error("y")
}
