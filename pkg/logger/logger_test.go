package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitsOneJSONLinePerEntry(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("admin-api", &buf)

	log.Info("Deal approved", map[string]interface{}{"deal_id": "abc"})
	log.Warn("Cache write failed", nil)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var first map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "info", first["level"])
	assert.Equal(t, "admin-api", first["service"])
	assert.Equal(t, "Deal approved", first["message"])
	assert.Equal(t, "abc", first["deal_id"])
	assert.NotEmpty(t, first["timestamp"])

	var second map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[1], &second))
	assert.Equal(t, "warn", second["level"])
}

func TestFieldsCannotOverrideEnvelope(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("admin-api", &buf)

	log.Error("boom", map[string]interface{}{"level": "spoofed", "service": "other"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "admin-api", entry["service"])
}
