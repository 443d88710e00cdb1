package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseJSON_FullFile verifies every supported section parses, with
// durations given as strings.
func TestParseJSON_FullFile(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"storage": map[string]any{
			"db":    map[string]any{"path": "vault.db"},
			"blobs": map[string]any{"path": "blobs.db"},
		},
		"session": map[string]any{
			"inactivity_timeout": "10m",
			"poll_interval":      "30s",
		},
		"files": map[string]any{"max_attachment_size": 2097152},
		"log":   map[string]any{"path": "e-vault.log"},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "vault.db", cfg.Storage.DB.Path)
	assert.Equal(t, "blobs.db", cfg.Storage.Blobs.Path)
	assert.Equal(t, 10*time.Minute, cfg.Session.InactivityTimeout)
	assert.Equal(t, 30*time.Second, cfg.Session.PollInterval)
	assert.Equal(t, int64(2097152), cfg.Files.MaxAttachmentSize)
	assert.Equal(t, "e-vault.log", cfg.Log.Path)
}

// TestParseJSON_NumericDuration verifies durations may also be given as
// nanosecond numbers.
func TestParseJSON_NumericDuration(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"session": map[string]any{"inactivity_timeout": int64(time.Minute)},
	})

	cfg, err := parseJSON(path)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.Session.InactivityTimeout)
}

// TestParseJSON_MissingFile verifies a dangling path is an error.
func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON("/nonexistent/config.json")
	assert.Error(t, err)
}

// TestParseJSON_Malformed verifies invalid JSON is an error.
func TestParseJSON_Malformed(t *testing.T) {
	path := writeTempJSONConfig(t, "not an object")
	_, err := parseJSON(path)
	assert.Error(t, err)
}

// TestDuration_UnmarshalJSON covers the string/number forms directly.
func TestDuration_UnmarshalJSON(t *testing.T) {
	var d Duration

	require.NoError(t, d.UnmarshalJSON([]byte(`"90s"`)))
	assert.Equal(t, Duration(90*time.Second), d)

	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, Duration(time.Second), d)

	assert.Error(t, d.UnmarshalJSON([]byte(`"yesterday"`)))
}
