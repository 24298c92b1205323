package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout); SetFormat("console"); SetLevel("info") })

	SetLevel("debug")
	SetFormat("json")
	Log.Debug().Str("run_id", "run_1").Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "run_1", entry["run_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestSetLevel_InvalidFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout); SetLevel("info") })

	SetLevel("loud")
	assert.Equal(t, zerolog.InfoLevel, Log.GetLevel())

	SetLevel("")
	assert.Equal(t, zerolog.InfoLevel, Log.GetLevel())

	SetLevel(" WARN ")
	assert.Equal(t, zerolog.WarnLevel, Log.GetLevel())
}
