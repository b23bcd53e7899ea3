package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, "warn")

	lg.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	lg.Warn().Str("task", "analytics").Msg("kept")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "analytics", entry["task"])
	assert.Equal(t, "cafe-ordering", entry["service"])
}

func TestNewWithWriterBadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	lg := NewWithWriter(&buf, "loud")
	lg.Debug().Msg("dropped")
	assert.Zero(t, buf.Len())
	lg.Info().Msg("kept")
	assert.NotZero(t, buf.Len())
}
