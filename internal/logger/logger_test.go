package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONVerbose(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Format: "json", Writer: &buf, Verbose: true})
	log.Debug().Str("source", "data.json").Msg("reading")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "data.json", line["source"])
	assert.Equal(t, "reading", line["message"])
}

func TestNew_QuietDropsDebugAndInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "debug", Format: "json", Writer: &buf})
	log.Debug().Msg("hidden")
	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel(" INFO "))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("bogus"))
}
