package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLogger_WritesJSONWithError(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLoggerWithWriter(&buf, "info")

	log.Errorf(errors.New("boom"), "item %s failed", "42")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "item 42 failed", rec["msg"])
	assert.Equal(t, "boom", rec["error"])
}

func TestSlogLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLoggerWithWriter(&buf, "warn")

	log.Infof("hidden")
	log.Debugf("hidden too")
	assert.Zero(t, buf.Len())

	log.Warnf("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestZerologLogger_ConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerologLogger(&buf, "debug")

	log.Debugf("embedding cached for %q", "milk")
	log.Errorf(errors.New("qdrant down"), "search failed")

	out := buf.String()
	assert.Contains(t, out, `embedding cached for "milk"`)
	assert.Contains(t, out, "qdrant down")
}

func TestNew_SelectsImplementation(t *testing.T) {
	_, isZerolog := New("console", "info").(*ZerologLogger)
	assert.True(t, isZerolog)

	_, isSlog := New("json", "info").(*SlogLogger)
	assert.True(t, isSlog)
}
