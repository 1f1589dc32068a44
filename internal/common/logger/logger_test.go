package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNew_Formats(t *testing.T) {
	assert.NotNil(t, New("debug", "json"))
	assert.NotNil(t, New("info", "console"))
}

func TestZapAdapter_FieldsAndContext(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core)).With(map[string]interface{}{"runId": "r-1"})

	log.Info("received access token", map[string]interface{}{"accessToken": Redacted})
	log.WithError(errors.New("boom")).Error("failed", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, "r-1", first["runId"])
	assert.Equal(t, "[HIDDEN]", first["accessToken"])

	second := entries[1].ContextMap()
	assert.Equal(t, "boom", second["error"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestZapAdapter_ErrorValuesAreNamed(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewZapAdapter(zap.New(core))

	log.Warn("submission failed", map[string]interface{}{"cause": errors.New("refused")})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "refused", logs.All()[0].ContextMap()["cause"])
}
