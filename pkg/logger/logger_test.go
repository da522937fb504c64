package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestErrorCarriesContextFieldsAndStack(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: buf})

	ctx := log.WithRequestID(context.Background(), "req-123")
	ctx = log.WithPartnerID(ctx, "partner-9")
	log.Error(ctx, "approve failed", errors.New("boom"))

	entry := decodeLine(t, buf)
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Equal(t, "partner-9", entry["partner_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "test", entry["service"])
	assert.NotEmpty(t, entry["stack"])
}

func TestWarnStackToggle(t *testing.T) {
	buf := &bytes.Buffer{}
	New(Options{ServiceName: "test", Output: buf}).Warn(context.Background(), "plain")
	assert.NotContains(t, decodeLine(t, buf), "stack")

	buf.Reset()
	New(Options{ServiceName: "test", Output: buf, WarnStack: true}).Warn(context.Background(), "stacked")
	assert.Contains(t, decodeLine(t, buf), "stack")
}

func TestWithFieldsDoesNotLeakIntoParent(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(Options{ServiceName: "test", Output: buf})

	parent := context.Background()
	_ = log.WithFields(parent, map[string]any{"stage": "loi_sent"})
	log.Info(parent, "parent")

	assert.NotContains(t, decodeLine(t, buf), "stage")
}

func TestNilLoggerIsSilent(t *testing.T) {
	var log *Logger
	ctx := log.WithField(context.Background(), "k", "v")
	assert.NotNil(t, ctx)
	log.Info(ctx, "ignored")
	log.Error(ctx, "ignored", errors.New("x"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.NoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.NoLevel, ParseLevel("loud"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
}
