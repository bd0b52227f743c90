package logging

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	Info().Str("poi", "poi-1").Msg("POI created")

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"poi":"poi-1"`)
	assert.Contains(t, out, `"message":"POI created"`)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "warn", Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	Info().Msg("dropped")
	Warn().Msg("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestCtxAddsRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Output: &buf})
	t.Cleanup(func() { Init(Config{}) })

	id := NewRequestID()
	ctx := ContextWithRequestID(context.Background(), id)
	require.Equal(t, id, RequestIDFromContext(ctx))

	Ctx(ctx).Info().Msg("handled")
	assert.Contains(t, buf.String(), `"request_id":"`+id+`"`)

	assert.Empty(t, RequestIDFromContext(context.Background()))
}
