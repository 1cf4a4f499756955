package logging_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/blagoySimandov/synthdata/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attrMap(attrs []slog.Attr) map[string]slog.Value {
	out := make(map[string]slog.Value, len(attrs))
	for _, a := range attrs {
		out[a.Key] = a.Value
	}
	return out
}

func TestWideEvent_Enrich(t *testing.T) {
	event := logging.NewWideEvent("http_request")
	ctx := logging.WithContext(context.Background(), event)

	require.Same(t, event, logging.FromContext(ctx))
	assert.Equal(t, event.TraceID, logging.GetTraceID(ctx))
	assert.NotEmpty(t, event.TraceID)

	logging.EnrichHTTP(ctx, "POST", "/api/v1/generate", "curl/8.0")
	logging.EnrichUpload(ctx, "people.csv", 120)
	logging.EnrichTable(ctx, "csv", 2, 3)
	logging.EnrichTokens(ctx, 10, 5)
	logging.EnrichTokens(ctx, 1, 1)
	logging.EnrichCompletion(ctx, 2, 1500*time.Millisecond)

	attrs := attrMap(event.Attrs())
	assert.Equal(t, "POST", attrs["http_method"].String())
	assert.Equal(t, "people.csv", attrs["filename"].String())
	assert.Equal(t, int64(2), attrs["column_count"].Int64())
	assert.Equal(t, int64(11), attrs["prompt_tokens"].Int64())
	assert.Equal(t, int64(6), attrs["completion_tokens"].Int64())
	assert.Equal(t, int64(1500), attrs["completion_ms"].Int64())
	assert.NotContains(t, attrs, "error")
	assert.Equal(t, slog.LevelInfo, event.Level())
}

func TestWideEvent_Error(t *testing.T) {
	event := logging.NewWideEvent("http_request")
	ctx := logging.WithContext(context.Background(), event)

	logging.EnrichError(ctx, errors.New("no data rows"), "ParseFailure", "reparse")

	attrs := attrMap(event.Attrs())
	assert.Equal(t, "no data rows", attrs["error"].String())
	assert.Equal(t, "ParseFailure", attrs["error_kind"].String())
	assert.Equal(t, slog.LevelError, event.Level())
}

func TestEnrich_WithoutEvent(t *testing.T) {
	ctx := context.Background()

	assert.NotPanics(t, func() {
		logging.EnrichStage(ctx, "LOADED")
		logging.EnrichTokens(ctx, 1, 2)
		logging.Emit(ctx)
	})
	assert.Empty(t, logging.GetTraceID(ctx))
}
