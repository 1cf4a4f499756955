package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-test:generateContent"), r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiAIClient_GenerateContent(t *testing.T) {
	srv := newGeminiTestServer(t, http.StatusOK, `{
		"candidates": [{"content": {"role": "model", "parts": [{"text": "id,name\n1,a\n"}]}}],
		"usageMetadata": {"promptTokenCount": 30, "candidatesTokenCount": 12}
	}`)

	tracker := NewUsageTracker(ProviderGemini)
	client, err := NewGeminiAIClient(context.Background(), "test-key",
		WithBaseURL(srv.URL),
		WithModel("gemini-test"),
		WithUsageTracker(tracker),
	)
	require.NoError(t, err)
	assert.Equal(t, "gemini-test", client.Model())

	resp, err := client.GenerateContent(context.Background(), testCompletionRequest())
	require.NoError(t, err)

	assert.Equal(t, "id,name\n1,a", resp.Text)
	assert.Equal(t, 30, resp.PromptTokens)
	assert.Equal(t, 12, resp.CompletionTokens)
	assert.Equal(t, 30, tracker.PromptTokens())
}

func TestGeminiAIClient_APIError(t *testing.T) {
	srv := newGeminiTestServer(t, http.StatusTooManyRequests,
		`{"error": {"code": 429, "message": "quota exceeded", "status": "RESOURCE_EXHAUSTED"}}`)

	client, err := NewGeminiAIClient(context.Background(), "test-key",
		WithBaseURL(srv.URL),
		WithModel("gemini-test"),
	)
	require.NoError(t, err)

	_, err = client.GenerateContent(context.Background(), testCompletionRequest())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.True(t, IsRetryable(err))
}
