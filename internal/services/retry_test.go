package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/blagoySimandov/synthdata/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedClient struct {
	errs  []error
	calls int
}

func (s *scriptedClient) GenerateContent(ctx context.Context, req *models.CompletionRequest) (*models.CompletionResponse, error) {
	s.calls++
	if s.calls <= len(s.errs) {
		return nil, s.errs[s.calls-1]
	}
	return &models.CompletionResponse{Text: "id\n1"}, nil
}

type blockingClient struct{}

func (blockingClient) GenerateContent(ctx context.Context, req *models.CompletionRequest) (*models.CompletionResponse, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func newTestRetrying(t *testing.T, next IAIClient, opts ...RetryOption) *RetryingAIClient {
	t.Helper()
	opts = append([]RetryOption{WithInitialInterval(time.Millisecond)}, opts...)
	r, err := NewRetryingAIClient(next, opts...)
	require.NoError(t, err)
	return r
}

func TestRetryingAIClient(t *testing.T) {
	unavailable := &StatusError{Provider: ProviderOpenAI, StatusCode: http.StatusServiceUnavailable}
	unauthorized := &StatusError{Provider: ProviderOpenAI, StatusCode: http.StatusUnauthorized}

	tests := []struct {
		name      string
		errs      []error
		retries   int
		wantCalls int
		wantErr   error
	}{
		{name: "first attempt succeeds", retries: 2, wantCalls: 1},
		{name: "transient failures then success", errs: []error{unavailable, unavailable}, retries: 2, wantCalls: 3},
		{name: "retries exhausted", errs: []error{unavailable, unavailable, unavailable}, retries: 2, wantCalls: 3, wantErr: unavailable},
		{name: "auth failure not retried", errs: []error{unauthorized}, retries: 2, wantCalls: 1, wantErr: unauthorized},
		{name: "empty completion not retried", errs: []error{ErrEmptyCompletion}, retries: 2, wantCalls: 1, wantErr: ErrEmptyCompletion},
		{name: "no retries", errs: []error{unavailable}, retries: 0, wantCalls: 1, wantErr: unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &scriptedClient{errs: tt.errs}
			r := newTestRetrying(t, next, WithMaxRetries(tt.retries))

			resp, err := r.GenerateContent(context.Background(), testCompletionRequest())

			assert.Equal(t, tt.wantCalls, next.calls)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "id\n1", resp.Text)
		})
	}
}

func TestRetryingAIClient_Timeout(t *testing.T) {
	r := newTestRetrying(t, blockingClient{}, WithTimeout(20*time.Millisecond))

	start := time.Now()
	_, err := r.GenerateContent(context.Background(), testCompletionRequest())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.False(t, IsRetryable(context.Canceled))
	assert.False(t, IsRetryable(errors.New("boom")))
	assert.True(t, IsRetryable(&StatusError{StatusCode: http.StatusInternalServerError}))
	assert.False(t, IsRetryable(&StatusError{StatusCode: http.StatusBadRequest}))
}
