package services

import (
	"context"
	"time"

	"github.com/blagoySimandov/synthdata/internal/logger"
	"github.com/blagoySimandov/synthdata/internal/logging"
	"github.com/blagoySimandov/synthdata/internal/models"
	"github.com/cenkalti/backoff/v4"
)

// RetryingAIClient bounds every call with a deadline and retries transient
// failures with exponential backoff.
type RetryingAIClient struct {
	next            IAIClient
	maxRetries      int
	initialInterval time.Duration
	timeout         time.Duration
}

type RetryOption func(*RetryingAIClient) error

func NewRetryingAIClient(next IAIClient, opts ...RetryOption) (*RetryingAIClient, error) {
	r := &RetryingAIClient{
		next:            next,
		maxRetries:      2,
		initialInterval: 500 * time.Millisecond,
		timeout:         60 * time.Second,
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func WithMaxRetries(n int) RetryOption {
	return func(r *RetryingAIClient) error {
		r.maxRetries = max(n, 0)
		return nil
	}
}

func WithInitialInterval(d time.Duration) RetryOption {
	return func(r *RetryingAIClient) error {
		r.initialInterval = d
		return nil
	}
}

// WithTimeout sets the deadline for the whole call, retries included. Zero
// disables it.
func WithTimeout(d time.Duration) RetryOption {
	return func(r *RetryingAIClient) error {
		r.timeout = d
		return nil
	}
}

func (r *RetryingAIClient) GenerateContent(ctx context.Context, req *models.CompletionRequest) (*models.CompletionResponse, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.initialInterval
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(r.maxRetries)), ctx)

	var (
		resp     *models.CompletionResponse
		attempts int
	)
	start := time.Now()
	operation := func() error {
		attempts++
		out, err := r.next.GenerateContent(ctx, req)
		if err != nil {
			if !IsRetryable(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		resp = out
		return nil
	}
	notify := func(err error, wait time.Duration) {
		logger.Log.Warn("completion attempt failed, retrying",
			"attempt", attempts,
			"wait_ms", wait.Milliseconds(),
			"error", err,
		)
	}

	err := backoff.RetryNotify(operation, policy, notify)
	logging.EnrichCompletion(ctx, attempts, time.Since(start))
	if err != nil {
		return nil, err
	}
	return resp, nil
}
