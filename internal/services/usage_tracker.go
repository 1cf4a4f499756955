package services

import (
	"context"
	"sync"

	"github.com/blagoySimandov/synthdata/internal/logging"
	"github.com/blagoySimandov/synthdata/internal/metrics"
)

type IUsageTracker interface {
	AddTokenUsage(ctx context.Context, tknIn, tknOut int)
	PromptTokens() int
	CompletionTokens() int
}

// UsageTracker accumulates token usage reported by a provider and exports it
// as metrics and on the request's wide event.
type UsageTracker struct {
	mu               sync.RWMutex
	provider         string
	promptTokens     int
	completionTokens int
}

func NewUsageTracker(provider string) *UsageTracker {
	return &UsageTracker{provider: provider}
}

func (u *UsageTracker) AddTokenUsage(ctx context.Context, tknIn, tknOut int) {
	u.mu.Lock()
	u.promptTokens += tknIn
	u.completionTokens += tknOut
	u.mu.Unlock()

	metrics.TokensTotal.WithLabelValues(u.provider, "prompt").Add(float64(tknIn))
	metrics.TokensTotal.WithLabelValues(u.provider, "completion").Add(float64(tknOut))
	logging.EnrichTokens(ctx, tknIn, tknOut)
}

func (u *UsageTracker) PromptTokens() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.promptTokens
}

func (u *UsageTracker) CompletionTokens() int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.completionTokens
}
