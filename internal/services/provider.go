package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var ErrEmptyCompletion = errors.New("completion contained no text")

// StatusError is a non-success HTTP answer from a completion provider.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error: status %d, body: %s", e.Provider, e.StatusCode, e.Body)
}

// IsRetryable reports whether a completion failure is transient: network
// errors, rate limiting, and server side errors.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= http.StatusInternalServerError
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
