package generator

import (
	"context"
	"testing"
	"time"

	"github.com/blagoySimandov/synthdata/internal/config"
	"github.com/blagoySimandov/synthdata/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		LLMProvider:             config.ProviderOpenAI,
		OpenAIAPIKey:            "sk-test",
		OpenAIBaseURL:           "http://localhost:1/v1",
		Model:                   "gpt-4o-mini",
		MaxOutputTokens:         100,
		Temperature:             0.2,
		CompletionTimeout:       time.Second,
		CompletionMaxRetries:    1,
		CompletionRetryInterval: time.Millisecond,
		SchemaPolicy:            "strict",
	}
}

func TestNewCompletionClient(t *testing.T) {
	client, err := NewCompletionClient(context.Background(), testConfig())
	require.NoError(t, err)
	assert.IsType(t, &services.RetryingAIClient{}, client)
}

func TestNewCompletionClient_MissingKey(t *testing.T) {
	cfg := testConfig()
	cfg.OpenAIAPIKey = ""

	_, err := NewCompletionClient(context.Background(), cfg)
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestNewFromConfig(t *testing.T) {
	g, err := NewFromConfig(testConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, services.SchemaPolicyStrict, g.policy)
	assert.Equal(t, 100, g.maxOutputTokens)
	assert.InDelta(t, 0.2, g.temperature, 0.0001)

	cfg := testConfig()
	cfg.SchemaPolicy = "bogus"
	_, err = NewFromConfig(cfg, nil)
	assert.Error(t, err)
}
