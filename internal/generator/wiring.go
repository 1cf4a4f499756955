package generator

import (
	"context"
	"fmt"
	"net/http"

	"github.com/blagoySimandov/synthdata/internal/config"
	"github.com/blagoySimandov/synthdata/internal/services"
)

// NewCompletionClient builds the provider client selected by cfg, wrapped
// with the configured timeout and retry policy.
func NewCompletionClient(ctx context.Context, cfg *config.Config) (services.IAIClient, error) {
	if err := cfg.RequireCredentials(); err != nil {
		return nil, err
	}

	tracker := services.NewUsageTracker(cfg.LLMProvider)

	var (
		client services.IAIClient
		err    error
	)
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		client, err = services.NewGeminiAIClient(ctx, cfg.GeminiAPIKey,
			services.WithModel(cfg.Model),
			services.WithUsageTracker(tracker),
		)
	case config.ProviderOpenAI:
		client, err = services.NewOpenAIChatClient(cfg.OpenAIAPIKey,
			services.WithOpenAIModel(cfg.Model),
			services.WithOpenAIBaseURL(cfg.OpenAIBaseURL),
			services.WithHTTPClient(&http.Client{Timeout: cfg.CompletionTimeout}),
			services.WithOpenAIUsageTracker(tracker),
		)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.LLMProvider, err)
	}

	return services.NewRetryingAIClient(client,
		services.WithMaxRetries(cfg.CompletionMaxRetries),
		services.WithInitialInterval(cfg.CompletionRetryInterval),
		services.WithTimeout(cfg.CompletionTimeout),
	)
}

// NewFromConfig builds a Generator around client using the model settings
// and schema policy from cfg. client may be nil for callers that only
// Prepare.
func NewFromConfig(cfg *config.Config, client services.IAIClient) (*Generator, error) {
	policy, err := services.ParseSchemaPolicy(cfg.SchemaPolicy)
	if err != nil {
		return nil, err
	}

	return NewGenerator(GeneratorConfig{
		Client:          client,
		SchemaPolicy:    policy,
		Provider:        cfg.LLMProvider,
		Model:           cfg.Model,
		MaxOutputTokens: cfg.MaxOutputTokens,
		Temperature:     cfg.Temperature,
	}), nil
}
