package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blagoySimandov/synthdata/internal/models"
	"google.golang.org/genai"
)

type IAIClient interface {
	GenerateContent(ctx context.Context, req *models.CompletionRequest) (*models.CompletionResponse, error)
}

type GeminiAIClient struct {
	client  *genai.Client
	tracker IUsageTracker
	model   string
	apiKey  string
	baseURL string
}
type GeminiAIClientFuncOptions = func(client *GeminiAIClient) error

func NewGeminiAIClient(ctx context.Context, apiKey string, opts ...GeminiAIClientFuncOptions) (*GeminiAIClient, error) {
	geminiai := GeminiAIClient{
		apiKey: apiKey,
		model:  "gemini-2.5-flash",
	}
	err := applyFuncOptions(&geminiai, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to apply options: %w", err)
	}

	cc := &genai.ClientConfig{
		APIKey:  geminiai.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if geminiai.baseURL != "" {
		cc.HTTPOptions.BaseURL = geminiai.baseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create AI client: %w", err)
	}
	geminiai.client = client
	return &geminiai, nil
}

func WithModel(model string) GeminiAIClientFuncOptions {
	return func(client *GeminiAIClient) error {
		if model != "" {
			client.model = model
		}
		return nil
	}
}

func WithBaseURL(baseURL string) GeminiAIClientFuncOptions {
	return func(client *GeminiAIClient) error {
		client.baseURL = baseURL
		return nil
	}
}

func WithUsageTracker(tracker IUsageTracker) GeminiAIClientFuncOptions {
	return func(client *GeminiAIClient) error {
		client.tracker = tracker
		return nil
	}
}

func (g *GeminiAIClient) Model() string {
	return g.model
}

func (g *GeminiAIClient) GenerateContent(ctx context.Context, req *models.CompletionRequest) (*models.CompletionResponse, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.SystemPrompt, genai.RoleUser),
		MaxOutputTokens:   int32(req.MaxOutputTokens),
		CandidateCount:    int32(req.Candidates),
		Temperature:       genai.Ptr(req.Temperature),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.UserPrompt), config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &StatusError{Provider: ProviderGemini, StatusCode: apiErr.Code, Body: apiErr.Message}
		}
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	resp := &models.CompletionResponse{Text: strings.TrimSpace(result.Text())}
	if um := result.UsageMetadata; um != nil {
		resp.PromptTokens = int(um.PromptTokenCount)
		resp.CompletionTokens = int(um.CandidatesTokenCount)
	}
	if g.tracker != nil {
		g.tracker.AddTokenUsage(ctx, resp.PromptTokens, resp.CompletionTokens)
	}

	if resp.Text == "" {
		return nil, ErrEmptyCompletion
	}
	return resp, nil
}
