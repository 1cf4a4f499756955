package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/blagoySimandov/synthdata/internal/models"
	"github.com/goccy/go-json"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIChatClient talks to any OpenAI compatible chat completions endpoint.
type OpenAIChatClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	model      string
	tracker    IUsageTracker
}

type OpenAIChatClientOption = func(*OpenAIChatClient) error

func NewOpenAIChatClient(apiKey string, opts ...OpenAIChatClientOption) (*OpenAIChatClient, error) {
	c := &OpenAIChatClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		baseURL: defaultOpenAIBaseURL,
		model:   "gpt-4o-mini",
	}
	if err := applyFuncOptions(c, opts...); err != nil {
		return nil, fmt.Errorf("failed to apply options: %w", err)
	}
	return c, nil
}

func WithOpenAIModel(model string) OpenAIChatClientOption {
	return func(c *OpenAIChatClient) error {
		if model != "" {
			c.model = model
		}
		return nil
	}
}

func WithOpenAIBaseURL(baseURL string) OpenAIChatClientOption {
	return func(c *OpenAIChatClient) error {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
		return nil
	}
}

func WithHTTPClient(httpClient *http.Client) OpenAIChatClientOption {
	return func(c *OpenAIChatClient) error {
		c.httpClient = httpClient
		return nil
	}
}

func WithOpenAIUsageTracker(tracker IUsageTracker) OpenAIChatClientOption {
	return func(c *OpenAIChatClient) error {
		c.tracker = tracker
		return nil
	}
}

func (c *OpenAIChatClient) Model() string {
	return c.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	N           int           `json:"n"`
	Temperature float32       `json:"temperature"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

func (c *OpenAIChatClient) GenerateContent(ctx context.Context, req *models.CompletionRequest) (*models.CompletionResponse, error) {
	reqBody := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		MaxTokens:   req.MaxOutputTokens,
		N:           req.Candidates,
		Temperature: req.Temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Provider: ProviderOpenAI, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var chatResp chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if c.tracker != nil {
		c.tracker.AddTokenUsage(ctx, chatResp.Usage.PromptTokens, chatResp.Usage.CompletionTokens)
	}

	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion response")
	}

	text := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	if text == "" {
		return nil, ErrEmptyCompletion
	}

	return &models.CompletionResponse{
		Text:             text,
		PromptTokens:     chatResp.Usage.PromptTokens,
		CompletionTokens: chatResp.Usage.CompletionTokens,
	}, nil
}
