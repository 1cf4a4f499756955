package models

// CompletionRequest is a provider-independent two-message generation request.
type CompletionRequest struct {
	SystemPrompt    string
	UserPrompt      string
	MaxOutputTokens int
	Candidates      int
	Temperature     float32
}

type CompletionResponse struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
}

// GenerationInput is one upload to synthesize rows for.
type GenerationInput struct {
	Filename    string
	Data        []byte
	NumRows     int
	Instruction string
}
