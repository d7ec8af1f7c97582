package domain

import "context"

// Generator produces an answer from a question, retrieved context and recent history.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
}

// Turn is a single conversation message supplied by the client. Nothing is persisted.
type Turn struct {
	Role    string // "user" or "assistant"
	Content string
}

// GenerationRequest carries everything the completion prompt is built from.
type GenerationRequest struct {
	Question string
	Context  string
	History  []Turn
}

// GenerationResult carries the answer text and token usage.
type GenerationResult struct {
	Answer           string
	PromptTokens     int
	CompletionTokens int
}
