package chat

import (
	"context"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/index"
	"github.com/unidesk-ai/unidesk/internal/domain/question"
	"github.com/unidesk-ai/unidesk/internal/usecase/gate"
)

// mockGuard is a function-field mock for Guard.
type mockGuard struct {
	checkFunc func(ctx context.Context) (index.Metadata, error)
	calls     int
}

func (m *mockGuard) Check(ctx context.Context) (index.Metadata, error) {
	m.calls++
	if m.checkFunc != nil {
		return m.checkFunc(ctx)
	}
	return index.Reconstruct(4, "test-model", 10, 0), nil
}

// mockFAQ is a function-field mock for FAQ.
type mockFAQ struct {
	lookupFunc      func(text string) (domain.Answer, bool)
	suggestionsFunc func(text string, n int) []string
}

func (m *mockFAQ) Lookup(text string) (domain.Answer, bool) {
	if m.lookupFunc != nil {
		return m.lookupFunc(text)
	}
	return domain.Answer{}, false
}

func (m *mockFAQ) Suggestions(text string, n int) []string {
	if m.suggestionsFunc != nil {
		return m.suggestionsFunc(text, n)
	}
	return nil
}

// passthroughGate forwards every question straight to the pipeline.
type passthroughGate struct{}

func (passthroughGate) Route(ctx context.Context, q question.Question, history []domain.Turn, fwd gate.Forwarder) (domain.Answer, error) {
	return fwd.Forward(ctx, q, history)
}

// refusingGate refuses every question without forwarding.
type refusingGate struct {
	refusal domain.Answer
}

func (g refusingGate) Route(context.Context, question.Question, []domain.Turn, gate.Forwarder) (domain.Answer, error) {
	return g.refusal, nil
}

// mockEmbedder is a function-field mock for domain.Embedder.
type mockEmbedder struct {
	embedFunc func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls     int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.embedFunc != nil {
		return m.embedFunc(ctx, text)
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2, 0.3, 0.4}}, nil
}

// mockRetriever is a function-field mock for Retriever.
type mockRetriever struct {
	retrieveFunc func(ctx context.Context, vector []float32, k int) ([]domain.Passage, error)
	calls        int
}

func (m *mockRetriever) Retrieve(ctx context.Context, vector []float32, k int) ([]domain.Passage, error) {
	m.calls++
	if m.retrieveFunc != nil {
		return m.retrieveFunc(ctx, vector, k)
	}
	return nil, nil
}

// mockGenerator is a function-field mock for domain.Generator.
type mockGenerator struct {
	generateFunc func(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error)
	calls        int
	lastReq      domain.GenerationRequest
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	m.calls++
	m.lastReq = req
	if m.generateFunc != nil {
		return m.generateFunc(ctx, req)
	}
	return domain.GenerationResult{Answer: "câu trả lời"}, nil
}
