// Package chat orchestrates the question answering pipeline: FAQ fast path,
// domain gate, then retrieval-augmented generation for in-domain questions.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/question"
	"github.com/unidesk-ai/unidesk/internal/usecase/gate"
)

// suggestionCount caps the related-question suggestions on generated answers.
const suggestionCount = 2

// emptyContext is what the generator sees when retrieval finds nothing, so
// the prompt template still renders and the model admits it has no data.
const emptyContext = "Không có thông tin liên quan trong cơ sở dữ liệu."

// Service answers one question per call. Nothing is persisted between calls;
// conversation history travels with the request.
type Service struct {
	guard     Guard
	faq       FAQ
	gate      Gate
	embedder  domain.Embedder
	retriever Retriever
	generator domain.Generator
	k         int
}

// New creates the chat service. k is the retrieval depth.
func New(guard Guard, faq FAQ, g Gate, embedder domain.Embedder, retriever Retriever, generator domain.Generator, k int) *Service {
	return &Service{
		guard:     guard,
		faq:       faq,
		gate:      g,
		embedder:  embedder,
		retriever: retriever,
		generator: generator,
		k:         k,
	}
}

// Answer resolves a question end to end.
func (s *Service) Answer(ctx context.Context, text string, history []domain.Turn) (domain.Answer, error) {
	q := question.New(text)

	if ans, ok := s.faq.Lookup(q.Text()); ok {
		return ans, nil
	}

	return s.gate.Route(ctx, q, history, gate.ForwardFunc(s.generate))
}

// generate runs the retrieval pipeline for an in-domain question.
func (s *Service) generate(ctx context.Context, q question.Question, history []domain.Turn) (domain.Answer, error) {
	if _, err := s.guard.Check(ctx); err != nil {
		return domain.Answer{}, fmt.Errorf("index check: %w", err)
	}

	emb, err := s.embedder.Embed(ctx, q.Text())
	if err != nil {
		return domain.Answer{}, fmt.Errorf("embed question: %w", err)
	}

	passages, err := s.retriever.Retrieve(ctx, emb.Embedding, s.k)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieve passages: %w", err)
	}

	res, err := s.generator.Generate(ctx, domain.GenerationRequest{
		Question: q.Text(),
		Context:  buildContext(passages),
		History:  history,
	})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generate answer: %w", err)
	}

	return domain.Answer{
		Text:        res.Answer,
		Sources:     domain.DedupeSources(passages),
		Suggestions: s.faq.Suggestions(q.Text(), suggestionCount),
	}, nil
}

// buildContext renders retrieved passages as numbered blocks for the prompt.
func buildContext(passages []domain.Passage) string {
	if len(passages) == 0 {
		return emptyContext
	}

	blocks := make([]string, len(passages))
	for i, p := range passages {
		if p.Title != "" {
			blocks[i] = fmt.Sprintf("[%d] %s\n%s", i+1, p.Title, p.Text)
		} else {
			blocks[i] = fmt.Sprintf("[%d] %s", i+1, p.Text)
		}
	}
	return strings.Join(blocks, "\n\n")
}
