package chat

import (
	"context"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/index"
	"github.com/unidesk-ai/unidesk/internal/domain/question"
	"github.com/unidesk-ai/unidesk/internal/usecase/gate"
)

// Guard validates index consistency before retrieval.
type Guard interface {
	Check(ctx context.Context) (index.Metadata, error)
}

// FAQ answers greetings and common questions without retrieval.
type FAQ interface {
	Lookup(text string) (domain.Answer, bool)
	Suggestions(text string, n int) []string
}

// Gate classifies questions and routes them through the forwarder.
type Gate interface {
	Route(ctx context.Context, q question.Question, history []domain.Turn, fwd gate.Forwarder) (domain.Answer, error)
}

// Retriever returns the passages most similar to a query vector.
type Retriever interface {
	Retrieve(ctx context.Context, vector []float32, k int) ([]domain.Passage, error)
}
