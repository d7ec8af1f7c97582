package gate

import (
	"context"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/question"
)

// Forwarder is the downstream pipeline for questions classified in-domain.
// It receives the verbatim question text, never the normalized form.
type Forwarder interface {
	Forward(ctx context.Context, q question.Question, history []domain.Turn) (domain.Answer, error)
}

// ForwardFunc adapts a function to the Forwarder interface.
type ForwardFunc func(ctx context.Context, q question.Question, history []domain.Turn) (domain.Answer, error)

// Forward implements Forwarder.
func (f ForwardFunc) Forward(ctx context.Context, q question.Question, history []domain.Turn) (domain.Answer, error) {
	return f(ctx, q, history)
}
