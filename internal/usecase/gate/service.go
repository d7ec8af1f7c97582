// Package gate classifies incoming questions against the domain-scope policy
// and routes them: in-domain questions continue to the retrieval pipeline,
// everything else gets the templated refusal. The gate fails closed, so a
// question that cannot be positively classified in-domain is refused.
package gate

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/policy"
	"github.com/unidesk-ai/unidesk/internal/domain/question"
	"github.com/unidesk-ai/unidesk/internal/logger"
	"github.com/unidesk-ai/unidesk/internal/metrics"
	"github.com/unidesk-ai/unidesk/internal/textnorm"
)

// Service is the domain gate.
type Service struct {
	policy   policy.Policy
	keywords []string // normalized once at construction
}

// New creates a gate for the given policy.
func New(p policy.Policy) *Service {
	var keywords []string
	for _, topic := range p.Topics() {
		for _, kw := range topic.Keywords() {
			if n := textnorm.Normalize(kw); n != "" {
				keywords = append(keywords, n)
			}
		}
	}
	return &Service{policy: p, keywords: keywords}
}

// Classify matches the normalized question against the policy keywords.
// Blank input is Unknown; no keyword match is OutOfDomain.
func (s *Service) Classify(text string) question.Classification {
	normalized := textnorm.Normalize(text)
	if normalized == "" {
		return question.Unknown
	}

	for _, kw := range s.keywords {
		if strings.Contains(normalized, kw) {
			return question.InDomain
		}
	}
	return question.OutOfDomain
}

// Route classifies the question and either forwards it or refuses it.
// Refusals are successful results, not errors.
func (s *Service) Route(ctx context.Context, q question.Question, history []domain.Turn, fwd Forwarder) (domain.Answer, error) {
	q = q.WithClassification(s.Classify(q.Text()))
	metrics.GateDecisionsTotal.WithLabelValues(string(q.Classification())).Inc()

	if q.Classification() != question.InDomain {
		logger.FromContext(ctx).Info("Refused out-of-scope question",
			zap.String("classification", string(q.Classification())),
		)
		return s.refusal(), nil
	}

	return fwd.Forward(ctx, q, history)
}

// refusal builds the templated refusal answer with capped redirect suggestions.
func (s *Service) refusal() domain.Answer {
	suggestions := s.policy.RedirectSuggestions()
	if len(suggestions) > policy.MaxRedirects {
		suggestions = suggestions[:policy.MaxRedirects]
	}

	return domain.Answer{
		Text:        s.policy.Refusal(),
		Suggestions: suggestions,
		Refused:     true,
	}
}
