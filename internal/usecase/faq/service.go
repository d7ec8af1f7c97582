// Package faq answers greetings and very common questions from a compiled-in
// table, skipping the embedding and retrieval round-trips entirely.
package faq

import (
	"sort"
	"strings"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/metrics"
	"github.com/unidesk-ai/unidesk/internal/textnorm"
)

// matchThreshold is the minimum fraction of an entry's keywords that must
// appear in the question for a fast-path hit.
const matchThreshold = 0.4

// Service is the FAQ fast path.
type Service struct {
	entries []entry
}

// New creates the FAQ service over the compiled-in table.
func New() *Service {
	return &Service{entries: entries}
}

// Lookup returns a canned answer for greetings and close FAQ matches.
// The boolean reports whether the fast path answered.
func (s *Service) Lookup(text string) (domain.Answer, bool) {
	normalized := textnorm.Normalize(text)
	if normalized == "" {
		return domain.Answer{}, false
	}

	for _, re := range greetingPatterns {
		if re.MatchString(normalized) {
			metrics.FAQHitsTotal.WithLabelValues("hit").Inc()
			return domain.Answer{Text: greetingAnswer}, true
		}
	}

	best := -1
	bestScore := 0.0
	for i, e := range s.entries {
		if score := keywordScore(normalized, e.keywords); score >= matchThreshold && score > bestScore {
			best = i
			bestScore = score
		}
	}

	if best < 0 {
		metrics.FAQHitsTotal.WithLabelValues("miss").Inc()
		return domain.Answer{}, false
	}

	metrics.FAQHitsTotal.WithLabelValues("hit").Inc()
	return domain.Answer{Text: s.entries[best].answer}, true
}

// Suggestions returns up to n FAQ questions related to the text, best first.
// Unrelated entries are never suggested.
func (s *Service) Suggestions(text string, n int) []string {
	normalized := textnorm.Normalize(text)
	if normalized == "" || n <= 0 {
		return nil
	}

	type scored struct {
		question string
		score    float64
	}

	var related []scored
	for _, e := range s.entries {
		if score := keywordScore(normalized, e.keywords); score > 0 {
			related = append(related, scored{question: e.question, score: score})
		}
	}

	sort.SliceStable(related, func(i, j int) bool { return related[i].score > related[j].score })

	if len(related) > n {
		related = related[:n]
	}

	suggestions := make([]string, 0, len(related))
	for _, r := range related {
		suggestions = append(suggestions, r.question)
	}
	return suggestions
}

// keywordScore is the fraction of keywords found in the normalized text.
func keywordScore(normalized string, keywords []string) float64 {
	if len(keywords) == 0 {
		return 0
	}

	matched := 0
	for _, kw := range keywords {
		if strings.Contains(normalized, kw) {
			matched++
		}
	}
	return float64(matched) / float64(len(keywords))
}
