package domain

// Passage is a retrieved chunk with its source fields and similarity score.
type Passage struct {
	Text     string
	Title    string
	URL      string
	Category string
	Score    float64
}

// Source is a deduplicated citation attached to an answer.
type Source struct {
	Title    string
	URL      string
	Category string
}

// Answer is the terminal result of routing a question: either a generated
// answer with citations or a templated refusal with redirect suggestions.
type Answer struct {
	Text        string
	Sources     []Source
	Suggestions []string
	Refused     bool
}

// DedupeSources collapses passages into unique sources, preserving retrieval order.
func DedupeSources(passages []Passage) []Source {
	seen := make(map[string]bool, len(passages))
	sources := make([]Source, 0, len(passages))
	for _, p := range passages {
		if p.URL == "" || seen[p.URL] {
			continue
		}
		seen[p.URL] = true
		sources = append(sources, Source{Title: p.Title, URL: p.URL, Category: p.Category})
	}
	return sources
}
