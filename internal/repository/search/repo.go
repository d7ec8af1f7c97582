// Package search retrieves the most similar chunks via FT.SEARCH KNN.
package search

import (
	"context"
	"fmt"

	"github.com/unidesk-ai/unidesk/internal/db"
	"github.com/unidesk-ai/unidesk/internal/domain"
	idxrepo "github.com/unidesk-ai/unidesk/internal/repository/index"
)

// store is the consumer interface for search operations (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo implements the retrieval repository.
type Repo struct {
	store store
}

// New creates a search repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Retrieve returns the k chunks most similar to the query vector, ordered by
// descending similarity.
func (r *Repo) Retrieve(ctx context.Context, vector []float32, k int) ([]domain.Passage, error) {
	q := &db.KNNQuery{
		IndexName:    idxrepo.SearchIndexName(),
		Vector:       vector,
		K:            k,
		ReturnFields: []string{"text", "title", "url", "category", "__vector_score"},
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	return parseResults(sr), nil
}

func parseResults(sr *db.SearchResult) []domain.Passage {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	passages := make([]domain.Passage, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		passages = append(passages, domain.Passage{
			Text:     entry.Fields["text"],
			Title:    entry.Fields["title"],
			URL:      entry.Fields["url"],
			Category: entry.Fields["category"],
			Score:    entry.Score,
		})
	}
	return passages
}
