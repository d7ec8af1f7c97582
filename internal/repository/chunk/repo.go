// Package chunk persists article chunks as Redis hashes with binary vectors.
package chunk

import (
	"context"
	"fmt"

	"github.com/unidesk-ai/unidesk/internal/db"
	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/article"
)

// store is the consumer interface for chunk storage (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	DelMulti(ctx context.Context, keys []string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the chunk repository.
type Repo struct {
	store store
}

// New creates a chunk repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Insert stores chunks with their embeddings in one pipelined round-trip.
// Every vector must have exactly dimension components.
func (r *Repo) Insert(ctx context.Context, chunks []article.Chunk, vectors [][]float32, dimension int) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}

	items := make([]db.HashSetItem, len(chunks))
	for i, c := range chunks {
		if len(vectors[i]) != dimension {
			return fmt.Errorf("chunk %s: vector has %d components, index expects %d", c.ID, len(vectors[i]), dimension)
		}
		items[i] = db.HashSetItem{
			Key:    chunkKey(c.ID),
			Fields: chunkToHash(c, vectors[i]),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset chunks: %w", err)
	}
	return nil
}

// PurgeAll deletes every chunk hash.
func (r *Repo) PurgeAll(ctx context.Context) error {
	keys, err := r.store.Scan(ctx, chunkKey("*"))
	if err != nil {
		return fmt.Errorf("scan chunks: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := r.store.DelMulti(ctx, keys); err != nil {
		return fmt.Errorf("del chunks: %w", err)
	}
	return nil
}

// Count returns the number of stored chunks.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, chunkKey("*"))
	if err != nil {
		return 0, fmt.Errorf("scan chunks: %w", err)
	}
	return len(keys), nil
}

func chunkKey(id string) string {
	return domain.KeyPrefix + "chunk:" + id
}
