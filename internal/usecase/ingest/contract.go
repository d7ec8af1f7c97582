package ingest

import (
	"context"

	"github.com/unidesk-ai/unidesk/internal/domain/article"
	"github.com/unidesk-ai/unidesk/internal/domain/index"
)

// Loader reads the source articles from disk.
type Loader interface {
	Load() ([]article.Article, error)
}

// IndexStore is the consumer interface for index creation (ISP).
type IndexStore interface {
	CreateSearchIndex(ctx context.Context, dimension int) error
	Put(ctx context.Context, meta index.Metadata) error
}

// ChunkStore persists chunk batches with their vectors.
type ChunkStore interface {
	Insert(ctx context.Context, chunks []article.Chunk, vectors [][]float32, dimension int) error
}
