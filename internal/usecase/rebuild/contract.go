package rebuild

import (
	"context"

	"github.com/unidesk-ai/unidesk/internal/usecase/ingest"
)

// IndexStore is the consumer interface for index teardown (ISP).
type IndexStore interface {
	Delete(ctx context.Context) error
	DropSearchIndex(ctx context.Context) error
}

// ChunkStore is the consumer interface for chunk teardown (ISP).
type ChunkStore interface {
	PurgeAll(ctx context.Context) error
}

// Ingestor rebuilds the index contents from the source documents.
type Ingestor interface {
	Run(ctx context.Context) (ingest.Report, error)
}
