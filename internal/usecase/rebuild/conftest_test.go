package rebuild

import (
	"context"
	"sync"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/article"
	"github.com/unidesk-ai/unidesk/internal/domain/index"
	"github.com/unidesk-ai/unidesk/internal/usecase/ingest"
)

// mockIndexStore is a function-field mock for IndexStore, counting calls.
type mockIndexStore struct {
	mu      sync.Mutex
	deletes int
	drops   int
}

func (m *mockIndexStore) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes++
	return nil
}

func (m *mockIndexStore) DropSearchIndex(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drops++
	return nil
}

func (m *mockIndexStore) deleteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deletes
}

// mockChunkStore is a function-field mock for ChunkStore.
type mockChunkStore struct {
	purgeFunc func(ctx context.Context) error
	mu        sync.Mutex
	purges    int
}

func (m *mockChunkStore) PurgeAll(ctx context.Context) error {
	m.mu.Lock()
	m.purges++
	m.mu.Unlock()
	if m.purgeFunc != nil {
		return m.purgeFunc(ctx)
	}
	return nil
}

func (m *mockChunkStore) purgeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.purges
}

// mockIngestor is a function-field mock for Ingestor.
type mockIngestor struct {
	runFunc func(ctx context.Context) (ingest.Report, error)
}

func (m *mockIngestor) Run(ctx context.Context) (ingest.Report, error) { return m.runFunc(ctx) }

// fullIndexStore satisfies both the teardown and the ingestion index
// contracts, recording every committed metadata.
type fullIndexStore struct {
	mu    sync.Mutex
	metas []index.Metadata
}

func (m *fullIndexStore) Delete(context.Context) error { return nil }

func (m *fullIndexStore) DropSearchIndex(context.Context) error { return nil }

func (m *fullIndexStore) CreateSearchIndex(context.Context, int) error { return nil }

func (m *fullIndexStore) Put(_ context.Context, meta index.Metadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metas = append(m.metas, meta)
	return nil
}

func (m *fullIndexStore) committed() []index.Metadata {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metas
}

// fullChunkStore satisfies both purge and insert, tracking live chunks.
type fullChunkStore struct {
	mu   sync.Mutex
	live int
}

func (m *fullChunkStore) PurgeAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live = 0
	return nil
}

func (m *fullChunkStore) Insert(_ context.Context, chunks []article.Chunk, _ [][]float32, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live += len(chunks)
	return nil
}

func (m *fullChunkStore) liveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.live
}

// fixedLoader serves the same articles on every load.
type fixedLoader struct {
	articles []article.Article
}

func (m *fixedLoader) Load() ([]article.Article, error) { return m.articles, nil }

// constantBatchEmbedder produces fixed-width zero vectors.
type constantBatchEmbedder struct {
	dimension int
}

func (m *constantBatchEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = make([]float32, m.dimension)
	}
	return domain.BatchEmbeddingResult{Embeddings: vectors, TotalTokens: len(texts) * 10}, nil
}
