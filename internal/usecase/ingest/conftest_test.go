package ingest

import (
	"context"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/article"
	"github.com/unidesk-ai/unidesk/internal/domain/index"
)

// mockLoader is a function-field mock for Loader.
type mockLoader struct {
	loadFunc func() ([]article.Article, error)
}

func (m *mockLoader) Load() ([]article.Article, error) { return m.loadFunc() }

// mockBatchEmbedder is a function-field mock for domain.BatchEmbedder.
type mockBatchEmbedder struct {
	batchFunc func(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
	calls     int
}

func (m *mockBatchEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.calls++
	return m.batchFunc(ctx, texts)
}

// mockIndexStore records the order of index operations.
type mockIndexStore struct {
	createFunc func(ctx context.Context, dimension int) error
	putFunc    func(ctx context.Context, meta index.Metadata) error
	puts       int
}

func (m *mockIndexStore) CreateSearchIndex(ctx context.Context, dimension int) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, dimension)
	}
	return nil
}

func (m *mockIndexStore) Put(ctx context.Context, meta index.Metadata) error {
	m.puts++
	if m.putFunc != nil {
		return m.putFunc(ctx, meta)
	}
	return nil
}

// mockChunkStore counts inserted chunks.
type mockChunkStore struct {
	insertFunc func(ctx context.Context, chunks []article.Chunk, vectors [][]float32, dimension int) error
	inserted   int
}

func (m *mockChunkStore) Insert(ctx context.Context, chunks []article.Chunk, vectors [][]float32, dimension int) error {
	m.inserted += len(chunks)
	if m.insertFunc != nil {
		return m.insertFunc(ctx, chunks, vectors, dimension)
	}
	return nil
}

// constantVectors returns a batch embedder producing fixed-width vectors.
func constantVectors(dimension int) *mockBatchEmbedder {
	return &mockBatchEmbedder{
		batchFunc: func(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
			vectors := make([][]float32, len(texts))
			for i := range vectors {
				vectors[i] = make([]float32, dimension)
			}
			return domain.BatchEmbeddingResult{Embeddings: vectors, TotalTokens: len(texts) * 10}, nil
		},
	}
}

// testArticles builds n valid articles.
func testArticles(n int) []article.Article {
	articles := make([]article.Article, 0, n)
	for i := 0; i < n; i++ {
		a, err := article.New("Bài viết", "Nội dung bài viết về tuyển sinh và học phí của trường.", "https://example.edu/vn/tin-tuc/1")
		if err != nil {
			panic(err)
		}
		articles = append(articles, a)
	}
	return articles
}
