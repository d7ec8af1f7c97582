package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/article"
	"github.com/unidesk-ai/unidesk/internal/domain/index"
)

func testConfig() Config {
	return Config{
		Dimension:    4,
		Model:        "test-model",
		ChunkSize:    500,
		ChunkOverlap: 50,
		BatchSize:    2,
	}
}

func TestRun_Success(t *testing.T) {
	loader := &mockLoader{loadFunc: func() ([]article.Article, error) { return testArticles(3), nil }}
	embedder := constantVectors(4)
	idx := &mockIndexStore{}
	chunks := &mockChunkStore{}

	svc, err := New(loader, embedder, idx, chunks, testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Articles != 3 || report.Chunks != 3 || report.Dimension != 4 {
		t.Errorf("unexpected report: %+v", report)
	}
	if chunks.inserted != 3 {
		t.Errorf("expected 3 chunks inserted, got %d", chunks.inserted)
	}
	// 3 chunks with batch size 2 means two embedding calls
	if embedder.calls != 2 {
		t.Errorf("expected 2 embedding batches, got %d", embedder.calls)
	}
	if idx.puts != 1 {
		t.Errorf("expected exactly one metadata commit, got %d", idx.puts)
	}
}

func TestRun_MetadataCommittedLast(t *testing.T) {
	var sequence []string

	loader := &mockLoader{loadFunc: func() ([]article.Article, error) { return testArticles(3), nil }}
	embedder := constantVectors(4)
	idx := &mockIndexStore{
		createFunc: func(context.Context, int) error {
			sequence = append(sequence, "create")
			return nil
		},
		putFunc: func(_ context.Context, meta index.Metadata) error {
			sequence = append(sequence, "commit")
			if meta.Dimension() != 4 || meta.ChunkCount() != 3 {
				t.Errorf("unexpected metadata: %+v", meta)
			}
			return nil
		},
	}
	chunks := &mockChunkStore{
		insertFunc: func(context.Context, []article.Chunk, [][]float32, int) error {
			sequence = append(sequence, "insert")
			return nil
		},
	}

	svc, err := New(loader, embedder, idx, chunks, testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(sequence) == 0 || sequence[0] != "create" {
		t.Fatalf("expected index creation first, got %v", sequence)
	}
	if sequence[len(sequence)-1] != "commit" {
		t.Fatalf("expected metadata commit last, got %v", sequence)
	}
	for _, step := range sequence[1 : len(sequence)-1] {
		if step != "insert" {
			t.Fatalf("unexpected step between create and commit: %v", sequence)
		}
	}
}

func TestRun_NoArticles(t *testing.T) {
	loader := &mockLoader{loadFunc: func() ([]article.Article, error) { return nil, nil }}
	idx := &mockIndexStore{}

	svc, err := New(loader, constantVectors(4), idx, &mockChunkStore{}, testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := svc.Run(context.Background()); !errors.Is(err, domain.ErrNoSourceDocuments) {
		t.Fatalf("expected ErrNoSourceDocuments, got %v", err)
	}
	if idx.puts != 0 {
		t.Error("metadata must not be written for an empty source set")
	}
}

func TestRun_EmbedFailureSkipsCommit(t *testing.T) {
	loader := &mockLoader{loadFunc: func() ([]article.Article, error) { return testArticles(2), nil }}
	embedder := &mockBatchEmbedder{
		batchFunc: func(context.Context, []string) (domain.BatchEmbeddingResult, error) {
			return domain.BatchEmbeddingResult{}, domain.ErrEmbeddingProviderError
		},
	}
	idx := &mockIndexStore{}

	svc, err := New(loader, embedder, idx, &mockChunkStore{}, testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := svc.Run(context.Background()); !errors.Is(err, domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected embedding error, got %v", err)
	}
	if idx.puts != 0 {
		t.Error("metadata must not be written after an embedding failure")
	}
}

func TestRun_CancellationSkipsCommit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	loader := &mockLoader{loadFunc: func() ([]article.Article, error) { return testArticles(4), nil }}
	embedder := constantVectors(4)
	idx := &mockIndexStore{}
	chunks := &mockChunkStore{
		insertFunc: func(context.Context, []article.Chunk, [][]float32, int) error {
			cancel() // cancel after the first batch lands
			return nil
		},
	}

	svc, err := New(loader, embedder, idx, chunks, testConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := svc.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if idx.puts != 0 {
		t.Error("metadata must not be written after cancellation")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	loader := &mockLoader{loadFunc: func() ([]article.Article, error) { return nil, nil }}

	cfg := testConfig()
	cfg.ChunkOverlap = cfg.ChunkSize
	if _, err := New(loader, constantVectors(4), &mockIndexStore{}, &mockChunkStore{}, cfg); err == nil {
		t.Error("expected error for overlap >= size")
	}

	cfg = testConfig()
	cfg.BatchSize = 0
	if _, err := New(loader, constantVectors(4), &mockIndexStore{}, &mockChunkStore{}, cfg); err == nil {
		t.Error("expected error for zero batch size")
	}
}
