// Package ingest builds the index contents: load articles, split, embed and
// persist chunks, then commit by writing the index metadata last.
package ingest

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/article"
	"github.com/unidesk-ai/unidesk/internal/domain/index"
	"github.com/unidesk-ai/unidesk/internal/logger"
)

// Report summarizes a completed ingestion run.
type Report struct {
	Articles  int
	Chunks    int
	Dimension int
}

// Config holds the ingestion parameters.
type Config struct {
	Dimension    int
	Model        string
	ChunkSize    int
	ChunkOverlap int
	BatchSize    int
}

// Service runs the ingestion pipeline.
type Service struct {
	loader   Loader
	embedder domain.BatchEmbedder
	index    IndexStore
	chunks   ChunkStore
	splitter article.Splitter
	cfg      Config
}

// New creates the ingestion service.
func New(loader Loader, embedder domain.BatchEmbedder, idx IndexStore, chunks ChunkStore, cfg Config) (*Service, error) {
	splitter, err := article.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return nil, fmt.Errorf("build splitter: %w", err)
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}

	return &Service{
		loader:   loader,
		embedder: embedder,
		index:    idx,
		chunks:   chunks,
		splitter: splitter,
		cfg:      cfg,
	}, nil
}

// Run executes a full ingestion. The metadata write at the end is the commit
// point: until it happens the index reads as absent. Callers own teardown of
// partial state on failure.
func (s *Service) Run(ctx context.Context) (Report, error) {
	articles, err := s.loader.Load()
	if err != nil {
		return Report{}, fmt.Errorf("load articles: %w", err)
	}
	if len(articles) == 0 {
		return Report{}, domain.ErrNoSourceDocuments
	}

	var chunks []article.Chunk
	for _, a := range articles {
		chunks = append(chunks, article.ChunksFrom(a, s.splitter.Split(a.Document()))...)
	}
	if len(chunks) == 0 {
		return Report{}, domain.ErrNoSourceDocuments
	}

	if err := s.index.CreateSearchIndex(ctx, s.cfg.Dimension); err != nil {
		return Report{}, fmt.Errorf("create search index: %w", err)
	}

	log := logger.FromContext(ctx)
	for start := 0; start < len(chunks); start += s.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		end := min(start+s.cfg.BatchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Text
		}

		res, err := s.embedder.BatchEmbed(ctx, texts)
		if err != nil {
			return Report{}, fmt.Errorf("embed batch at %d: %w", start, err)
		}

		if err := s.chunks.Insert(ctx, batch, res.Embeddings, s.cfg.Dimension); err != nil {
			return Report{}, fmt.Errorf("insert batch at %d: %w", start, err)
		}

		log.Debug("Ingested chunk batch",
			zap.Int("offset", start),
			zap.Int("size", len(batch)),
			zap.Int("tokens", res.TotalTokens),
		)
	}

	meta, err := index.New(s.cfg.Dimension, s.cfg.Model, len(chunks))
	if err != nil {
		return Report{}, fmt.Errorf("build index metadata: %w", err)
	}

	// Commit point: after this write readers see the new index.
	if err := s.index.Put(ctx, meta); err != nil {
		return Report{}, fmt.Errorf("commit index metadata: %w", err)
	}

	log.Info("Ingestion complete",
		zap.Int("articles", len(articles)),
		zap.Int("chunks", len(chunks)),
		zap.Int("dimension", s.cfg.Dimension),
	)

	return Report{
		Articles:  len(articles),
		Chunks:    len(chunks),
		Dimension: s.cfg.Dimension,
	}, nil
}
