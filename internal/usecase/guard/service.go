// Package guard validates index consistency before any read or write.
//
// The guard fails closed: a missing index, a running rebuild or a dimension
// mismatch all surface as errors instead of silently searching vectors of the
// wrong width.
package guard

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/index"
)

// Service is the index consistency guard.
type Service struct {
	meta      MetadataRepo
	rebuild   RebuildState
	dimension int
	model     string
	logger    *zap.Logger
}

// New creates a guard for the configured embedding function. rebuild may be
// nil when no rebuild coordinator exists (read-only deployments).
func New(meta MetadataRepo, rebuild RebuildState, dimension int, model string, logger *zap.Logger) *Service {
	return &Service{
		meta:      meta,
		rebuild:   rebuild,
		dimension: dimension,
		model:     model,
		logger:    logger,
	}
}

// Check verifies that the index exists and was built with the configured
// embedding width. It runs before every retrieval.
func (s *Service) Check(ctx context.Context) (index.Metadata, error) {
	if s.rebuild != nil && s.rebuild.InProgress() {
		return index.Metadata{}, domain.ErrRebuildInProgress
	}

	meta, err := s.meta.Get(ctx)
	if err != nil {
		return index.Metadata{}, fmt.Errorf("load index metadata: %w", err)
	}

	if meta.Dimension() != s.dimension {
		return index.Metadata{}, domain.NewDimensionMismatch(meta.Dimension(), s.dimension)
	}

	// Same width, different model: results may degrade but nothing breaks,
	// so warn instead of refusing to serve.
	if s.model != "" && meta.Model() != s.model {
		s.logger.Warn("Configured embedding model differs from index build",
			zap.String("index_model", meta.Model()),
			zap.String("configured_model", s.model),
		)
	}

	return meta, nil
}
