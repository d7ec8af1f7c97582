package health

import (
	"context"

	"github.com/unidesk-ai/unidesk/internal/domain/index"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// IndexChecker validates that the index exists and matches the configuration.
type IndexChecker interface {
	Check(ctx context.Context) (index.Metadata, error)
}
