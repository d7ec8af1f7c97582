package chi

import (
	"context"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/index"
	healthuc "github.com/unidesk-ai/unidesk/internal/usecase/health"
	"github.com/unidesk-ai/unidesk/internal/usecase/ingest"
)

// Chat answers one question per request.
type Chat interface {
	Answer(ctx context.Context, text string, history []domain.Turn) (domain.Answer, error)
}

// Rebuilder runs the atomic index rebuild.
type Rebuilder interface {
	Run(ctx context.Context) (ingest.Report, error)
}

// IndexInfo validates and returns the current index metadata.
type IndexInfo interface {
	Check(ctx context.Context) (index.Metadata, error)
}

// Health aggregates component health checks.
type Health interface {
	Check(ctx context.Context) healthuc.Report
}
