package guard

import (
	"context"

	"github.com/unidesk-ai/unidesk/internal/domain/index"
)

// MetadataRepo is the consumer interface for index metadata (ISP).
type MetadataRepo interface {
	Get(ctx context.Context) (index.Metadata, error)
}

// RebuildState reports whether an index rebuild is running in this process.
type RebuildState interface {
	InProgress() bool
}
