// Package index holds the vector index metadata value object.
package index

import (
	"fmt"
	"time"
)

// Metadata records what the index was built with (immutable value object).
// Every vector persisted in the index has length == Dimension; the invariant
// is enforced at ingestion time and checked against configuration by the
// consistency guard before any read or write.
type Metadata struct {
	dimension  int
	model      string
	chunkCount int
	builtAt    int64
}

// New validates and creates Metadata. Dimension must be positive, model non-empty.
func New(dimension int, model string, chunkCount int) (Metadata, error) {
	if dimension <= 0 {
		return Metadata{}, fmt.Errorf("embedding dimension must be positive, got %d", dimension)
	}
	if model == "" {
		return Metadata{}, fmt.Errorf("embedding model identifier is required")
	}
	if chunkCount < 0 {
		return Metadata{}, fmt.Errorf("chunk count cannot be negative, got %d", chunkCount)
	}
	return Metadata{
		dimension:  dimension,
		model:      model,
		chunkCount: chunkCount,
		builtAt:    time.Now().UnixMilli(),
	}, nil
}

// Reconstruct creates Metadata without validation (storage hydration).
func Reconstruct(dimension int, model string, chunkCount int, builtAt int64) Metadata {
	return Metadata{
		dimension:  dimension,
		model:      model,
		chunkCount: chunkCount,
		builtAt:    builtAt,
	}
}

// Dimension returns the embedding vector width the index was built with.
func (m Metadata) Dimension() int { return m.dimension }

// Model returns the embedding model identifier the index was built with.
func (m Metadata) Model() string { return m.model }

// ChunkCount returns the number of chunks written at build time.
func (m Metadata) ChunkCount() int { return m.chunkCount }

// BuiltAt returns the build timestamp (unix millis).
func (m Metadata) BuiltAt() int64 { return m.builtAt }
