package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexAbsent signals that the vector index has no metadata (never built or torn down).
	ErrIndexAbsent = errors.New("index absent")
	// ErrDimensionMismatch signals that the configured embedding width differs from the index.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrIndexLocked signals that another process holds the index storage lock.
	ErrIndexLocked = errors.New("index locked by another process")
	// ErrRebuildInProgress signals that a rebuild is running in this process.
	ErrRebuildInProgress = errors.New("index rebuild in progress")
	// ErrNoSourceDocuments signals that ingestion found nothing to index.
	ErrNoSourceDocuments = errors.New("no source documents")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a completion provider failure.
	ErrGenerationProviderError = errors.New("generation provider error")
)

// DimensionMismatchError wraps ErrDimensionMismatch with both widths.
// Expected is what the index metadata records, Got is what the configured
// embedding function produces. The only remediation is a full rebuild.
type DimensionMismatchError struct {
	Expected int
	Got      int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: index expects dimension %d, embedding function produces %d (full rebuild required)",
		ErrDimensionMismatch.Error(), e.Expected, e.Got)
}

func (e *DimensionMismatchError) Unwrap() error { return ErrDimensionMismatch }

// NewDimensionMismatch creates a dimension mismatch error.
func NewDimensionMismatch(expected, got int) error {
	return &DimensionMismatchError{Expected: expected, Got: got}
}
