package unidesk

import "github.com/unidesk-ai/unidesk/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrIndexAbsent             = domain.ErrIndexAbsent
	ErrDimensionMismatch       = domain.ErrDimensionMismatch
	ErrIndexLocked             = domain.ErrIndexLocked
	ErrRebuildInProgress       = domain.ErrRebuildInProgress
	ErrNoSourceDocuments       = domain.ErrNoSourceDocuments
	ErrEmbeddingProviderError  = domain.ErrEmbeddingProviderError
	ErrGenerationProviderError = domain.ErrGenerationProviderError
)

// DimensionMismatchError carries both widths when the server reports a
// dimension mismatch. Matches ErrDimensionMismatch via errors.Is().
type DimensionMismatchError = domain.DimensionMismatchError
