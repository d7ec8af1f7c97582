package guard

import (
	"context"

	"github.com/unidesk-ai/unidesk/internal/domain/index"
)

// mockMetadataRepo is a function-field mock for MetadataRepo.
type mockMetadataRepo struct {
	getFunc func(ctx context.Context) (index.Metadata, error)
	calls   int
}

func (m *mockMetadataRepo) Get(ctx context.Context) (index.Metadata, error) {
	m.calls++
	return m.getFunc(ctx)
}

// mockRebuildState is a function-field mock for RebuildState.
type mockRebuildState struct {
	inProgress bool
}

func (m *mockRebuildState) InProgress() bool { return m.inProgress }
