// Package index persists index metadata and manages the FT search index.
//
// The metadata hash is the commit point of a rebuild: readers treat the index
// as present if and only if the hash exists.
package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/unidesk-ai/unidesk/internal/db"
	"github.com/unidesk-ai/unidesk/internal/domain"
	domidx "github.com/unidesk-ai/unidesk/internal/domain/index"
)

// store is the consumer interface for index metadata (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
}

// HNSWConfig HNSW index parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the index metadata repository.
type Repo struct {
	store store
	hnsw  HNSWConfig
}

// New creates an index repository.
func New(s store) *Repo {
	return &Repo{store: s, hnsw: HNSWConfig{M: 32, EFConstruct: 400}}
}

// WithHNSW configures HNSW index parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	if cfg.M > 0 {
		r.hnsw.M = cfg.M
	}
	if cfg.EFConstruct > 0 {
		r.hnsw.EFConstruct = cfg.EFConstruct
	}
	return r
}

// Get retrieves the index metadata. An empty hash means the index is absent.
func (r *Repo) Get(ctx context.Context) (domidx.Metadata, error) {
	m, err := r.store.HGetAll(ctx, MetaKey())
	if err != nil {
		return domidx.Metadata{}, fmt.Errorf("hgetall index meta: %w", err)
	}
	if len(m) == 0 {
		return domidx.Metadata{}, domain.ErrIndexAbsent
	}

	return metadataFromHash(m)
}

// Put stores the index metadata. Callers write it only after all chunks are in
// place, making the write the rebuild commit point.
func (r *Repo) Put(ctx context.Context, meta domidx.Metadata) error {
	if err := r.store.HSet(ctx, MetaKey(), metadataToHash(meta)); err != nil {
		return fmt.Errorf("hset index meta: %w", err)
	}
	return nil
}

// Delete removes the index metadata, marking the index absent.
func (r *Repo) Delete(ctx context.Context) error {
	if err := r.store.Del(ctx, MetaKey()); err != nil {
		return fmt.Errorf("del index meta: %w", err)
	}
	return nil
}

// CreateSearchIndex creates the FT index over chunk hashes for the given
// vector dimension.
func (r *Repo) CreateSearchIndex(ctx context.Context, dimension int) error {
	def := &db.IndexDefinition{
		Name:     SearchIndexName(),
		Prefixes: []string{ChunkKeyPrefix()},
		Fields: []db.IndexField{
			{Name: "text", Type: db.IndexFieldText},
			{Name: "title", Type: db.IndexFieldText},
			{Name: "url", Type: db.IndexFieldTag},
			{Name: "category", Type: db.IndexFieldTag},
			{
				Name:              "vector",
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         dimension,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create search index: %w", err)
	}
	return nil
}

// DropSearchIndex removes the FT index. A missing index is not an error so
// teardown stays idempotent.
func (r *Repo) DropSearchIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, SearchIndexName()); err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil
		}
		return fmt.Errorf("drop search index: %w", err)
	}
	return nil
}

// Redis key patterns: unidesk:index:meta, unidesk:chunks:idx, unidesk:chunk:{id}

// MetaKey returns the key of the index metadata hash.
func MetaKey() string {
	return domain.KeyPrefix + "index:meta"
}

// SearchIndexName returns the FT index name.
func SearchIndexName() string {
	return domain.KeyPrefix + "chunks:idx"
}

// ChunkKeyPrefix returns the key prefix shared by all chunk hashes.
func ChunkKeyPrefix() string {
	return domain.KeyPrefix + "chunk:"
}
