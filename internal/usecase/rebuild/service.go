// Package rebuild coordinates the atomic index rebuild protocol.
//
// A rebuild tears the old index down first, so the index reads as absent for
// the whole build window; the ingestor's final metadata write is the commit
// point. On any failure or cancellation the partial build is torn down again,
// leaving the index absent rather than half-built. The index is never visible
// in an inconsistent state.
package rebuild

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/logger"
	"github.com/unidesk-ai/unidesk/internal/metrics"
	"github.com/unidesk-ai/unidesk/internal/usecase/ingest"
)

// Service serializes rebuilds across goroutines and processes.
type Service struct {
	index    IndexStore
	chunks   ChunkStore
	ingestor Ingestor
	lockPath string
	running  atomic.Bool
}

// New creates the rebuild coordinator. lockPath is the cross-process file lock
// guarding the index storage.
func New(idx IndexStore, chunks ChunkStore, ingestor Ingestor, lockPath string) *Service {
	return &Service{
		index:    idx,
		chunks:   chunks,
		ingestor: ingestor,
		lockPath: lockPath,
	}
}

// InProgress reports whether a rebuild is running in this process.
func (s *Service) InProgress() bool { return s.running.Load() }

// Run executes a full rebuild. Exactly one rebuild runs at a time: a second
// call in this process fails fast with ErrRebuildInProgress, and a lock held
// by another process fails fast with ErrIndexLocked. Neither waits.
func (s *Service) Run(ctx context.Context) (ingest.Report, error) {
	if !s.running.CompareAndSwap(false, true) {
		metrics.RebuildsTotal.WithLabelValues("busy").Inc()
		return ingest.Report{}, domain.ErrRebuildInProgress
	}
	defer s.running.Store(false)

	lock := flock.New(s.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		metrics.RebuildsTotal.WithLabelValues("failure").Inc()
		return ingest.Report{}, fmt.Errorf("acquire rebuild lock %s: %w", s.lockPath, err)
	}
	if !locked {
		metrics.RebuildsTotal.WithLabelValues("locked").Inc()
		return ingest.Report{}, domain.ErrIndexLocked
	}
	defer lock.Unlock()

	log := logger.FromContext(ctx)
	start := time.Now()

	if err := s.teardown(ctx); err != nil {
		metrics.RebuildsTotal.WithLabelValues("failure").Inc()
		return ingest.Report{}, fmt.Errorf("teardown old index: %w", err)
	}

	report, err := s.ingestor.Run(ctx)
	if err != nil {
		// Roll the partial build back to absent even when ctx is already done.
		if rbErr := s.teardown(context.WithoutCancel(ctx)); rbErr != nil {
			log.Error("Rollback after failed rebuild is incomplete", zap.Error(rbErr))
		}
		metrics.RebuildsTotal.WithLabelValues("failure").Inc()
		return ingest.Report{}, fmt.Errorf("rebuild index: %w", err)
	}

	metrics.RebuildsTotal.WithLabelValues("success").Inc()
	metrics.RebuildDuration.Observe(time.Since(start).Seconds())

	log.Info("Index rebuilt",
		zap.Int("articles", report.Articles),
		zap.Int("chunks", report.Chunks),
		zap.Int("dimension", report.Dimension),
		zap.Duration("duration", time.Since(start)),
	)

	return report, nil
}

// teardown removes metadata first so readers see the index as absent before
// any chunk disappears.
func (s *Service) teardown(ctx context.Context) error {
	if err := s.index.Delete(ctx); err != nil {
		return fmt.Errorf("delete index metadata: %w", err)
	}
	if err := s.chunks.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge chunks: %w", err)
	}
	if err := s.index.DropSearchIndex(ctx); err != nil {
		return fmt.Errorf("drop search index: %w", err)
	}
	return nil
}
