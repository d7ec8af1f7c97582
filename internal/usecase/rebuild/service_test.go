package rebuild

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"

	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/article"
	"github.com/unidesk-ai/unidesk/internal/usecase/ingest"
)

func lockPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "rebuild.lock")
}

func TestRun_Success(t *testing.T) {
	idx := &mockIndexStore{}
	chunks := &mockChunkStore{}
	ingestor := &mockIngestor{
		runFunc: func(context.Context) (ingest.Report, error) {
			return ingest.Report{Articles: 5, Chunks: 20, Dimension: 1536}, nil
		},
	}

	svc := New(idx, chunks, ingestor, lockPath(t))

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Chunks != 20 {
		t.Errorf("unexpected report: %+v", report)
	}
	// one teardown before the build, no rollback
	if idx.deleteCount() != 1 || chunks.purgeCount() != 1 {
		t.Errorf("expected single teardown, got %d deletes, %d purges", idx.deleteCount(), chunks.purgeCount())
	}
	if svc.InProgress() {
		t.Error("InProgress must be false after completion")
	}
}

func TestRun_RepeatedRebuildsCommitSameIndex(t *testing.T) {
	articles := make([]article.Article, 0, 2)
	for _, src := range []struct{ title, content, url string }{
		{"Học phí 2026", "Học phí năm học 2026 là 12 triệu đồng mỗi học kỳ.", "https://example.edu/vn/hoc-phi/2026"},
		{"Lịch thi", "Lịch thi học kỳ một được công bố trên cổng sinh viên.", "https://example.edu/vn/lich-thi/hk1"},
	} {
		a, err := article.New(src.title, src.content, src.url)
		if err != nil {
			t.Fatalf("article setup failed: %v", err)
		}
		articles = append(articles, a)
	}

	idx := &fullIndexStore{}
	chunks := &fullChunkStore{}
	ingestor, err := ingest.New(
		&fixedLoader{articles: articles},
		&constantBatchEmbedder{dimension: 4},
		idx, chunks,
		ingest.Config{Dimension: 4, Model: "text-embedding-3-small", ChunkSize: 1000, ChunkOverlap: 200, BatchSize: 8},
	)
	if err != nil {
		t.Fatalf("ingest setup failed: %v", err)
	}

	svc := New(idx, chunks, ingestor, lockPath(t))

	first, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("first rebuild failed: %v", err)
	}
	second, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("second rebuild failed: %v", err)
	}

	// same sources and embedder: both runs commit the same index shape
	if first != second {
		t.Errorf("reports differ: first %+v, second %+v", first, second)
	}

	metas := idx.committed()
	if len(metas) != 2 {
		t.Fatalf("expected 2 committed metadata writes, got %d", len(metas))
	}
	if metas[0].Dimension() != 4 || metas[1].Dimension() != 4 {
		t.Errorf("expected dimension 4 both times, got %d and %d", metas[0].Dimension(), metas[1].Dimension())
	}
	if metas[0].ChunkCount() != metas[1].ChunkCount() {
		t.Errorf("chunk counts differ: %d vs %d", metas[0].ChunkCount(), metas[1].ChunkCount())
	}

	// the second run replaced the first run's chunks, it did not add to them
	if chunks.liveCount() != second.Chunks {
		t.Errorf("expected %d live chunks after second rebuild, got %d", second.Chunks, chunks.liveCount())
	}
}

func TestRun_ConcurrentCallFailsFast(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	ingestor := &mockIngestor{
		runFunc: func(context.Context) (ingest.Report, error) {
			close(started)
			<-release
			return ingest.Report{}, nil
		},
	}

	svc := New(&mockIndexStore{}, &mockChunkStore{}, ingestor, lockPath(t))

	done := make(chan error, 1)
	go func() {
		_, err := svc.Run(context.Background())
		done <- err
	}()

	<-started
	if !svc.InProgress() {
		t.Error("InProgress must be true while a rebuild runs")
	}

	if _, err := svc.Run(context.Background()); !errors.Is(err, domain.ErrRebuildInProgress) {
		t.Fatalf("expected ErrRebuildInProgress, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first rebuild failed: %v", err)
	}
}

func TestRun_LockedByAnotherHolder(t *testing.T) {
	path := lockPath(t)

	holder := flock.New(path)
	locked, err := holder.TryLock()
	if err != nil || !locked {
		t.Fatalf("test lock setup failed: locked=%v err=%v", locked, err)
	}
	defer holder.Unlock()

	idx := &mockIndexStore{}
	ingestor := &mockIngestor{
		runFunc: func(context.Context) (ingest.Report, error) { return ingest.Report{}, nil },
	}

	svc := New(idx, &mockChunkStore{}, ingestor, path)

	if _, err := svc.Run(context.Background()); !errors.Is(err, domain.ErrIndexLocked) {
		t.Fatalf("expected ErrIndexLocked, got %v", err)
	}
	if idx.deleteCount() != 0 {
		t.Error("locked rebuild must not touch the index")
	}
}

func TestRun_IngestFailureRollsBack(t *testing.T) {
	idx := &mockIndexStore{}
	chunks := &mockChunkStore{}
	cause := errors.New("provider down")
	ingestor := &mockIngestor{
		runFunc: func(context.Context) (ingest.Report, error) { return ingest.Report{}, cause },
	}

	svc := New(idx, chunks, ingestor, lockPath(t))

	if _, err := svc.Run(context.Background()); !errors.Is(err, cause) {
		t.Fatalf("expected ingest error, got %v", err)
	}
	// teardown before the build plus the rollback
	if idx.deleteCount() != 2 || chunks.purgeCount() != 2 {
		t.Errorf("expected rollback teardown, got %d deletes, %d purges", idx.deleteCount(), chunks.purgeCount())
	}
}

func TestRun_CancellationRollsBackDetached(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	idx := &mockIndexStore{}
	chunks := &mockChunkStore{
		purgeFunc: func(ctx context.Context) error {
			// rollback must run on a detached context
			if ctx.Err() != nil {
				t.Error("teardown received a cancelled context")
			}
			return nil
		},
	}
	ingestor := &mockIngestor{
		runFunc: func(ctx context.Context) (ingest.Report, error) {
			cancel()
			return ingest.Report{}, ctx.Err()
		},
	}

	svc := New(idx, chunks, ingestor, lockPath(t))

	if _, err := svc.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if chunks.purgeCount() != 2 {
		t.Errorf("expected rollback after cancellation, got %d purges", chunks.purgeCount())
	}
}

func TestRun_LockReleasedAfterCompletion(t *testing.T) {
	path := lockPath(t)
	ingestor := &mockIngestor{
		runFunc: func(context.Context) (ingest.Report, error) { return ingest.Report{}, nil },
	}

	svc := New(&mockIndexStore{}, &mockChunkStore{}, ingestor, path)
	if _, err := svc.Run(context.Background()); err != nil {
		t.Fatalf("first rebuild failed: %v", err)
	}

	// the file lock must be free again
	probe := flock.New(path)
	locked, err := probe.TryLock()
	if err != nil {
		t.Fatalf("probe lock failed: %v", err)
	}
	if !locked {
		t.Fatal("lock still held after rebuild completed")
	}
	probe.Unlock()
}
