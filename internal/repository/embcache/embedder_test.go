package embcache

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/unidesk-ai/unidesk/internal/db"
	"github.com/unidesk-ai/unidesk/internal/domain"
)

func TestEmbed_MissCallsInnerAndCaches(t *testing.T) {
	inner := &mockEmbedder{
		result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}, PromptTokens: 3, TotalTokens: 3},
	}
	ce, ms := newTestCachedEmbedder(t, inner)

	var cachedKey string
	var cachedData []byte
	ms.setFn = func(_ context.Context, key string, value []byte) error {
		cachedKey = key
		cachedData = value
		return nil
	}

	res, err := ce.Embed(context.Background(), "học phí")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
	if res.TotalTokens != 3 {
		t.Errorf("expected token usage from inner, got %d", res.TotalTokens)
	}
	if !strings.HasPrefix(cachedKey, "unidesk:emb_cache:") {
		t.Errorf("unexpected cache key %s", cachedKey)
	}
	if len(cachedData) != 8 {
		t.Errorf("expected 8-byte blob, got %d", len(cachedData))
	}
}

func TestEmbed_HitSkipsInner(t *testing.T) {
	inner := &mockEmbedder{}
	ce, ms := newTestCachedEmbedder(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return vectorToCacheBytes([]float32{0.5, 0.25}), nil
	}

	res, err := ce.Embed(context.Background(), "học phí")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("expected no inner calls, got %d", inner.calls)
	}
	if len(res.Embedding) != 2 || res.Embedding[0] != 0.5 {
		t.Errorf("unexpected embedding: %v", res.Embedding)
	}
	if res.TotalTokens != 0 {
		t.Errorf("cache hit should report zero tokens, got %d", res.TotalTokens)
	}
}

func TestEmbed_CorruptCacheFallsThrough(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	ce, ms := newTestCachedEmbedder(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte{1, 2, 3}, nil // not a multiple of 4
	}

	res, err := ce.Embed(context.Background(), "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected inner call on corrupt cache, got %d", inner.calls)
	}
	if len(res.Embedding) != 1 {
		t.Errorf("unexpected embedding: %v", res.Embedding)
	}
}

func TestEmbed_InnerError(t *testing.T) {
	inner := &mockEmbedder{err: errors.New("provider down")}
	ce, _ := newTestCachedEmbedder(t, inner)

	if _, err := ce.Embed(context.Background(), "x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestEmbed_SpellingVariantsShareEntry(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	ce, ms := newTestCachedEmbedder(t, inner)

	cached := map[string][]byte{}
	ms.setFn = func(_ context.Context, key string, value []byte) error {
		cached[key] = value
		return nil
	}
	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		if data, ok := cached[key]; ok {
			return data, nil
		}
		return nil, db.ErrKeyNotFound
	}

	if _, err := ce.Embed(context.Background(), "Học phí HK này"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// same question after normalization: lowercased, hk expanded
	if _, err := ce.Embed(context.Background(), "học phí học kỳ này"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inner.calls != 1 {
		t.Errorf("expected the variant to hit the cache, got %d inner calls", inner.calls)
	}
	if len(cached) != 1 {
		t.Errorf("expected a single cache entry, got %d", len(cached))
	}
}

func TestEmbed_DifferentTextsDifferentKeys(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	ce, ms := newTestCachedEmbedder(t, inner)

	keys := map[string]bool{}
	ms.setFn = func(_ context.Context, key string, _ []byte) error {
		keys[key] = true
		return nil
	}

	_, _ = ce.Embed(context.Background(), "học phí")
	_, _ = ce.Embed(context.Background(), "tuyển sinh")

	if len(keys) != 2 {
		t.Errorf("expected 2 distinct cache keys, got %d", len(keys))
	}
}
