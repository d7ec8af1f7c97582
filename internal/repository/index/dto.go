package index

import (
	"fmt"
	"strconv"

	domidx "github.com/unidesk-ai/unidesk/internal/domain/index"
)

// metadataToHash converts index metadata to a map for HSET.
func metadataToHash(meta domidx.Metadata) map[string]string {
	return map[string]string{
		"dimension":   strconv.Itoa(meta.Dimension()),
		"model":       meta.Model(),
		"chunk_count": strconv.Itoa(meta.ChunkCount()),
		"built_at":    strconv.FormatInt(meta.BuiltAt(), 10),
	}
}

// metadataFromHash hydrates index metadata from an HGETALL result map.
func metadataFromHash(m map[string]string) (domidx.Metadata, error) {
	dimension, err := strconv.Atoi(m["dimension"])
	if err != nil {
		return domidx.Metadata{}, fmt.Errorf("invalid dimension: %w", err)
	}

	chunkCount := 0
	if s, ok := m["chunk_count"]; ok && s != "" {
		if parsed, err := strconv.Atoi(s); err == nil {
			chunkCount = parsed
		}
	}

	var builtAt int64
	if s, ok := m["built_at"]; ok && s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			builtAt = parsed
		}
	}

	return domidx.Reconstruct(dimension, m["model"], chunkCount, builtAt), nil
}
