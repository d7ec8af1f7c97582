package chunk

import (
	"encoding/binary"
	"math"

	"github.com/unidesk-ai/unidesk/internal/domain/article"
)

// chunkToHash converts a chunk and its embedding to a map for HSET.
// The vector is stored as a little-endian float32 blob for FT.SEARCH.
func chunkToHash(c article.Chunk, vector []float32) map[string]string {
	return map[string]string{
		"text":     c.Text,
		"title":    c.Title,
		"url":      c.URL,
		"category": c.Category,
		"vector":   vectorToBlob(vector),
	}
}

func vectorToBlob(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
