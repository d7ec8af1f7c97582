package article

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Separators tried in order when looking for a chunk boundary.
var separators = []string{"\n\n", "\n", ". ", "? ", "! ", ", ", " "}

// Splitter cuts article text into overlapping chunks at natural boundaries.
// Splitting is deterministic: the same text always yields the same chunks.
type Splitter struct {
	size    int
	overlap int
}

// NewSplitter validates and creates a Splitter. Size is in bytes; overlap
// must be smaller than size.
func NewSplitter(size, overlap int) (Splitter, error) {
	if size <= 0 {
		return Splitter{}, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return Splitter{}, fmt.Errorf("chunk overlap must be in [0, size), got %d", overlap)
	}
	return Splitter{size: size, overlap: overlap}, nil
}

// Split cuts text into chunks of at most the configured size, preferring to
// cut at paragraph, sentence and word boundaries. Consecutive chunks share
// up to overlap bytes of context. Cuts never land inside a UTF-8 rune.
func (s Splitter) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + s.size
		if end >= len(text) {
			if chunk := strings.TrimSpace(text[start:]); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		// Never cut inside a multi-byte rune
		for end > start && !utf8.RuneStart(text[end]) {
			end--
		}

		end = start + cutPoint(text[start:end])
		chunk := strings.TrimSpace(text[start:end])
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := end - s.overlap
		if next <= start {
			next = end
		}
		for next < len(text) && !utf8.RuneStart(text[next]) {
			next++
		}
		start = next
	}

	return chunks
}

// cutPoint finds the best boundary within the window: the last occurrence of
// the highest-priority separator in the second half, falling back to a hard cut.
func cutPoint(window string) int {
	for _, sep := range separators {
		if idx := strings.LastIndex(window, sep); idx > len(window)/2 {
			return idx + len(sep)
		}
	}
	return len(window)
}
