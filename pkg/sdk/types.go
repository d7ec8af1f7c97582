package unidesk

import "time"

// Turn is one prior exchange in a conversation, oldest first.
// Role is "user" or "assistant".
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Source points at an article a chat answer was grounded on.
type Source struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// ChatResult is the answer to one question. When Refused is true the
// question was outside the service's domain and Answer holds the
// refusal text with redirect Suggestions.
type ChatResult struct {
	Answer      string   `json:"answer"`
	Sources     []Source `json:"sources,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
	Refused     bool     `json:"refused"`
}

// RebuildReport summarizes a completed index rebuild.
type RebuildReport struct {
	Articles  int `json:"articles"`
	Chunks    int `json:"chunks"`
	Dimension int `json:"dimension"`
}

// IndexInfo describes the current vector index.
type IndexInfo struct {
	Dimension  int       `json:"dimension"`
	Model      string    `json:"model"`
	ChunkCount int       `json:"chunk_count"`
	BuiltAt    time.Time `json:"built_at"`
}

// HealthReport is the service health snapshot. Status is "healthy",
// "degraded" or "unhealthy"; Checks holds the per-component states.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
