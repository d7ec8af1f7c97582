package chi

import "time"

type chatRequest struct {
	Message string        `json:"message"`
	History []historyTurn `json:"history,omitempty"`
}

type historyTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Answer      string           `json:"answer"`
	Sources     []sourceResponse `json:"sources,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Refused     bool             `json:"refused"`
}

type sourceResponse struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

type rebuildResponse struct {
	Articles  int `json:"articles"`
	Chunks    int `json:"chunks"`
	Dimension int `json:"dimension"`
}

type indexResponse struct {
	Dimension  int       `json:"dimension"`
	Model      string    `json:"model"`
	ChunkCount int       `json:"chunk_count"`
	BuiltAt    time.Time `json:"built_at"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
