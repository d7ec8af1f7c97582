package unidesk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/unidesk-ai/unidesk/internal/domain"
)

const defaultTimeout = 60 * time.Second

// Client talks to a unidesk server over HTTP.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	cfg := clientConfig{timeout: defaultTimeout}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.apiKey,
		http:    hc,
	}, nil
}

// Chat asks a question with optional conversation history and returns
// the answer or refusal. Refusals are not errors.
func (c *Client) Chat(ctx context.Context, message string, history []Turn) (ChatResult, error) {
	body := struct {
		Message string `json:"message"`
		History []Turn `json:"history,omitempty"`
	}{Message: message, History: history}

	var res ChatResult
	if err := c.do(ctx, http.MethodPost, "/v1/chat", body, &res); err != nil {
		return ChatResult{}, err
	}
	return res, nil
}

// Rebuild tears down and rebuilds the vector index from the source
// corpus. Returns ErrIndexLocked if another process holds the index
// lock, ErrRebuildInProgress if a rebuild is already running.
func (c *Client) Rebuild(ctx context.Context) (RebuildReport, error) {
	var res RebuildReport
	if err := c.do(ctx, http.MethodPost, "/v1/admin/rebuild", nil, &res); err != nil {
		return RebuildReport{}, err
	}
	return res, nil
}

// IndexInfo returns the current index metadata. Returns ErrIndexAbsent
// when no index has been built.
func (c *Client) IndexInfo(ctx context.Context) (IndexInfo, error) {
	var res IndexInfo
	if err := c.do(ctx, http.MethodGet, "/v1/index", nil, &res); err != nil {
		return IndexInfo{}, err
	}
	return res, nil
}

// Health returns the service health snapshot. A degraded or unhealthy
// status is reported in the result, not as an error.
func (c *Client) Health(ctx context.Context) (HealthReport, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return HealthReport{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return HealthReport{}, fmt.Errorf("health request: %w", err)
	}
	defer drainClose(resp.Body)

	// The server answers 503 for unhealthy with the same body shape.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return HealthReport{}, apiErrorFrom(resp)
	}

	var res HealthReport
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return HealthReport{}, fmt.Errorf("decode health response: %w", err)
	}
	return res, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer drainClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFrom(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

// apiError is the server's error body. Expected and Got are only
// populated for dimension_mismatch.
type apiError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Expected int    `json:"expected"`
	Got      int    `json:"got"`
}

// apiErrorFrom maps an error response back to the domain sentinels so
// callers can use errors.Is across process boundaries.
func apiErrorFrom(resp *http.Response) error {
	var body apiError
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("server returned %s", resp.Status)
	}

	switch body.Code {
	case "dimension_mismatch":
		return domain.NewDimensionMismatch(body.Expected, body.Got)
	case "index_absent":
		return fmt.Errorf("%s: %w", body.Message, ErrIndexAbsent)
	case "index_locked":
		return fmt.Errorf("%s: %w", body.Message, ErrIndexLocked)
	case "rebuild_in_progress":
		return fmt.Errorf("%s: %w", body.Message, ErrRebuildInProgress)
	case "no_source_documents":
		return fmt.Errorf("%s: %w", body.Message, ErrNoSourceDocuments)
	case "provider_error":
		// The wire does not distinguish embedding from generation failures.
		return fmt.Errorf("%s: %w", body.Message, ErrEmbeddingProviderError)
	case "unauthorized":
		return fmt.Errorf("unauthorized: %s", body.Message)
	default:
		return fmt.Errorf("server error %s: %s (%s)", resp.Status, body.Message, body.Code)
	}
}

func drainClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
