// Package chi implements the HTTP API on the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/unidesk-ai/unidesk/internal/domain"
	healthuc "github.com/unidesk-ai/unidesk/internal/usecase/health"
)

// maxMessageLen caps the accepted question length in bytes.
const maxMessageLen = 4096

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the API.
type Server struct {
	chat          Chat
	rebuild       Rebuilder
	index         IndexInfo
	health        Health
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(chat Chat, rebuild Rebuilder, index IndexInfo, health Health, logger *zap.Logger) *Server {
	s := &Server{
		chat:    chat,
		rebuild: rebuild,
		index:   index,
		health:  health,
		logger:  logger,
	}
	s.errorHandlers = []errorHandler{
		dimensionMismatchHandler,
		sentinelHandler(domain.ErrIndexAbsent, http.StatusConflict, "index_absent"),
		sentinelHandler(domain.ErrIndexLocked, http.StatusLocked, "index_locked"),
		sentinelHandler(domain.ErrRebuildInProgress, http.StatusServiceUnavailable, "rebuild_in_progress"),
		sentinelHandler(domain.ErrNoSourceDocuments, http.StatusUnprocessableEntity, "no_source_documents"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "provider_error"),
		sentinelHandler(domain.ErrGenerationProviderError, http.StatusBadGateway, "provider_error"),
	}
	return s
}

// Register mounts all routes on the router.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/chat", s.Chat)
		r.Get("/index", s.IndexInfo)
		r.Post("/admin/rebuild", s.Rebuild)
	})
}

// Chat handles POST /v1/chat. Refusals are successful responses, not errors.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "message is required")
		return
	}
	if len(req.Message) > maxMessageLen {
		writeError(w, http.StatusBadRequest, "validation_failed", "message is too long")
		return
	}

	history := make([]domain.Turn, 0, len(req.History))
	for _, turn := range req.History {
		if turn.Role != "user" && turn.Role != "assistant" {
			writeError(w, http.StatusBadRequest, "validation_failed", "history role must be user or assistant")
			return
		}
		history = append(history, domain.Turn{Role: turn.Role, Content: turn.Content})
	}

	ans, err := s.chat.Answer(r.Context(), req.Message, history)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, answerToResponse(ans))
}

// Rebuild handles POST /v1/admin/rebuild.
func (s *Server) Rebuild(w http.ResponseWriter, r *http.Request) {
	report, err := s.rebuild.Run(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rebuildResponse{
		Articles:  report.Articles,
		Chunks:    report.Chunks,
		Dimension: report.Dimension,
	})
}

// IndexInfo handles GET /v1/index.
func (s *Server) IndexInfo(w http.ResponseWriter, r *http.Request) {
	meta, err := s.index.Check(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, indexResponse{
		Dimension:  meta.Dimension(),
		Model:      meta.Model(),
		ChunkCount: meta.ChunkCount(),
		BuiltAt:    time.UnixMilli(meta.BuiltAt()).UTC(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func answerToResponse(ans domain.Answer) chatResponse {
	resp := chatResponse{
		Answer:      ans.Text,
		Suggestions: ans.Suggestions,
		Refused:     ans.Refused,
	}
	if len(ans.Sources) > 0 {
		resp.Sources = make([]sourceResponse, len(ans.Sources))
		for i, src := range ans.Sources {
			resp.Sources[i] = sourceResponse{Title: src.Title, URL: src.URL, Category: src.Category}
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrIndexAbsent,
		domain.ErrDimensionMismatch,
		domain.ErrIndexLocked,
		domain.ErrRebuildInProgress,
		domain.ErrNoSourceDocuments,
		domain.ErrEmbeddingProviderError,
		domain.ErrGenerationProviderError,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// dimensionMismatchHandler handles ErrDimensionMismatch with both widths in the body.
func dimensionMismatchHandler(w http.ResponseWriter, err error, msg string) bool {
	var dme *domain.DimensionMismatchError
	if !errors.As(err, &dme) {
		return false
	}
	writeJSON(w, http.StatusConflict, map[string]any{
		"code":     "dimension_mismatch",
		"message":  msg,
		"expected": dme.Expected,
		"got":      dme.Got,
	})
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}
