package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/unidesk-ai/unidesk/internal/config"
	dbRedis "github.com/unidesk-ai/unidesk/internal/db/redis"
	"github.com/unidesk-ai/unidesk/internal/domain"
	"github.com/unidesk-ai/unidesk/internal/domain/policy"
	logpkg "github.com/unidesk-ai/unidesk/internal/logger"
	"github.com/unidesk-ai/unidesk/internal/metrics"
	chunkrepo "github.com/unidesk-ai/unidesk/internal/repository/chunk"
	"github.com/unidesk-ai/unidesk/internal/repository/embcache"
	indexrepo "github.com/unidesk-ai/unidesk/internal/repository/index"
	searchrepo "github.com/unidesk-ai/unidesk/internal/repository/search"
	sourcerepo "github.com/unidesk-ai/unidesk/internal/repository/source"
	chiTransport "github.com/unidesk-ai/unidesk/internal/transport/chi"
	openaiTransport "github.com/unidesk-ai/unidesk/internal/transport/openai"
	chatuc "github.com/unidesk-ai/unidesk/internal/usecase/chat"
	faquc "github.com/unidesk-ai/unidesk/internal/usecase/faq"
	gateuc "github.com/unidesk-ai/unidesk/internal/usecase/gate"
	guarduc "github.com/unidesk-ai/unidesk/internal/usecase/guard"
	healthuc "github.com/unidesk-ai/unidesk/internal/usecase/health"
	ingestuc "github.com/unidesk-ai/unidesk/internal/usecase/ingest"
	rebuilduc "github.com/unidesk-ai/unidesk/internal/usecase/rebuild"
	"github.com/unidesk-ai/unidesk/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting unidesk API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterPipelineMetrics()

	// Providers
	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   "openai",
		Logger:     logger,
	})

	// Query embedder gets a cache in front; ingestion embeds in batches
	// straight against the provider.
	var queryEmbedder domain.Embedder = embedder
	if cfg.Embedding.Cache {
		queryEmbedder = embcache.New(embedder, store, metrics.EmbeddingCacheTotal, logger)
	}

	generator := openaiTransport.NewGenerator(&openaiTransport.GeneratorConfig{
		APIKey:          cfg.Generation.APIKey,
		BaseURL:         cfg.Generation.BaseURL,
		Model:           cfg.Generation.Model,
		Temperature:     cfg.Generation.Temperature,
		MaxHistoryTurns: cfg.Generation.MaxHistoryTurns,
		Logger:          logger,
	})

	pol := buildPolicy(cfg.Domain, logger)

	// Repositories
	idxRepo := indexrepo.New(store).WithHNSW(indexrepo.HNSWConfig{
		M:           cfg.Retrieval.HNSWM,
		EFConstruct: cfg.Retrieval.HNSWEFConstruct,
	})
	chunkRepo := chunkrepo.New(store)
	searchRepo := searchrepo.New(store)
	loader := sourcerepo.New(cfg.Ingest.DataPath)

	// Use case services
	ingestSvc, err := ingestuc.New(loader, embedder, idxRepo, chunkRepo, ingestuc.Config{
		Dimension:    cfg.Embedding.Dimensions,
		Model:        cfg.Embedding.Model,
		ChunkSize:    cfg.Ingest.ChunkSize,
		ChunkOverlap: cfg.Ingest.ChunkOverlap,
		BatchSize:    cfg.Ingest.BatchSize,
	})
	if err != nil {
		logger.Fatal("Failed to create ingestion service", zap.Error(err))
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Ingest.LockPath), 0o755); err != nil {
		logger.Fatal("Failed to create lock directory", zap.Error(err))
	}
	rebuildSvc := rebuilduc.New(idxRepo, chunkRepo, ingestSvc, cfg.Ingest.LockPath)

	guardSvc := guarduc.New(idxRepo, rebuildSvc, cfg.Embedding.Dimensions, cfg.Embedding.Model, logger)
	chatSvc := chatuc.New(guardSvc, faquc.New(), gateuc.New(pol), queryEmbedder, searchRepo, generator, cfg.Retrieval.K)
	healthSvc := healthuc.New(store, embedder, guardSvc)

	server := chiTransport.NewServer(chatSvc, rebuildSvc, guardSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildPolicy converts the configured topics into the domain policy.
func buildPolicy(cfg config.DomainConfig, logger *zap.Logger) policy.Policy {
	topics := make([]policy.Topic, 0, len(cfg.Topics))
	for _, tc := range cfg.Topics {
		topic, err := policy.NewTopic(tc.Name, tc.Keywords)
		if err != nil {
			logger.Fatal("Invalid topic in config", zap.String("topic", tc.Name), zap.Error(err))
		}
		topics = append(topics, topic)
	}

	pol, err := policy.New(topics, cfg.RefusalTemplate, cfg.RedirectSuggestions)
	if err != nil {
		logger.Fatal("Invalid domain policy in config", zap.Error(err))
	}
	return pol
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
