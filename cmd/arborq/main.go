package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/canopyhq/arborq/internal/config"
	"github.com/canopyhq/arborq/internal/db"
	dbRedis "github.com/canopyhq/arborq/internal/db/redis"
	"github.com/canopyhq/arborq/internal/domain"
	"github.com/canopyhq/arborq/internal/domain/vocab"
	logpkg "github.com/canopyhq/arborq/internal/logger"
	"github.com/canopyhq/arborq/internal/metrics"
	catalogrepo "github.com/canopyhq/arborq/internal/repository/catalog"
	"github.com/canopyhq/arborq/internal/repository/embcache"
	chiTransport "github.com/canopyhq/arborq/internal/transport/chi"
	"github.com/canopyhq/arborq/internal/transport/gbif"
	aiTransport "github.com/canopyhq/arborq/internal/transport/openai"
	extractuc "github.com/canopyhq/arborq/internal/usecase/extract"
	healthuc "github.com/canopyhq/arborq/internal/usecase/health"
	rankuc "github.com/canopyhq/arborq/internal/usecase/rank"
	resolveuc "github.com/canopyhq/arborq/internal/usecase/resolve"
	"github.com/canopyhq/arborq/internal/version"
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

	logger.Info("Starting arborq API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_path", cfg.Catalog.Path),
	)

	// Load the species catalog once; it is immutable for the process lifetime.
	catalog, err := catalogrepo.Load(cfg.Catalog.Path)
	if err != nil {
		logger.Fatal("Failed to load species catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded",
		zap.Int("species", catalog.Len()),
		zap.Int("embedding_dims", catalog.Dimensions()),
	)

	// Optional embedding cache store
	var store db.Store
	if len(cfg.Redis.Addrs) > 0 {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Redis.Addrs,
			Password: cfg.Redis.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		readiness := time.Duration(cfg.Redis.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache store not ready", zap.Error(err))
		}
		logger.Info("Connected to embedding cache", zap.Strings("addrs", cfg.Redis.Addrs))
	}

	// Register AI metrics explicitly (no init())
	metrics.RegisterAIMetrics()

	// Embedder chain: OpenAI -> Cached
	baseEmbedder := aiTransport.NewEmbedder(&aiTransport.EmbedderConfig{
		APIKey:     cfg.AI.APIKey,
		BaseURL:    cfg.AI.BaseURL,
		Model:      cfg.AI.EmbeddingModel,
		Dimensions: cfg.AI.EmbeddingDimensions,
		Provider:   cfg.AI.Provider,
		Logger:     logger,
	})

	var embedder domain.Embedder = baseEmbedder
	if store != nil {
		ttl := time.Duration(cfg.Redis.CacheTTLSec) * time.Second
		embedder = embcache.New(baseEmbedder, store, ttl, metrics.EmbeddingCacheTotal, logger)
	}

	// Pass nil interface (not typed nil pointer!) when extraction is disabled.
	var completer extractuc.Completer
	if !cfg.AI.ExtractionDisabled {
		completer = aiTransport.NewCompleter(&aiTransport.CompleterConfig{
			APIKey:      cfg.AI.APIKey,
			BaseURL:     cfg.AI.BaseURL,
			Model:       cfg.AI.CompletionModel,
			Temperature: cfg.AI.Temperature,
			Provider:    cfg.AI.Provider,
			Logger:      logger,
		})
	}

	vocabulary := vocab.Default()
	extractSvc := extractuc.New(completer, vocabulary, logger)
	rankSvc := rankuc.New(embedder)

	images := gbif.NewClient(&gbif.Config{
		BaseURL:   cfg.Enrichment.GBIFBaseURL,
		MaxImages: cfg.Enrichment.MaxImages,
		Timeout:   time.Duration(cfg.Enrichment.TimeoutSec) * time.Second,
		Logger:    logger,
	})

	resolveSvc, err := resolveuc.New(catalog, extractSvc, rankSvc, logger).
		WithEnrichment(images, cfg.Enrichment.Workers)
	if err != nil {
		logger.Fatal("Failed to create resolve service", zap.Error(err))
	}
	defer resolveSvc.Close()

	// Health service: cache check only when the store is configured.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(catalog, baseEmbedder, cachePinger)

	server := chiTransport.NewServer(resolveSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
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
						"error": "internal error",
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

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}
