// Package chi exposes query resolution over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/canopyhq/arborq/internal/domain"
	healthuc "github.com/canopyhq/arborq/internal/usecase/health"
	resolveuc "github.com/canopyhq/arborq/internal/usecase/resolve"
)

// Resolver answers questions against the catalog.
type Resolver interface {
	Resolve(ctx context.Context, question string) (resolveuc.Response, error)
}

// HealthChecker aggregates component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server implements the HTTP API.
type Server struct {
	resolver      Resolver
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(resolver Resolver, health HealthChecker, logger *zap.Logger) *Server {
	s := &Server{
		resolver: resolver,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrEmptyQuestion, http.StatusBadRequest, "question is required"),
		sentinelHandler(domain.ErrEmbeddingProviderError, http.StatusBadGateway, "embedding provider error"),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, "catalog unavailable"),
	}
	return s
}

// Register mounts the API routes on the given router.
func (s *Server) Register(r chi.Router) {
	r.Post("/v1/query", s.handleQuery)
	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", s.handleMetrics)
}

type queryRequest struct {
	Question string `json:"question"`
}

type speciesResult struct {
	Species           string   `json:"species"`
	Family            string   `json:"family"`
	EcosystemServices []string `json:"ecosystemServices"`
	PartsUsed         []string `json:"partsUsed"`
	RelatedTraits     []string `json:"relatedTraits"`
	Similarity        float64  `json:"similarity"`
	Images            []string `json:"images"`
}

type resultsResponse struct {
	Results []speciesResult `json:"results"`
}

type countResponse struct {
	Count int `json:"count"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleQuery handles POST /v1/query.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.resolver.Resolve(r.Context(), req.Question)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if resp.Count != nil {
		writeJSON(w, http.StatusOK, countResponse{Count: *resp.Count})
		return
	}

	results := make([]speciesResult, len(resp.Results))
	for i, sc := range resp.Results {
		results[i] = resultToDTO(sc)
	}
	writeJSON(w, http.StatusOK, resultsResponse{Results: results})
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// handleMetrics handles GET /metrics.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func resultToDTO(sc domain.ScoredSpecies) speciesResult {
	images := sc.Images
	if images == nil {
		images = []string{}
	}
	return speciesResult{
		Species:           sc.Record.Species,
		Family:            sc.Record.Family,
		EcosystemServices: sc.Record.EcosystemServices,
		PartsUsed:         sc.Record.PartsUsed,
		RelatedTraits:     sc.Record.RelatedTraits,
		Similarity:        sc.Similarity,
		Images:            images,
	}
}

// handleDomainError maps a domain error to an HTTP response, falling
// back to a generic 500 that leaks no internal state.
func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, handle := range s.errorHandlers {
		if handle(w, err) {
			return
		}
	}

	s.logger.Error("unhandled error resolving query", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

// sentinelHandler creates an errorHandler matching a sentinel error.
func sentinelHandler(sentinel error, status int, msg string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, msg)
		return true
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
