// Package resolve answers a free-text question over the species catalog:
// structured extraction (with heuristic fallback) and semantic ranking
// run concurrently, the filter combinator intersects their outputs, and
// surviving results are enriched with occurrence photos.
package resolve

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/canopyhq/arborq/internal/domain"
	"github.com/canopyhq/arborq/internal/metrics"
	"github.com/canopyhq/arborq/internal/usecase/extract"
)

// Response is the outcome of one resolved question. Count is non-nil on
// the count path, in which case Results stays empty and enrichment was
// skipped.
type Response struct {
	Results    []domain.ScoredSpecies
	Count      *int
	Structured bool
}

// Service orchestrates query resolution.
type Service struct {
	catalog   CatalogReader
	extractor Extractor
	ranker    Ranker

	images ImageFinder
	pool   *ants.Pool
	logger *zap.Logger
}

// New creates a resolution service without enrichment.
func New(catalog CatalogReader, extractor Extractor, ranker Ranker, logger *zap.Logger) *Service {
	return &Service{
		catalog:   catalog,
		extractor: extractor,
		ranker:    ranker,
		logger:    logger,
	}
}

// WithEnrichment enables bounded concurrent image enrichment.
func (s *Service) WithEnrichment(images ImageFinder, workers int) (*Service, error) {
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create enrichment pool: %w", err)
	}
	s.images = images
	s.pool = pool
	return s, nil
}

// Close releases the enrichment worker pool.
func (s *Service) Close() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// Resolve answers the question. An empty question is a client error and
// performs no external calls. Extraction and ranking run concurrently;
// an embedding failure aborts the request, an extraction failure is
// recovered silently by the heuristic parser inside the extractor.
func (s *Service) Resolve(ctx context.Context, question string) (Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Response{}, domain.ErrEmptyQuestion
	}

	catalog := s.catalog.All()
	if len(catalog) == 0 {
		return Response{}, domain.ErrCatalogUnavailable
	}

	var (
		ext     extract.Extraction
		ranked  []domain.ScoredSpecies
		rankErr error
		wg      sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		ext = s.extractor.Extract(ctx, question)
	}()
	go func() {
		defer wg.Done()
		ranked, rankErr = s.ranker.Rank(ctx, question, catalog)
	}()
	wg.Wait()

	if rankErr != nil {
		return Response{}, fmt.Errorf("rank catalog: %w", rankErr)
	}

	s.logger.Debug("question resolved to query",
		zap.Bool("structured", ext.Structured),
		zap.Any("query", ext.Query),
	)

	results := Combine(ext.Query, catalog, ranked)

	if isCountQuestion(question) {
		n := len(results)
		return Response{Count: &n, Structured: ext.Structured}, nil
	}

	s.enrich(ctx, results)

	return Response{Results: results, Structured: ext.Structured}, nil
}

// enrich fans image lookups out over the worker pool. Each lookup fails
// in isolation: the entry keeps an empty image list and siblings are
// unaffected.
func (s *Service) enrich(ctx context.Context, results []domain.ScoredSpecies) {
	if s.images == nil || s.pool == nil || len(results) == 0 {
		return
	}

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		idx := i
		err := s.pool.Submit(func() {
			defer wg.Done()
			urls, err := s.images.ImagesFor(ctx, results[idx].Record.Species)
			if err != nil {
				metrics.ImageLookupsTotal.WithLabelValues("error").Inc()
				s.logger.Debug("image lookup failed",
					zap.String("species", results[idx].Record.Species),
					zap.Error(err),
				)
				return
			}
			metrics.ImageLookupsTotal.WithLabelValues("success").Inc()
			results[idx].Images = urls
		})
		if err != nil {
			wg.Done()
			s.logger.Warn("failed to submit enrichment task", zap.Error(err))
		}
	}
	wg.Wait()
}
