// Package extract turns a free-text question into a structured query.
// The primary path asks a chat completion service for constrained JSON;
// any failure there falls back wholesale to the deterministic heuristic
// parser. Extraction failure is never surfaced to the caller.
package extract

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/canopyhq/arborq/internal/domain"
	"github.com/canopyhq/arborq/internal/domain/vocab"
	"github.com/canopyhq/arborq/internal/metrics"
)

// Extraction is the two-variant extraction result: the query plus which
// path produced it.
type Extraction struct {
	Query domain.Query
	// Structured is true when the completion service produced the query,
	// false when the heuristic fallback ran.
	Structured bool
}

// Service coordinates structured extraction with its heuristic fallback.
type Service struct {
	completer Completer
	heuristic *HeuristicParser
	vocab     *vocab.Vocabulary
	logger    *zap.Logger
}

// New creates an extraction service. A nil completer disables the
// structured path entirely; every question then takes the heuristic path.
func New(completer Completer, v *vocab.Vocabulary, logger *zap.Logger) *Service {
	return &Service{
		completer: completer,
		heuristic: NewHeuristicParser(v),
		vocab:     v,
		logger:    logger,
	}
}

// queryDTO mirrors the JSON object the completion service is instructed
// to emit. Only and And pass through unvalidated.
type queryDTO struct {
	Species          *string `json:"species"`
	EcosystemService *string `json:"ecosystemService"`
	PartUsed         *string `json:"partUsed"`
	Only             *bool   `json:"only"`
	And              *struct {
		EcosystemService *string `json:"ecosystemService"`
		PartUsed         *string `json:"partUsed"`
	} `json:"and"`
}

// Extract resolves the question into a query. It never fails: on any
// completion or parse error the heuristic parser takes over and the
// result reports Structured=false.
func (s *Service) Extract(ctx context.Context, question string) Extraction {
	if s.completer == nil {
		metrics.ExtractionTotal.WithLabelValues("heuristic").Inc()
		return Extraction{Query: s.heuristic.Parse(question)}
	}

	raw, err := s.completer.Complete(ctx, systemPrompt, question)
	if err != nil {
		s.logger.Debug("structured extraction failed, using heuristic parser",
			zap.Error(err))
		metrics.ExtractionTotal.WithLabelValues("heuristic").Inc()
		return Extraction{Query: s.heuristic.Parse(question)}
	}

	var dto queryDTO
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &dto); err != nil {
		s.logger.Debug("structured extraction returned malformed JSON, using heuristic parser",
			zap.String("response", raw), zap.Error(err))
		metrics.ExtractionTotal.WithLabelValues("heuristic").Inc()
		return Extraction{Query: s.heuristic.Parse(question)}
	}

	query := domain.Query{
		Species:          dto.Species,
		EcosystemService: s.vocab.Services.NormalizePtr(dto.EcosystemService),
		PartUsed:         s.vocab.Parts.NormalizePtr(dto.PartUsed),
		Only:             dto.Only,
	}
	if dto.And != nil {
		query.And = &domain.AndClause{
			EcosystemService: dto.And.EcosystemService,
			PartUsed:         dto.And.PartUsed,
		}
	}

	metrics.ExtractionTotal.WithLabelValues("structured").Inc()
	return Extraction{Query: query, Structured: true}
}

// extractJSONObject slices the response down to its outermost JSON
// object. Models wrap JSON in code fences or prose often enough that
// unmarshalling the raw text directly would throw away good extractions.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}
