// Package rank scores the catalog against a question embedding.
package rank

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/canopyhq/arborq/internal/domain"
)

// Service ranks catalog entries by cosine similarity to the question.
type Service struct {
	embed domain.Embedder
}

// New creates a ranking service.
func New(embed domain.Embedder) *Service {
	return &Service{embed: embed}
}

// Rank embeds the raw question and returns a similarity-sorted copy of
// the catalog, descending. Ties keep catalog order (stable sort) so two
// runs over the same inputs produce identical orderings. An embedding
// failure is fatal to the request.
func (s *Service) Rank(ctx context.Context, question string, catalog []domain.Species) ([]domain.ScoredSpecies, error) {
	result, err := s.embed.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}

	query := result.Embedding
	scored := make([]domain.ScoredSpecies, len(catalog))
	for i, sp := range catalog {
		if len(sp.Embedding) != len(query) {
			return nil, fmt.Errorf("embedding dimension mismatch: question has %d, catalog entry %q has %d",
				len(query), sp.Species, len(sp.Embedding))
		}
		scored[i] = domain.ScoredSpecies{
			Record:     sp,
			Similarity: cosineSimilarity(query, sp.Embedding),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	return scored, nil
}

// cosineSimilarity computes dot(a,b) / (|a|*|b|). A zero-magnitude
// vector scores 0 rather than dividing by zero.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
