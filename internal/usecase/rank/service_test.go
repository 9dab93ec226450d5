package rank

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/canopyhq/arborq/internal/domain"
)

type mockEmbedder struct {
	vec []float32
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

func species(name string, embedding ...float32) domain.Species {
	return domain.Species{Species: name, Embedding: embedding}
}

func TestRank_SortsDescending(t *testing.T) {
	svc := New(&mockEmbedder{vec: []float32{1, 0}})
	catalog := []domain.Species{
		species("orthogonal", 0, 1),
		species("aligned", 1, 0),
		species("diagonal", 1, 1),
	}

	ranked, err := svc.Rank(context.Background(), "question", catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ranked[0].Record.Species != "aligned" {
		t.Errorf("expected aligned first, got %q", ranked[0].Record.Species)
	}
	if ranked[1].Record.Species != "diagonal" {
		t.Errorf("expected diagonal second, got %q", ranked[1].Record.Species)
	}
	if ranked[2].Record.Species != "orthogonal" {
		t.Errorf("expected orthogonal last, got %q", ranked[2].Record.Species)
	}
	if math.Abs(ranked[0].Similarity-1.0) > 1e-9 {
		t.Errorf("expected similarity 1.0, got %f", ranked[0].Similarity)
	}
}

func TestRank_StableTieBreak(t *testing.T) {
	svc := New(&mockEmbedder{vec: []float32{1, 0}})
	catalog := []domain.Species{
		species("first", 0, 1),
		species("second", 0, 1),
		species("third", 0, 1),
	}

	for run := 0; run < 3; run++ {
		ranked, err := svc.Rank(context.Background(), "question", catalog)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i, want := range []string{"first", "second", "third"} {
			if ranked[i].Record.Species != want {
				t.Fatalf("run %d: tie order not stable at %d: got %q", run, i, ranked[i].Record.Species)
			}
		}
	}
}

func TestRank_DoesNotMutateCatalogOrder(t *testing.T) {
	svc := New(&mockEmbedder{vec: []float32{1, 0}})
	catalog := []domain.Species{
		species("low", 0, 1),
		species("high", 1, 0),
	}

	if _, err := svc.Rank(context.Background(), "question", catalog); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if catalog[0].Species != "low" || catalog[1].Species != "high" {
		t.Error("rank must sort a copy, not the catalog")
	}
}

func TestRank_EmbedFailureIsFatal(t *testing.T) {
	svc := New(&mockEmbedder{err: errors.New("provider down")})

	if _, err := svc.Rank(context.Background(), "question", []domain.Species{species("a", 1)}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRank_DimensionMismatch(t *testing.T) {
	svc := New(&mockEmbedder{vec: []float32{1, 0, 0}})

	_, err := svc.Rank(context.Background(), "question", []domain.Species{species("a", 1, 0)})
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	if got := cosineSimilarity([]float32{0, 0}, []float32{1, 1}); got != 0 {
		t.Errorf("expected 0 for zero vector, got %f", got)
	}
}
