package extract

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.uber.org/zap"

	"github.com/canopyhq/arborq/internal/domain/vocab"
	"github.com/canopyhq/arborq/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterAIMetrics()
	os.Exit(m.Run())
}

type mockCompleter struct {
	response string
	err      error
	called   bool
}

func (m *mockCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	m.called = true
	return m.response, m.err
}

func newService(c Completer) *Service {
	return New(c, vocab.Default(), zap.NewNop())
}

func TestExtract_Structured(t *testing.T) {
	completer := &mockCompleter{
		response: `{"species":null,"ecosystemService":"healing","partUsed":"fruits","only":null,"and":null}`,
	}
	svc := newService(completer)

	ext := svc.Extract(context.Background(), "which healing trees have fruits?")

	if !ext.Structured {
		t.Fatal("expected structured path")
	}
	if ext.Query.EcosystemService == nil || *ext.Query.EcosystemService != "Medicinal" {
		t.Errorf("expected normalized Medicinal, got %v", ext.Query.EcosystemService)
	}
	if ext.Query.PartUsed == nil || *ext.Query.PartUsed != "fruit" {
		t.Errorf("expected normalized fruit, got %v", ext.Query.PartUsed)
	}
}

func TestExtract_StructuredWithAndClause(t *testing.T) {
	completer := &mockCompleter{
		response: `{"species":null,"ecosystemService":"Medicinal","partUsed":null,"only":null,
			"and":{"ecosystemService":null,"partUsed":"bark"}}`,
	}
	svc := newService(completer)

	ext := svc.Extract(context.Background(), "medicinal trees and bark")

	if ext.Query.And == nil || ext.Query.And.PartUsed == nil || *ext.Query.And.PartUsed != "bark" {
		t.Fatalf("expected raw and.partUsed=bark, got %+v", ext.Query.And)
	}
}

func TestExtract_FencedJSONStillParses(t *testing.T) {
	completer := &mockCompleter{
		response: "```json\n{\"species\":null,\"ecosystemService\":\"Food\",\"partUsed\":null,\"only\":null,\"and\":null}\n```",
	}
	svc := newService(completer)

	ext := svc.Extract(context.Background(), "edible trees")

	if !ext.Structured {
		t.Fatal("expected structured path despite code fences")
	}
	if ext.Query.EcosystemService == nil || *ext.Query.EcosystemService != "Food" {
		t.Errorf("expected Food, got %v", ext.Query.EcosystemService)
	}
}

func TestExtract_CompletionErrorFallsBack(t *testing.T) {
	completer := &mockCompleter{err: errors.New("provider down")}
	svc := newService(completer)

	ext := svc.Extract(context.Background(), "Which trees have medicinal uses?")

	if ext.Structured {
		t.Fatal("expected heuristic fallback")
	}
	if ext.Query.EcosystemService == nil || *ext.Query.EcosystemService != "Medicinal" {
		t.Errorf("expected heuristic Medicinal, got %v", ext.Query.EcosystemService)
	}
}

func TestExtract_MalformedJSONFallsBack(t *testing.T) {
	completer := &mockCompleter{response: "sorry, I cannot help with that"}
	svc := newService(completer)

	ext := svc.Extract(context.Background(), "Which trees have useful bark?")

	if ext.Structured {
		t.Fatal("expected heuristic fallback on malformed JSON")
	}
	if ext.Query.PartUsed == nil || *ext.Query.PartUsed != "bark" {
		t.Errorf("expected heuristic bark, got %v", ext.Query.PartUsed)
	}
}

func TestExtract_NilCompleterUsesHeuristic(t *testing.T) {
	svc := newService(nil)

	ext := svc.Extract(context.Background(), "Which trees have edible fruits?")

	if ext.Structured {
		t.Fatal("expected heuristic path with extraction disabled")
	}
	if ext.Query.EcosystemService == nil || *ext.Query.EcosystemService != "Food" {
		t.Errorf("expected Food, got %v", ext.Query.EcosystemService)
	}
}
