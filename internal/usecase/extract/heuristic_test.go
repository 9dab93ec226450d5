package extract

import (
	"testing"

	"github.com/canopyhq/arborq/internal/domain/vocab"
)

func newParser() *HeuristicParser {
	return NewHeuristicParser(vocab.Default())
}

func TestParse_ServiceSynonym(t *testing.T) {
	q := newParser().Parse("Which trees have medicinal uses?")

	if q.EcosystemService == nil || *q.EcosystemService != "Medicinal" {
		t.Fatalf("expected Medicinal, got %v", q.EcosystemService)
	}
	if q.PartUsed != nil {
		t.Errorf("expected no part filter, got %v", *q.PartUsed)
	}
}

func TestParse_ServiceTakesPrecedenceOverPart(t *testing.T) {
	// Question contains both an edible (Food) synonym and a part synonym.
	q := newParser().Parse("Which trees have edible fruits?")

	if q.EcosystemService == nil || *q.EcosystemService != "Food" {
		t.Fatalf("expected Food, got %v", q.EcosystemService)
	}
	if q.PartUsed != nil {
		t.Errorf("part must stay unset when a service matched, got %q", *q.PartUsed)
	}
}

func TestParse_PartOnlyWhenNoService(t *testing.T) {
	q := newParser().Parse("Which trees have useful bark?")

	if q.EcosystemService != nil {
		t.Fatalf("expected no service, got %q", *q.EcosystemService)
	}
	if q.PartUsed == nil || *q.PartUsed != "bark" {
		t.Fatalf("expected bark, got %v", q.PartUsed)
	}
}

func TestParse_ExclusivityPhrase(t *testing.T) {
	q := newParser().Parse("Show me trees that only the leaves are used.")

	if q.Only == nil || !*q.Only {
		t.Fatal("expected only=true")
	}
	if q.PartUsed == nil || *q.PartUsed != "leaves" {
		t.Fatalf("expected leaves, got %v", q.PartUsed)
	}
	if q.Species != nil {
		t.Errorf("expected nil species for a generic question, got %q", *q.Species)
	}
}

func TestParse_ExclusivityNormalizesCapture(t *testing.T) {
	// "leaf" is a synonym; the captured token normalizes to "leaves".
	q := newParser().Parse("trees where only the leaf is used")

	if q.Only == nil || !*q.Only {
		t.Fatal("expected only=true")
	}
	if q.PartUsed == nil || *q.PartUsed != "leaves" {
		t.Fatalf("expected normalized leaves, got %v", q.PartUsed)
	}
}

func TestParse_ExclusivityKeepsRawUnknownCapture(t *testing.T) {
	q := newParser().Parse("species where only the cambium is used")

	if q.Only == nil || !*q.Only {
		t.Fatal("expected only=true")
	}
	if q.PartUsed == nil || *q.PartUsed != "cambium" {
		t.Fatalf("expected raw cambium, got %v", q.PartUsed)
	}
}

func TestParse_ExclusivityAlternatePhrasings(t *testing.T) {
	phrasings := []string{
		"trees where bark is the only part used",
		"trees whose parts used is only bark",
		"trees where the only value in partsused is bark",
	}
	for _, phrase := range phrasings {
		q := newParser().Parse(phrase)
		if q.Only == nil || !*q.Only {
			t.Errorf("%q: expected only=true", phrase)
			continue
		}
		if q.PartUsed == nil || *q.PartUsed != "bark" {
			t.Errorf("%q: expected bark, got %v", phrase, q.PartUsed)
		}
	}
}

func TestParse_NoMatches(t *testing.T) {
	q := newParser().Parse("tell me something interesting")

	if q.EcosystemService != nil || q.PartUsed != nil || q.Only != nil || q.Species != nil {
		t.Errorf("expected empty query, got %+v", q)
	}
}
