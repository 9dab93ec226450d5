package extract

import (
	"regexp"
	"strings"

	"github.com/canopyhq/arborq/internal/domain"
	"github.com/canopyhq/arborq/internal/domain/vocab"
)

// exclusivityPatterns match phrasings that pin a single part as the only
// one used. The first match wins; the capture is the part token.
var exclusivityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)only\s+(?:the\s+)?([a-z]+)\s+(?:is|are)\s+used`),
	regexp.MustCompile(`(?i)([a-z]+)\s+(?:is|are)\s+the\s+only\s+part`),
	regexp.MustCompile(`(?i)parts?\s+used\s+is\s+only\s+(?:the\s+)?([a-z]+)`),
	regexp.MustCompile(`(?i)the\s+only\s+value\s+in\s+parts\s*used\s+is\s+([a-z]+)`),
}

// HeuristicParser derives a structured query from a question without any
// external call. It is the fallback path when structured extraction is
// disabled or fails.
type HeuristicParser struct {
	vocab *vocab.Vocabulary
}

// NewHeuristicParser creates a heuristic parser over the catalog vocabulary.
func NewHeuristicParser(v *vocab.Vocabulary) *HeuristicParser {
	return &HeuristicParser{vocab: v}
}

// Parse resolves the question into a query. Service terms take
// precedence over part terms: service-type questions are the more common
// and the more specific in this domain. Exclusivity detection runs
// independently of either branch.
func (p *HeuristicParser) Parse(question string) domain.Query {
	var q domain.Query
	lowered := strings.ToLower(question)

	if service, ok := scanTable(lowered, p.vocab.Services); ok {
		q.EcosystemService = &service
	} else if part, ok := scanTable(lowered, p.vocab.Parts); ok {
		q.PartUsed = &part
	}

	if p.vocab.HasGenericTerm(question) {
		// The question is about species in general; restate the default
		// explicitly, mirroring extractor output.
		q.Species = nil
	}

	for _, pattern := range exclusivityPatterns {
		m := pattern.FindStringSubmatch(question)
		if m == nil {
			continue
		}
		only := true
		q.Only = &only
		part := p.vocab.Parts.Normalize(m[1])
		q.PartUsed = &part
		break
	}

	return q
}

// scanTable returns the canonical label of the first entry whose label or
// synonym occurs in the lowered question.
func scanTable(lowered string, t vocab.Table) (string, bool) {
	for _, e := range t.Entries() {
		if strings.Contains(lowered, strings.ToLower(e.Canonical)) {
			return e.Canonical, true
		}
		for _, syn := range e.Synonyms {
			if strings.Contains(lowered, strings.ToLower(syn)) {
				return e.Canonical, true
			}
		}
	}
	return "", false
}
