package resolve

import (
	"strings"

	"github.com/canopyhq/arborq/internal/domain"
)

// Combine applies the structured query to the catalog. The exclusivity
// modifier selects the branch: exclusive queries filter the raw catalog
// in load order, everything else filters the ranked catalog in rank
// order. The "and" clause narrows whichever set the branch produced.
func Combine(q domain.Query, catalog []domain.Species, ranked []domain.ScoredSpecies) []domain.ScoredSpecies {
	var out []domain.ScoredSpecies

	if q.Exclusive() {
		for _, sp := range catalog {
			if matchesExclusive(q, sp) {
				out = append(out, domain.ScoredSpecies{Record: sp})
			}
		}
	} else {
		for _, sc := range ranked {
			if matchesDefault(q, sc.Record) {
				out = append(out, sc)
			}
		}
	}

	if q.And != nil {
		narrowed := make([]domain.ScoredSpecies, 0, len(out))
		for _, sc := range out {
			if matchesAnd(*q.And, sc.Record) {
				narrowed = append(narrowed, sc)
			}
		}
		out = narrowed
	}

	return out
}

// matchesExclusive requires every set field to be the entry's sole value
// for that attribute. A query with neither field set matches everything.
func matchesExclusive(q domain.Query, sp domain.Species) bool {
	if q.EcosystemService != nil {
		if len(sp.EcosystemServices) != 1 || !strings.EqualFold(sp.EcosystemServices[0], *q.EcosystemService) {
			return false
		}
	}
	if q.PartUsed != nil {
		if len(sp.PartsUsed) != 1 || !strings.EqualFold(sp.PartsUsed[0], *q.PartUsed) {
			return false
		}
	}
	return true
}

// matchesDefault is a logical AND over the active predicates only;
// absent fields always pass. Service and part match by case-insensitive
// membership containment, not exact equality.
func matchesDefault(q domain.Query, sp domain.Species) bool {
	if q.Species != nil && !containsFold(sp.Species, *q.Species) {
		return false
	}
	if q.EcosystemService != nil && !anyContainsFold(sp.EcosystemServices, *q.EcosystemService) {
		return false
	}
	if q.PartUsed != nil && !anyContainsFold(sp.PartsUsed, *q.PartUsed) {
		return false
	}
	return true
}

// matchesAnd applies the conjunction clause with the default branch's
// containment semantics, on the raw (non-canonicalized) values.
func matchesAnd(and domain.AndClause, sp domain.Species) bool {
	if and.EcosystemService != nil && !anyContainsFold(sp.EcosystemServices, *and.EcosystemService) {
		return false
	}
	if and.PartUsed != nil && !anyContainsFold(sp.PartsUsed, *and.PartUsed) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyContainsFold(values []string, substr string) bool {
	for _, v := range values {
		if containsFold(v, substr) {
			return true
		}
	}
	return false
}
