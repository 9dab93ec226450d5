package resolve

import "strings"

// countPhrases mark a question as asking for cardinality only.
var countPhrases = []string{"how many", "number of", "count"}

// isCountQuestion reports whether the caller wants a count instead of
// the result set. Count responses skip per-result enrichment entirely.
func isCountQuestion(question string) bool {
	q := strings.ToLower(question)
	for _, phrase := range countPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}
