package vocab

import "strings"

// Vocabulary bundles the three fixed tables used by query resolution.
// Built once at startup and read-only afterwards.
type Vocabulary struct {
	Services Table
	Parts    Table

	genericTerms []string
}

// Default returns the catalog vocabulary.
func Default() *Vocabulary {
	return &Vocabulary{
		Services:     NewTable(serviceEntries),
		Parts:        NewTable(partEntries),
		genericTerms: genericSpeciesTerms,
	}
}

// HasGenericTerm reports whether the question refers to species in
// general ("trees", "plants", ...) rather than a particular one.
func (v *Vocabulary) HasGenericTerm(question string) bool {
	q := strings.ToLower(question)
	for _, term := range v.genericTerms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

// Ecosystem-service labels as they appear in the catalog. The entry
// order doubles as scan precedence for the heuristic parser.
var serviceEntries = []Entry{
	{Canonical: "Medicinal", Synonyms: []string{
		"medicine", "medicinal use", "medicinal uses", "healing", "remedy", "remedies", "health benefit",
	}},
	{Canonical: "Food", Synonyms: []string{
		"edible", "eaten", "eat", "food source", "nutrition", "nourishment",
	}},
	{Canonical: "Raw Material", Synonyms: []string{
		"raw materials", "timber", "lumber", "fiber", "fibre", "construction", "building material",
	}},
	{Canonical: "Fodder", Synonyms: []string{
		"forage", "animal feed", "livestock feed",
	}},
	{Canonical: "Ornamental", Synonyms: []string{
		"decorative", "landscaping", "ornament",
	}},
}

var partEntries = []Entry{
	{Canonical: "fruit", Synonyms: []string{"fruits", "berries", "berry"}},
	{Canonical: "leaves", Synonyms: []string{"leaf", "foliage"}},
	{Canonical: "bark", Synonyms: []string{"barks"}},
	{Canonical: "root", Synonyms: []string{"roots"}},
	{Canonical: "seed", Synonyms: []string{"seeds", "nut", "nuts"}},
	{Canonical: "flower", Synonyms: []string{"flowers", "blossom", "blossoms"}},
	{Canonical: "wood", Synonyms: []string{"trunk", "stem"}},
	{Canonical: "resin", Synonyms: []string{"sap", "gum", "latex"}},
}

// genericSpeciesTerms detect that a question is about species in general.
// They never resolve a concrete species filter.
var genericSpeciesTerms = []string{
	"tree", "trees", "species", "plant", "plants",
}
