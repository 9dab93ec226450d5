package domain

// Species is one catalog record with its precomputed embedding.
type Species struct {
	Species           string    `json:"species"`
	Family            string    `json:"family"`
	EcosystemServices []string  `json:"ecosystemServices"`
	PartsUsed         []string  `json:"partsUsed"`
	RelatedTraits     []string  `json:"relatedTraits"`
	Embedding         []float32 `json:"embedding"`
}

// ScoredSpecies pairs a catalog record with its similarity to the
// question. Images is populated by enrichment, nil until then.
type ScoredSpecies struct {
	Record     Species
	Similarity float64
	Images     []string
}
