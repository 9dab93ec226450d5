package domain

// Query is the structured form of a natural-language question.
// Nil pointer fields mean "not mentioned".
type Query struct {
	Species          *string
	EcosystemService *string
	PartUsed         *string
	Only             *bool
	And              *AndClause
}

// AndClause narrows a query by an additional service or part.
type AndClause struct {
	EcosystemService *string
	PartUsed         *string
}

// Exclusive reports whether the question demanded sole-use matching.
func (q Query) Exclusive() bool {
	return q.Only != nil && *q.Only
}
