package resolve

import (
	"context"

	"github.com/canopyhq/arborq/internal/domain"
	"github.com/canopyhq/arborq/internal/usecase/extract"
)

// Extractor turns a question into a structured query. It never fails;
// the result reports which path produced the query.
type Extractor interface {
	Extract(ctx context.Context, question string) extract.Extraction
}

// Ranker scores the catalog against the question.
type Ranker interface {
	Rank(ctx context.Context, question string, catalog []domain.Species) ([]domain.ScoredSpecies, error)
}

// CatalogReader exposes the immutable species catalog.
type CatalogReader interface {
	All() []domain.Species
}

// ImageFinder looks up occurrence photos for a species. Failures degrade
// to an empty image list and never fail the request.
type ImageFinder interface {
	ImagesFor(ctx context.Context, species string) ([]string, error)
}
