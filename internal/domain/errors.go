package domain

import "errors"

var (
	// ErrEmptyQuestion signals a missing or blank question.
	ErrEmptyQuestion = errors.New("question is required")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrCompletionProviderError signals a completion provider failure.
	ErrCompletionProviderError = errors.New("completion provider error")
	// ErrCatalogUnavailable signals that the species catalog could not be served.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
