// Package catalog loads the precomputed species catalog from disk.
// The offline ingestion jobs own the file format; this store only reads it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/canopyhq/arborq/internal/domain"
)

// Store holds the immutable species catalog for the process lifetime.
type Store struct {
	species    []domain.Species
	dimensions int
}

// Load reads the catalog JSON file and validates it. Every entry must
// carry a non-empty species name and an embedding of the same
// dimensionality as the rest of the catalog.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var species []domain.Species
	if err := json.Unmarshal(data, &species); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(species) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", path)
	}

	dims := len(species[0].Embedding)
	for i, sp := range species {
		if sp.Species == "" {
			return nil, fmt.Errorf("catalog entry %d has no species name", i)
		}
		if len(sp.Embedding) == 0 {
			return nil, fmt.Errorf("catalog entry %q has no embedding", sp.Species)
		}
		if len(sp.Embedding) != dims {
			return nil, fmt.Errorf("catalog entry %q has %d embedding dims, expected %d",
				sp.Species, len(sp.Embedding), dims)
		}
	}

	return &Store{species: species, dimensions: dims}, nil
}

// All returns every catalog entry in load order. Callers must not mutate
// the returned slice.
func (s *Store) All() []domain.Species {
	return s.species
}

// Len returns the catalog size.
func (s *Store) Len() int {
	return len(s.species)
}

// Dimensions returns the embedding dimensionality shared by the catalog.
func (s *Store) Dimensions() int {
	return s.dimensions
}
