package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `[
		{"species":"Quercus robur","family":"Fagaceae",
		 "ecosystemServices":["Raw Material"],"partsUsed":["wood","bark"],
		 "relatedTraits":["deciduous"],"embedding":[0.1,0.2,0.3]},
		{"species":"Ficus carica","family":"Moraceae",
		 "ecosystemServices":["Food","Medicinal"],"partsUsed":["fruit"],
		 "relatedTraits":[],"embedding":[0.4,0.5,0.6]}
	]`)

	store, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", store.Len())
	}
	if store.Dimensions() != 3 {
		t.Errorf("expected 3 dims, got %d", store.Dimensions())
	}
	if store.All()[0].Species != "Quercus robur" {
		t.Errorf("unexpected first species: %q", store.All()[0].Species)
	}
}

func TestLoad_Empty(t *testing.T) {
	path := writeCatalog(t, `[]`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for empty catalog")
	}
}

func TestLoad_MissingSpeciesName(t *testing.T) {
	path := writeCatalog(t, `[{"species":"","embedding":[0.1]}]`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing species name")
	}
}

func TestLoad_DimensionMismatch(t *testing.T) {
	path := writeCatalog(t, `[
		{"species":"A","embedding":[0.1,0.2]},
		{"species":"B","embedding":[0.1]}
	]`)

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for inconsistent dimensions")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
