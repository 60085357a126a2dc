package craft

import (
	"os"
	"path/filepath"
	"testing"
)

const testCatalogYAML = `
items:
  - id: wood
    name: Wood
  - id: gel
    name: Gel
  - id: torch
    name: Torch
    max_stack: 99
recipes:
  - output: torch
    output_count: 3
    ingredients:
      - item: wood
        count: 1
      - item: gel
        count: 1
`

func TestParseCatalog(t *testing.T) {
	items, recipes, err := ParseCatalog([]byte(testCatalogYAML))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	def, ok := items.Get("torch")
	if !ok {
		t.Fatalf("expected torch to be registered")
	}
	if def.MaxStack != 99 {
		t.Fatalf("expected max stack 99, got %d", def.MaxStack)
	}
	if len(recipes) != 1 {
		t.Fatalf("expected 1 recipe, got %d", len(recipes))
	}
	r := recipes[0]
	if r.Output != "torch" || r.OutputCount != 3 || len(r.Ingredients) != 2 {
		t.Fatalf("unexpected recipe: %+v", r)
	}
}

func TestParseCatalogRejectsUndeclaredItem(t *testing.T) {
	doc := `
items:
  - id: wood
recipes:
  - output: torch
    output_count: 1
    ingredients:
      - item: wood
        count: 1
`
	if _, _, err := ParseCatalog([]byte(doc)); err == nil {
		t.Fatalf("expected recipe referencing undeclared item to fail")
	}
}

func TestParseCatalogRejectsEmptyAndMalformed(t *testing.T) {
	if _, _, err := ParseCatalog([]byte("recipes: []")); err == nil {
		t.Fatalf("expected catalog without items to fail")
	}
	if _, _, err := ParseCatalog([]byte("items: {not a list}")); err == nil {
		t.Fatalf("expected malformed document to fail")
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(testCatalogYAML), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	items, recipes, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if items == nil || len(recipes) != 1 {
		t.Fatalf("unexpected load result: %v items, %d recipes", items, len(recipes))
	}
	if _, _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}
