package craft

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/appengine-ltd/storage-hub/internal/storage"
)

// CatalogDocument is the on-disk shape of an external recipe catalog feed:
// a single YAML document listing item definitions and recipes. It is
// consumed once at session start and never written back.
type CatalogDocument struct {
	Items   []storage.ItemDef `yaml:"items"`
	Recipes []Recipe          `yaml:"recipes"`
}

// LoadCatalog reads and validates a catalog document from path. The
// returned item set and recipes plug straight into SessionConfig.
func LoadCatalog(path string) (*storage.ItemSet, []Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a catalog document and validates it against itself:
// every recipe may only reference items declared in the same document.
func ParseCatalog(data []byte) (*storage.ItemSet, []Recipe, error) {
	var doc CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(doc.Items) == 0 {
		return nil, nil, fmt.Errorf("catalog declares no items")
	}
	set := storage.NewItemSet()
	for i, def := range doc.Items {
		if err := set.Register(def); err != nil {
			return nil, nil, fmt.Errorf("catalog item %d: %w", i, err)
		}
	}
	if _, err := BuildIndex(doc.Recipes, set); err != nil {
		return nil, nil, fmt.Errorf("catalog recipes: %w", err)
	}
	return set, doc.Recipes, nil
}
