package craft

import (
	"fmt"

	"github.com/appengine-ltd/storage-hub/internal/storage"
)

// Index is the session recipe catalog, built once at session start and
// immutable afterwards. Multiple recipes may produce the same output; the
// index preserves catalog order and leaves selection to the checker.
type Index struct {
	recipes  []Recipe
	byOutput map[storage.ItemID][]int
}

// BuildIndex validates and indexes the full catalog. When items is
// non-nil, every referenced item must be registered.
func BuildIndex(recipes []Recipe, items *storage.ItemSet) (*Index, error) {
	ix := &Index{
		recipes:  make([]Recipe, len(recipes)),
		byOutput: make(map[storage.ItemID][]int),
	}
	copy(ix.recipes, recipes)
	for i, r := range ix.recipes {
		if err := r.validate(); err != nil {
			return nil, fmt.Errorf("recipe %d: %w", i, err)
		}
		if items != nil {
			if _, ok := items.Get(r.Output); !ok {
				return nil, fmt.Errorf("recipe %d: unknown output item %s", i, r.Output)
			}
			for _, ing := range r.Ingredients {
				if _, ok := items.Get(ing.Item); !ok {
					return nil, fmt.Errorf("recipe %d: unknown ingredient item %s", i, ing.Item)
				}
			}
		}
		ix.byOutput[r.Output] = append(ix.byOutput[r.Output], i)
	}
	return ix, nil
}

// RecipesFor returns the producing recipes for item in catalog order.
func (ix *Index) RecipesFor(item storage.ItemID) []Recipe {
	if ix == nil {
		return nil
	}
	idxs := ix.byOutput[item]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]Recipe, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, ix.recipes[i])
	}
	return out
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.recipes)
}

// All returns the catalog in order. The slice is a copy.
func (ix *Index) All() []Recipe {
	if ix == nil {
		return nil
	}
	out := make([]Recipe, len(ix.recipes))
	copy(out, ix.recipes)
	return out
}
