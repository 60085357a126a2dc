package craft

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/storage-hub/internal/storage"
)

type StationID string

// Ingredient is one input requirement of a recipe.
type Ingredient struct {
	Item  storage.ItemID `yaml:"item"`
	Count int            `yaml:"count"`
}

// Recipe maps ingredients (plus required stations and optional unlock
// conditions) to an output stack. Immutable once indexed.
type Recipe struct {
	Output      storage.ItemID `yaml:"output"`
	OutputCount int            `yaml:"output_count"`
	Ingredients []Ingredient   `yaml:"ingredients"`
	Stations    []StationID    `yaml:"stations,omitempty"`
	Conditions  []string       `yaml:"conditions,omitempty"`
}

func (r Recipe) validate() error {
	if strings.TrimSpace(string(r.Output)) == "" {
		return fmt.Errorf("recipe output must not be empty")
	}
	if r.OutputCount <= 0 {
		return fmt.Errorf("recipe for %s: output count must be positive", r.Output)
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("recipe for %s: at least one ingredient required", r.Output)
	}
	seen := make(map[storage.ItemID]struct{}, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if strings.TrimSpace(string(ing.Item)) == "" {
			return fmt.Errorf("recipe for %s: ingredient item must not be empty", r.Output)
		}
		if ing.Count <= 0 {
			return fmt.Errorf("recipe for %s: ingredient %s count must be positive", r.Output, ing.Item)
		}
		if _, dup := seen[ing.Item]; dup {
			return fmt.Errorf("recipe for %s: duplicate ingredient %s", r.Output, ing.Item)
		}
		seen[ing.Item] = struct{}{}
	}
	return nil
}

// Env is the crafting environment a feasibility check runs against:
// stations reachable from the access point and session unlock flags.
type Env struct {
	Stations map[StationID]bool
	Flags    map[string]bool
}

func NewEnv() Env {
	return Env{
		Stations: make(map[StationID]bool),
		Flags:    make(map[string]bool),
	}
}

func (e Env) HasStation(id StationID) bool {
	return e.Stations[id]
}

// Permits reports whether every station and condition of the recipe is
// satisfied.
func (e Env) Permits(r Recipe) bool {
	for _, st := range r.Stations {
		if !e.Stations[st] {
			return false
		}
	}
	for _, cond := range r.Conditions {
		if !e.Flags[cond] {
			return false
		}
	}
	return true
}
