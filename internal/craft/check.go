package craft

import (
	"errors"
	"fmt"

	"github.com/appengine-ltd/storage-hub/internal/storage"
)

// Availability is a merged read-only view of item counts across network
// storage and the player inventory. Checkers copy it; they never hand the
// caller's map to mutation paths.
type Availability map[storage.ItemID]int

func (a Availability) clone() Availability {
	out := make(Availability, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// MergedAvailability snapshots current counts from both pools.
func MergedAvailability(p storage.Provider, inv *storage.Inventory) Availability {
	out := make(Availability)
	if p != nil {
		for _, snap := range p.Snapshots() {
			out[snap.Item] += snap.Count
		}
	}
	if inv != nil {
		for _, snap := range inv.Snapshot() {
			out[snap.Item] += snap.Count
		}
	}
	return out
}

// Shortage reports one unmet ingredient requirement.
type Shortage struct {
	Item storage.ItemID
	Need int
	Have int
}

// Result is the outcome of a feasibility check. Ordinary "can't craft"
// outcomes are not errors: Feasible is false and Err carries the taxonomy
// sentinel describing why.
type Result struct {
	Feasible  bool
	Shortages []Shortage
	Err       error
}

const (
	DefaultMaxDepth      = 64
	DefaultMaxExpansions = 10000
)

// Checker answers "can N units of X be produced from what is available
// right now". It is pure: it never mutates live storage or the supplied
// availability view.
type Checker struct {
	index         *Index
	maxDepth      int
	maxExpansions int
}

func NewChecker(index *Index) *Checker {
	return &Checker{
		index:         index,
		maxDepth:      DefaultMaxDepth,
		maxExpansions: DefaultMaxExpansions,
	}
}

// CanCraft runs a full recursive feasibility analysis against a local copy
// of avail. It is conservative: a Feasible result is only returned when
// executing the corresponding plan against the same starting counts would
// succeed.
func (c *Checker) CanCraft(item storage.ItemID, qty int, avail Availability, env Env) Result {
	if c == nil || c.index == nil {
		return Result{Err: fmt.Errorf("checker not initialized")}
	}
	if qty <= 0 {
		return Result{Err: fmt.Errorf("quantity must be positive, got %d", qty)}
	}
	ex := newExpander(c.index, env, avail, c.maxDepth, c.maxExpansions)
	err := ex.produce(item, qty, make(map[storage.ItemID]bool), 0)
	if err != nil {
		return Result{Shortages: ex.shortages, Err: err}
	}
	return Result{Feasible: true}
}

// plannedStep is one recipe application at a multiplied repeat count,
// ordered leaves-first by construction.
type plannedStep struct {
	recipe Recipe
	repeat int
}

// expander carries the local mutable counts copy through the recursion.
// Sibling branches decrement the same pool, so shared raw ingredients are
// never double-counted.
type expander struct {
	index         *Index
	env           Env
	pool          Availability
	steps         []plannedStep
	shortages     []Shortage
	expansions    int
	maxDepth      int
	maxExpansions int
}

func newExpander(index *Index, env Env, avail Availability, maxDepth, maxExpansions int) *expander {
	return &expander{
		index:         index,
		env:           env,
		pool:          avail.clone(),
		maxDepth:      maxDepth,
		maxExpansions: maxExpansions,
	}
}

// produce sources qty units of item: first from the pool, then by
// expanding producing recipes. On success the required craft steps have
// been appended (children before parents) and the pool reflects every
// consumption and surplus. On failure the pool and steps are unchanged.
func (e *expander) produce(item storage.ItemID, qty int, visited map[storage.ItemID]bool, depth int) error {
	if have := e.pool[item]; have > 0 {
		take := min(have, qty)
		e.pool[item] -= take
		qty -= take
	}
	if qty == 0 {
		return nil
	}
	if depth > e.maxDepth {
		return fmt.Errorf("%w: depth %d", ErrExpansionBudget, depth)
	}
	if visited[item] {
		return fmt.Errorf("%w via %s", ErrCyclicRecipe, item)
	}

	recipes := e.index.RecipesFor(item)
	if len(recipes) == 0 {
		e.recordShortage(item, qty)
		return fmt.Errorf("%w: %d more %s needed", ErrInsufficientMaterials, qty, item)
	}

	visited[item] = true
	defer delete(visited, item)

	blocked := 0
	for _, recipe := range recipes {
		e.expansions++
		if e.expansions > e.maxExpansions {
			return fmt.Errorf("%w: %d expansions", ErrExpansionBudget, e.expansions)
		}
		if !e.env.Permits(recipe) {
			blocked++
			continue
		}

		repeat := ceilDiv(qty, recipe.OutputCount)
		savedPool := e.pool.clone()
		savedSteps := len(e.steps)

		err := e.applyRecipe(recipe, repeat, visited, depth)
		if err == nil {
			e.steps = append(e.steps, plannedStep{recipe: recipe, repeat: repeat})
			// Surplus from rounding up goes back to the shared pool.
			e.pool[item] += repeat*recipe.OutputCount - qty
			return nil
		}
		e.pool = savedPool
		e.steps = e.steps[:savedSteps]
		// A cycle or a blown budget is a hard stop, not a reason to try the
		// next candidate recipe.
		if errors.Is(err, ErrCyclicRecipe) || errors.Is(err, ErrExpansionBudget) {
			return err
		}
	}

	if blocked == len(recipes) {
		return fmt.Errorf("%w for %s", ErrStationMissing, item)
	}
	e.recordShortage(item, qty)
	return fmt.Errorf("%w: cannot produce %d %s", ErrInsufficientMaterials, qty, item)
}

func (e *expander) applyRecipe(recipe Recipe, repeat int, visited map[storage.ItemID]bool, depth int) error {
	for _, ing := range recipe.Ingredients {
		if err := e.produce(ing.Item, ing.Count*repeat, visited, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (e *expander) recordShortage(item storage.ItemID, missing int) {
	for i := range e.shortages {
		if e.shortages[i].Item == item {
			e.shortages[i].Need += missing
			return
		}
	}
	e.shortages = append(e.shortages, Shortage{Item: item, Need: missing, Have: e.pool[item]})
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
