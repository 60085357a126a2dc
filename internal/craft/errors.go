package craft

import (
	"errors"
	"fmt"
)

// Every failure mode in this package is a typed value matched with
// errors.Is; nothing here is fatal to the host process.
var (
	// ErrInsufficientMaterials means required items are not available in
	// sufficient quantity, even after expanding sub-recipes.
	ErrInsufficientMaterials = errors.New("insufficient materials")
	// ErrCyclicRecipe means the recipe graph reachable from the requested
	// item contains a cycle.
	ErrCyclicRecipe = errors.New("cyclic recipe dependency")
	// ErrStationMissing means a required crafting station is not present.
	ErrStationMissing = errors.New("required crafting station missing")
	// ErrNoCapacity means the crafted output could not be deposited
	// anywhere.
	ErrNoCapacity = errors.New("no storage capacity for output")
	// ErrWriteConflict means live state diverged from the plan's
	// assumptions between planning and execution.
	ErrWriteConflict = errors.New("storage state changed since planning")
	// ErrExpansionBudget means recipe expansion hit the depth or total
	// expansion bound before resolving.
	ErrExpansionBudget = errors.New("recipe expansion budget exceeded")
)

// PartialCraftError reports an execution that produced fewer than the
// requested output units before a step failed. Completed steps are real
// and were not rolled back.
type PartialCraftError struct {
	Produced  int
	Requested int
	Step      int
	Cause     error
}

func (e *PartialCraftError) Error() string {
	return fmt.Sprintf("craft stopped at step %d with %d/%d produced: %v",
		e.Step, e.Produced, e.Requested, e.Cause)
}

func (e *PartialCraftError) Unwrap() error {
	return e.Cause
}
