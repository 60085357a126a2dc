package craft

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/appengine-ltd/storage-hub/internal/storage"
)

// IngredientSource records, for one ingredient of one step, how much the
// executor should pull from network storage versus the player inventory.
type IngredientSource struct {
	Item          storage.ItemID
	FromStorage   int
	FromInventory int
}

func (s IngredientSource) Total() int {
	return s.FromStorage + s.FromInventory
}

// Step is one recipe application within a plan.
type Step struct {
	Recipe  Recipe
	Repeat  int
	Sources []IngredientSource
}

// OutputCount is the number of units this step produces.
func (s Step) OutputCount() int {
	return s.Repeat * s.Recipe.OutputCount
}

// Plan is an ordered, leaves-first sequence of craft steps: every
// ingredient consumed by step k is either present before any step runs or
// produced by an earlier step.
type Plan struct {
	ID       uuid.UUID
	Target   storage.ItemID
	Quantity int
	Steps    []Step
}

// ExecutionResult reports exactly what a plan execution achieved.
// Completed steps are never rolled back; Err is nil only on full success.
type ExecutionResult struct {
	PlanID         uuid.UUID
	Target         storage.ItemID
	Requested      int
	Produced       int
	StepsCompleted int
	Err            error
}

// Crafter builds plans from feasibility analysis and drives their
// execution against live storage.
type Crafter struct {
	index     *Index
	provider  storage.Provider
	inventory *storage.Inventory
	exec      *Executor
	log       *slog.Logger

	maxDepth      int
	maxExpansions int
}

func NewCrafter(index *Index, provider storage.Provider, inv *storage.Inventory, items *storage.ItemSet, log *slog.Logger) *Crafter {
	if log == nil {
		log = slog.Default()
	}
	return &Crafter{
		index:         index,
		provider:      provider,
		inventory:     inv,
		exec:          NewExecutor(provider, inv, items, log),
		log:           log,
		maxDepth:      DefaultMaxDepth,
		maxExpansions: DefaultMaxExpansions,
	}
}

// BuildPlan reruns the checker's expansion against live counts and splits
// every ingredient requirement into storage and inventory portions,
// storage first. Sharing the expansion code path with the checker is what
// keeps the two from ever disagreeing.
func (c *Crafter) BuildPlan(item storage.ItemID, qty int, env Env) (Plan, error) {
	if c == nil || c.index == nil {
		return Plan{}, fmt.Errorf("crafter not initialized")
	}
	if qty <= 0 {
		return Plan{}, fmt.Errorf("quantity must be positive, got %d", qty)
	}

	storageCounts := make(map[storage.ItemID]int)
	if c.provider != nil {
		for _, snap := range c.provider.Snapshots() {
			storageCounts[snap.Item] += snap.Count
		}
	}
	invCounts := make(map[storage.ItemID]int)
	if c.inventory != nil {
		for _, snap := range c.inventory.Snapshot() {
			invCounts[snap.Item] += snap.Count
		}
	}
	avail := make(Availability, len(storageCounts)+len(invCounts))
	for k, v := range storageCounts {
		avail[k] += v
	}
	for k, v := range invCounts {
		avail[k] += v
	}

	ex := newExpander(c.index, env, avail, c.maxDepth, c.maxExpansions)
	if err := ex.produce(item, qty, make(map[storage.ItemID]bool), 0); err != nil {
		return Plan{}, err
	}

	plan := Plan{
		ID:       uuid.New(),
		Target:   item,
		Quantity: qty,
		Steps:    make([]Step, 0, len(ex.steps)),
	}
	// Simulate execution over the same snapshot to assign sources. Outputs
	// are deposited storage-first, so later steps see intermediates there.
	for _, ps := range ex.steps {
		step := Step{Recipe: ps.recipe, Repeat: ps.repeat}
		for _, ing := range ps.recipe.Ingredients {
			need := ing.Count * ps.repeat
			fromStorage := min(storageCounts[ing.Item], need)
			fromInv := need - fromStorage
			if fromInv > invCounts[ing.Item] {
				return Plan{}, fmt.Errorf("planning %s: %w", ing.Item, ErrWriteConflict)
			}
			storageCounts[ing.Item] -= fromStorage
			invCounts[ing.Item] -= fromInv
			step.Sources = append(step.Sources, IngredientSource{
				Item:          ing.Item,
				FromStorage:   fromStorage,
				FromInventory: fromInv,
			})
		}
		storageCounts[ps.recipe.Output] += step.OutputCount()
		plan.Steps = append(plan.Steps, step)
	}
	c.log.Debug("craft plan built",
		"plan_id", plan.ID, "target", string(item), "quantity", qty, "steps", len(plan.Steps))
	return plan, nil
}

// Execute drives the plan step by step. A failed step stops execution:
// its own withdrawals are returned to their sources, completed prior steps
// stay (their outputs are real), and the result reports how many target
// units were produced.
func (c *Crafter) Execute(plan Plan) ExecutionResult {
	res := ExecutionResult{
		PlanID:    plan.ID,
		Target:    plan.Target,
		Requested: plan.Quantity,
	}
	for i, step := range plan.Steps {
		if err := c.exec.ExecuteStep(step); err != nil {
			res.Err = &PartialCraftError{
				Produced:  res.Produced,
				Requested: plan.Quantity,
				Step:      i,
				Cause:     err,
			}
			c.log.Warn("craft plan stopped",
				"plan_id", plan.ID, "step", i, "produced", res.Produced, "err", err)
			return res
		}
		res.StepsCompleted++
		if step.Recipe.Output == plan.Target {
			res.Produced += step.OutputCount()
		}
	}
	c.log.Info("craft plan complete",
		"plan_id", plan.ID, "target", string(plan.Target), "produced", res.Produced)
	return res
}
