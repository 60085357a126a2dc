package craft

import (
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/storage-hub/internal/storage"
)

// Executor performs the mutation for one craft step: withdraw every
// ingredient, apply the recipe, deposit the output. A step either fully
// succeeds or leaves storage and inventory exactly as it found them.
type Executor struct {
	provider  storage.Provider
	inventory *storage.Inventory
	items     *storage.ItemSet
	log       *slog.Logger
}

func NewExecutor(provider storage.Provider, inv *storage.Inventory, items *storage.ItemSet, log *slog.Logger) *Executor {
	if log == nil {
		log = slog.Default()
	}
	return &Executor{provider: provider, inventory: inv, items: items, log: log}
}

func (e *Executor) maxStack(item storage.ItemID) int {
	if e.items == nil {
		return storage.DefaultMaxStack
	}
	return e.items.MaxStack(item)
}

type withdrawal struct {
	item          storage.ItemID
	fromStorage   int
	fromInventory int
}

// ExecuteStep re-validates counts against live state immediately before
// mutating; a plan's source split is advisory and a snapshot taken even
// one frame earlier cannot be trusted. Withdrawal is storage first, then
// player inventory; deposit is storage first with inventory overflow.
func (e *Executor) ExecuteStep(step Step) error {
	if e == nil || e.provider == nil {
		return fmt.Errorf("executor not initialized")
	}
	if step.Repeat <= 0 {
		return fmt.Errorf("step repeat must be positive, got %d", step.Repeat)
	}

	// Validate every ingredient before touching anything.
	for _, ing := range step.Recipe.Ingredients {
		need := ing.Count * step.Repeat
		have := e.provider.ItemCount(ing.Item) + e.inventory.Count(ing.Item)
		if have < need {
			return fmt.Errorf("need %d %s, have %d: %w (%w)",
				need, ing.Item, have, ErrInsufficientMaterials, ErrWriteConflict)
		}
	}

	var taken []withdrawal
	undo := func() {
		for i := len(taken) - 1; i >= 0; i-- {
			w := taken[i]
			if w.fromStorage > 0 {
				if rem := e.provider.Deposit(w.item, w.fromStorage); rem > 0 {
					// Withdrawing freed this capacity moments ago; push any
					// stragglers to the inventory so nothing is lost.
					e.inventory.Deposit(w.item, rem, e.maxStack(w.item))
				}
			}
			if w.fromInventory > 0 {
				if rem := e.inventory.Deposit(w.item, w.fromInventory, e.maxStack(w.item)); rem > 0 {
					e.provider.Deposit(w.item, rem)
				}
			}
		}
	}

	for _, ing := range step.Recipe.Ingredients {
		need := ing.Count * step.Repeat
		w := withdrawal{item: ing.Item}
		w.fromStorage = e.provider.Withdraw(ing.Item, need)
		if w.fromStorage < need {
			w.fromInventory = e.inventory.Withdraw(ing.Item, need-w.fromStorage)
		}
		taken = append(taken, w)
		if w.fromStorage+w.fromInventory < need {
			undo()
			return fmt.Errorf("withdrew %d of %d %s: %w",
				w.fromStorage+w.fromInventory, need, ing.Item, ErrWriteConflict)
		}
	}

	produced := step.OutputCount()
	remainder := e.provider.Deposit(step.Recipe.Output, produced)
	if remainder > 0 {
		remainder = e.inventory.Deposit(step.Recipe.Output, remainder, e.maxStack(step.Recipe.Output))
	}
	if remainder > 0 {
		// Reclaim what was deposited, then restore the ingredients.
		deposited := produced - remainder
		reclaimed := e.provider.Withdraw(step.Recipe.Output, deposited)
		if reclaimed < deposited {
			e.inventory.Withdraw(step.Recipe.Output, deposited-reclaimed)
		}
		undo()
		return fmt.Errorf("%d %s did not fit: %w", remainder, step.Recipe.Output, ErrNoCapacity)
	}

	e.log.Debug("craft step executed",
		"output", string(step.Recipe.Output), "produced", produced, "repeat", step.Repeat)
	return nil
}
