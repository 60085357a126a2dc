package storage

import "fmt"

const (
	// InventorySlots is the player inventory size; the first HotbarSlots of
	// it form the hotbar.
	InventorySlots = 50
	HotbarSlots    = 10
)

// Inventory is the player's personal item store. It is a peer of network
// storage: crafting may pull from both, with storage preferred.
type Inventory struct {
	Slots     []ItemStack
	Favorited []bool
}

func NewInventory() *Inventory {
	return &Inventory{
		Slots:     make([]ItemStack, InventorySlots),
		Favorited: make([]bool, InventorySlots),
	}
}

func (inv *Inventory) Count(item ItemID) int {
	if inv == nil {
		return 0
	}
	total := 0
	for _, s := range inv.Slots {
		if s.Item == item && s.Count > 0 {
			total += s.Count
		}
	}
	return total
}

// Withdraw removes up to count units, consuming later (non-hotbar) slots
// first so the hotbar loadout survives crafting pulls. Returns the amount
// actually removed.
func (inv *Inventory) Withdraw(item ItemID, count int) int {
	if inv == nil || count <= 0 {
		return 0
	}
	moved := 0
	for i := len(inv.Slots) - 1; i >= 0 && moved < count; i-- {
		if inv.Slots[i].Item != item || inv.Slots[i].Count <= 0 {
			continue
		}
		take := min(inv.Slots[i].Count, count-moved)
		inv.Slots[i].Count -= take
		if inv.Slots[i].Count <= 0 {
			inv.Slots[i] = ItemStack{}
		}
		moved += take
	}
	return moved
}

// Deposit adds up to count units and returns the remainder that did not
// fit. Existing stacks fill before empty slots; hotbar slots are only used
// as a last resort.
func (inv *Inventory) Deposit(item ItemID, count, maxStack int) int {
	if inv == nil || count <= 0 {
		return count
	}
	if maxStack <= 0 {
		maxStack = DefaultMaxStack
	}
	remaining := count
	for i := range inv.Slots {
		if remaining <= 0 {
			break
		}
		if inv.Slots[i].Item != item || inv.Slots[i].Count <= 0 || inv.Slots[i].Count >= maxStack {
			continue
		}
		add := min(maxStack-inv.Slots[i].Count, remaining)
		inv.Slots[i].Count += add
		remaining -= add
	}
	for pass := 0; pass < 2 && remaining > 0; pass++ {
		for i := range inv.Slots {
			if remaining <= 0 {
				break
			}
			if pass == 0 && i < HotbarSlots {
				continue
			}
			if !inv.Slots[i].Empty() {
				continue
			}
			add := min(maxStack, remaining)
			inv.Slots[i] = ItemStack{Item: item, Count: add}
			remaining -= add
		}
	}
	return remaining
}

// SetSlot is a setup helper for hosts and tests.
func (inv *Inventory) SetSlot(index int, stack ItemStack) error {
	if inv == nil {
		return fmt.Errorf("inventory is nil")
	}
	if index < 0 || index >= len(inv.Slots) {
		return fmt.Errorf("slot index out of range: %d", index)
	}
	inv.Slots[index] = stack
	return nil
}

func (inv *Inventory) Slot(index int) (ItemStack, bool) {
	if inv == nil || index < 0 || index >= len(inv.Slots) {
		return ItemStack{}, false
	}
	return inv.Slots[index], true
}

func (inv *Inventory) IsFavorited(index int) bool {
	if inv == nil || index < 0 || index >= len(inv.Favorited) {
		return false
	}
	return inv.Favorited[index]
}

// Snapshot returns detached copies of the occupied slots.
func (inv *Inventory) Snapshot() []ItemSnapshot {
	if inv == nil {
		return nil
	}
	out := make([]ItemSnapshot, 0, len(inv.Slots))
	for _, s := range inv.Slots {
		if s.Empty() {
			continue
		}
		out = append(out, ItemSnapshot{Item: s.Item, Count: s.Count})
	}
	return out
}
