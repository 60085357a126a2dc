package storage

// ItemStack is one slot's live contents. A zero Count means the slot is
// free regardless of Item.
type ItemStack struct {
	Item  ItemID `json:"item"`
	Count int    `json:"count"`
}

func (s ItemStack) Empty() bool {
	return s.Count <= 0
}

// ItemSnapshot is a detached value copy of a stack taken for display. It
// carries no reference back into live storage.
type ItemSnapshot struct {
	Item    ItemID `json:"item"`
	Count   int    `json:"count"`
	Variant string `json:"variant,omitempty"`
}

// DefaultUnitSlots is the slot capacity of one storage unit.
const DefaultUnitSlots = 40

// Container is the physical storage behind one unit tile.
type Container struct {
	Pos   Position
	Slots []ItemStack
}

func NewContainer(pos Position, slots int) *Container {
	if slots <= 0 {
		slots = DefaultUnitSlots
	}
	return &Container{Pos: pos, Slots: make([]ItemStack, slots)}
}

func (c *Container) Count(item ItemID) int {
	if c == nil {
		return 0
	}
	total := 0
	for _, s := range c.Slots {
		if s.Item == item && s.Count > 0 {
			total += s.Count
		}
	}
	return total
}

// Withdraw removes up to count units and returns the amount actually
// removed. Slots never go negative; emptied slots are cleared.
func (c *Container) Withdraw(item ItemID, count int) int {
	if c == nil || count <= 0 {
		return 0
	}
	moved := 0
	for i := range c.Slots {
		if moved >= count {
			break
		}
		if c.Slots[i].Item != item || c.Slots[i].Count <= 0 {
			continue
		}
		take := min(c.Slots[i].Count, count-moved)
		c.Slots[i].Count -= take
		if c.Slots[i].Count <= 0 {
			c.Slots[i] = ItemStack{}
		}
		moved += take
	}
	return moved
}

// Deposit adds up to count units, filling existing stacks before empty
// slots, and returns the remainder that did not fit.
func (c *Container) Deposit(item ItemID, count, maxStack int) int {
	if c == nil || count <= 0 {
		return count
	}
	if maxStack <= 0 {
		maxStack = DefaultMaxStack
	}
	remaining := count
	for i := range c.Slots {
		if remaining <= 0 {
			break
		}
		if c.Slots[i].Item != item || c.Slots[i].Count <= 0 || c.Slots[i].Count >= maxStack {
			continue
		}
		add := min(maxStack-c.Slots[i].Count, remaining)
		c.Slots[i].Count += add
		remaining -= add
	}
	for i := range c.Slots {
		if remaining <= 0 {
			break
		}
		if !c.Slots[i].Empty() {
			continue
		}
		add := min(maxStack, remaining)
		c.Slots[i] = ItemStack{Item: item, Count: add}
		remaining -= add
	}
	return remaining
}

// HasItem reports whether any slot already holds the item, which is the
// quick-stack targeting rule.
func (c *Container) HasItem(item ItemID) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Slots {
		if s.Item == item && s.Count > 0 {
			return true
		}
	}
	return false
}

// Snapshot returns detached copies of the occupied slots.
func (c *Container) Snapshot() []ItemSnapshot {
	if c == nil {
		return nil
	}
	out := make([]ItemSnapshot, 0, len(c.Slots))
	for _, s := range c.Slots {
		if s.Empty() {
			continue
		}
		out = append(out, ItemSnapshot{Item: s.Item, Count: s.Count})
	}
	return out
}
