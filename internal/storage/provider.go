package storage

import (
	"fmt"
	"log/slog"
	"sort"
)

// Transfer records one item movement made by a batch operation, for the
// caller's visualization layer.
type Transfer struct {
	Item     ItemID
	Count    int
	FromSlot int
	To       Position
}

// QuickStackOptions selects which inventory slots a quick-stack may drain.
type QuickStackOptions struct {
	IncludeHotbar    bool
	IncludeFavorited bool
}

// Provider abstracts "what items exist and can be moved". Methods
// documented as read-only must not alter any container and must return
// identical results on repeated calls with no intervening write.
type Provider interface {
	// ItemCount is read-only.
	ItemCount(item ItemID) int
	// Withdraw removes up to count units from the active positions and
	// returns the amount actually withdrawn.
	Withdraw(item ItemID, count int) int
	// Deposit adds up to count units to the active positions and returns
	// the remainder that did not fit.
	Deposit(item ItemID, count int) int
	// DepositFromSlot moves one inventory slot (or a single item of it)
	// into storage and returns the count moved.
	DepositFromSlot(inv *Inventory, slot int, singleItem bool) int
	// QuickStack deposits every inventory stack that already has a home in
	// some active container, appending each movement to transfers.
	QuickStack(inv *Inventory, opts QuickStackOptions, transfers *[]Transfer) int
	// SetActivePositions replaces the provider's working membership,
	// typically with a resolved network's unit positions.
	SetActivePositions(positions []Position)
	// UseTemporaryPositions narrows the provider to positions until the
	// returned restore func runs. Callers defer it so membership is
	// restored on every exit path.
	UseTemporaryPositions(positions []Position) (restore func())
	// Snapshots is read-only; it returns detached copies for display.
	Snapshots() []ItemSnapshot
}

// SingleplayerProvider serves a fixed set of registered containers,
// optionally narrowed to a resolved network's member positions.
type SingleplayerProvider struct {
	containers map[Position]*Container
	active     []Position
	items      *ItemSet
	log        *slog.Logger
}

var _ Provider = (*SingleplayerProvider)(nil)

func NewSingleplayerProvider(items *ItemSet, log *slog.Logger) *SingleplayerProvider {
	if log == nil {
		log = slog.Default()
	}
	return &SingleplayerProvider{
		containers: make(map[Position]*Container),
		items:      items,
		log:        log,
	}
}

// RegisterContainer adds a container and makes it active. Registering the
// same position twice replaces the container.
func (p *SingleplayerProvider) RegisterContainer(c *Container) error {
	if p == nil || c == nil {
		return fmt.Errorf("nil provider or container")
	}
	if _, exists := p.containers[c.Pos]; !exists {
		p.active = append(p.active, c.Pos)
		sort.Slice(p.active, func(i, j int) bool { return p.active[i].Less(p.active[j]) })
	}
	p.containers[c.Pos] = c
	return nil
}

func (p *SingleplayerProvider) ContainerAt(pos Position) (*Container, bool) {
	if p == nil {
		return nil, false
	}
	c, ok := p.containers[pos]
	return c, ok
}

// SetActivePositions replaces the working membership. Positions without a
// registered container are skipped. The order is normalized so every
// operation walks containers deterministically.
func (p *SingleplayerProvider) SetActivePositions(positions []Position) {
	if p == nil {
		return
	}
	next := make([]Position, 0, len(positions))
	for _, pos := range positions {
		if _, ok := p.containers[pos]; ok {
			next = append(next, pos)
		}
	}
	sort.Slice(next, func(i, j int) bool { return next[i].Less(next[j]) })
	p.active = next
}

func (p *SingleplayerProvider) ActivePositions() []Position {
	if p == nil {
		return nil
	}
	out := make([]Position, len(p.active))
	copy(out, p.active)
	return out
}

func (p *SingleplayerProvider) UseTemporaryPositions(positions []Position) (restore func()) {
	if p == nil {
		return func() {}
	}
	prev := p.active
	p.SetActivePositions(positions)
	return func() { p.active = prev }
}

func (p *SingleplayerProvider) maxStack(item ItemID) int {
	if p == nil || p.items == nil {
		return DefaultMaxStack
	}
	return p.items.MaxStack(item)
}

func (p *SingleplayerProvider) ItemCount(item ItemID) int {
	if p == nil {
		return 0
	}
	total := 0
	for _, pos := range p.active {
		total += p.containers[pos].Count(item)
	}
	return total
}

func (p *SingleplayerProvider) Withdraw(item ItemID, count int) int {
	if p == nil || count <= 0 {
		return 0
	}
	moved := 0
	for _, pos := range p.active {
		if moved >= count {
			break
		}
		moved += p.containers[pos].Withdraw(item, count-moved)
	}
	return moved
}

func (p *SingleplayerProvider) Deposit(item ItemID, count int) int {
	if p == nil || count <= 0 {
		return count
	}
	maxStack := p.maxStack(item)
	remaining := count
	// First pass tops up containers that already hold the item, so stacks
	// stay together across the network.
	for _, pos := range p.active {
		if remaining <= 0 {
			break
		}
		c := p.containers[pos]
		if !c.HasItem(item) {
			continue
		}
		remaining = c.Deposit(item, remaining, maxStack)
	}
	for _, pos := range p.active {
		if remaining <= 0 {
			break
		}
		remaining = p.containers[pos].Deposit(item, remaining, maxStack)
	}
	return remaining
}

func (p *SingleplayerProvider) DepositFromSlot(inv *Inventory, slot int, singleItem bool) int {
	if p == nil || inv == nil {
		return 0
	}
	stack, ok := inv.Slot(slot)
	if !ok || stack.Empty() {
		return 0
	}
	want := stack.Count
	if singleItem {
		want = 1
	}
	remainder := p.Deposit(stack.Item, want)
	moved := want - remainder
	if moved <= 0 {
		return 0
	}
	stack.Count -= moved
	if stack.Count <= 0 {
		stack = ItemStack{}
	}
	_ = inv.SetSlot(slot, stack)
	return moved
}

func (p *SingleplayerProvider) QuickStack(inv *Inventory, opts QuickStackOptions, transfers *[]Transfer) int {
	if p == nil || inv == nil {
		return 0
	}
	total := 0
	for slot := range inv.Slots {
		stack := inv.Slots[slot]
		if stack.Empty() {
			continue
		}
		if slot < HotbarSlots && !opts.IncludeHotbar {
			continue
		}
		if inv.IsFavorited(slot) && !opts.IncludeFavorited {
			continue
		}
		maxStack := p.maxStack(stack.Item)
		remaining := stack.Count
		for _, pos := range p.active {
			if remaining <= 0 {
				break
			}
			c := p.containers[pos]
			if !c.HasItem(stack.Item) {
				continue
			}
			before := remaining
			remaining = c.Deposit(stack.Item, remaining, maxStack)
			if moved := before - remaining; moved > 0 && transfers != nil {
				*transfers = append(*transfers, Transfer{
					Item:     stack.Item,
					Count:    moved,
					FromSlot: slot,
					To:       pos,
				})
			}
		}
		if moved := stack.Count - remaining; moved > 0 {
			total += moved
			stack.Count = remaining
			if stack.Count <= 0 {
				stack = ItemStack{}
			}
			inv.Slots[slot] = stack
		}
	}
	if total > 0 {
		p.log.Debug("quick stack complete", "moved", total)
	}
	return total
}

func (p *SingleplayerProvider) Snapshots() []ItemSnapshot {
	if p == nil {
		return nil
	}
	merged := make(map[ItemID]int)
	for _, pos := range p.active {
		for _, snap := range p.containers[pos].Snapshot() {
			merged[snap.Item] += snap.Count
		}
	}
	ids := make([]ItemID, 0, len(merged))
	for id := range merged {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]ItemSnapshot, 0, len(ids))
	for _, id := range ids {
		out = append(out, ItemSnapshot{Item: id, Count: merged[id]})
	}
	return out
}
