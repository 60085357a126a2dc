package storage

import "testing"

func newTestProvider(t *testing.T) *SingleplayerProvider {
	t.Helper()
	items := NewItemSet()
	for _, def := range []ItemDef{
		{ID: "wood", Name: "Wood"},
		{ID: "gel", Name: "Gel"},
		{ID: "iron_ore", Name: "Iron Ore", MaxStack: 99},
	} {
		if err := items.Register(def); err != nil {
			t.Fatalf("register item: %v", err)
		}
	}
	return NewSingleplayerProvider(items, testLogger())
}

func addContainer(t *testing.T, p *SingleplayerProvider, pos Position, stacks ...ItemStack) *Container {
	t.Helper()
	c := NewContainer(pos, 8)
	copy(c.Slots, stacks)
	if err := p.RegisterContainer(c); err != nil {
		t.Fatalf("register container: %v", err)
	}
	return c
}

func TestProviderItemCountIsReadOnly(t *testing.T) {
	p := newTestProvider(t)
	addContainer(t, p, Position{X: 1, Y: 1}, ItemStack{Item: "wood", Count: 30})
	addContainer(t, p, Position{X: 2, Y: 1}, ItemStack{Item: "wood", Count: 12})

	for i := 0; i < 3; i++ {
		if got := p.ItemCount("wood"); got != 42 {
			t.Fatalf("call %d: expected 42, got %d", i, got)
		}
	}
}

func TestProviderWithdrawWalksContainersDeterministically(t *testing.T) {
	p := newTestProvider(t)
	first := addContainer(t, p, Position{X: 1, Y: 1}, ItemStack{Item: "wood", Count: 10})
	second := addContainer(t, p, Position{X: 5, Y: 1}, ItemStack{Item: "wood", Count: 10})

	if got := p.Withdraw("wood", 14); got != 14 {
		t.Fatalf("expected 14 withdrawn, got %d", got)
	}
	if first.Count("wood") != 0 {
		t.Fatalf("expected first container drained, has %d", first.Count("wood"))
	}
	if second.Count("wood") != 6 {
		t.Fatalf("expected 6 left in second container, has %d", second.Count("wood"))
	}
}

func TestProviderDepositPrefersContainersHoldingItem(t *testing.T) {
	p := newTestProvider(t)
	empty := addContainer(t, p, Position{X: 1, Y: 1})
	holding := addContainer(t, p, Position{X: 2, Y: 1}, ItemStack{Item: "gel", Count: 5})

	if rem := p.Deposit("gel", 10); rem != 0 {
		t.Fatalf("unexpected remainder %d", rem)
	}
	if holding.Count("gel") != 15 {
		t.Fatalf("expected holding container to take all 10, has %d", holding.Count("gel"))
	}
	if empty.Count("gel") != 0 {
		t.Fatalf("empty container should be untouched, has %d", empty.Count("gel"))
	}
}

func TestProviderDepositRemainder(t *testing.T) {
	p := newTestProvider(t)
	c := NewContainer(Position{X: 1, Y: 1}, 1)
	if err := p.RegisterContainer(c); err != nil {
		t.Fatalf("register container: %v", err)
	}
	// Single slot of iron ore caps at 99.
	if rem := p.Deposit("iron_ore", 120); rem != 21 {
		t.Fatalf("expected remainder 21, got %d", rem)
	}
}

func TestUseTemporaryPositionsRestores(t *testing.T) {
	p := newTestProvider(t)
	addContainer(t, p, Position{X: 1, Y: 1}, ItemStack{Item: "wood", Count: 10})
	addContainer(t, p, Position{X: 2, Y: 1}, ItemStack{Item: "wood", Count: 10})

	narrowed := func() (count int) {
		restore := p.UseTemporaryPositions([]Position{{X: 1, Y: 1}})
		defer restore()
		return p.ItemCount("wood")
	}()
	if narrowed != 10 {
		t.Fatalf("expected narrowed view to see 10, got %d", narrowed)
	}
	if got := p.ItemCount("wood"); got != 20 {
		t.Fatalf("membership not restored after scope exit: %d", got)
	}
}

func TestUseTemporaryPositionsRestoresOnPanic(t *testing.T) {
	p := newTestProvider(t)
	addContainer(t, p, Position{X: 1, Y: 1}, ItemStack{Item: "wood", Count: 10})
	addContainer(t, p, Position{X: 2, Y: 1}, ItemStack{Item: "wood", Count: 10})

	func() {
		defer func() { _ = recover() }()
		restore := p.UseTemporaryPositions([]Position{{X: 2, Y: 1}})
		defer restore()
		panic("step failed")
	}()
	if got := p.ItemCount("wood"); got != 20 {
		t.Fatalf("membership must survive the failure path, got %d", got)
	}
}

func TestSetActivePositionsSkipsUnknown(t *testing.T) {
	p := newTestProvider(t)
	addContainer(t, p, Position{X: 1, Y: 1}, ItemStack{Item: "wood", Count: 7})

	p.SetActivePositions([]Position{{X: 1, Y: 1}, {X: 9, Y: 9}})
	if got := len(p.ActivePositions()); got != 1 {
		t.Fatalf("expected 1 active position, got %d", got)
	}
	if got := p.ItemCount("wood"); got != 7 {
		t.Fatalf("expected 7 wood visible, got %d", got)
	}
}

func TestDepositFromSlot(t *testing.T) {
	p := newTestProvider(t)
	addContainer(t, p, Position{X: 1, Y: 1})
	inv := NewInventory()
	inv.Slots[12] = ItemStack{Item: "gel", Count: 9}

	if moved := p.DepositFromSlot(inv, 12, true); moved != 1 {
		t.Fatalf("single-item deposit moved %d", moved)
	}
	if inv.Slots[12].Count != 8 {
		t.Fatalf("expected 8 gel left in slot, got %d", inv.Slots[12].Count)
	}
	if moved := p.DepositFromSlot(inv, 12, false); moved != 8 {
		t.Fatalf("full-slot deposit moved %d", moved)
	}
	if !inv.Slots[12].Empty() {
		t.Fatalf("expected slot cleared, got %+v", inv.Slots[12])
	}
}

func TestQuickStackOnlyTargetsContainersWithItem(t *testing.T) {
	p := newTestProvider(t)
	woodChest := addContainer(t, p, Position{X: 1, Y: 1}, ItemStack{Item: "wood", Count: 20})
	gelChest := addContainer(t, p, Position{X: 2, Y: 1}, ItemStack{Item: "gel", Count: 3})

	inv := NewInventory()
	inv.Slots[0] = ItemStack{Item: "wood", Count: 5} // hotbar, excluded by default
	inv.Slots[15] = ItemStack{Item: "wood", Count: 8}
	inv.Slots[16] = ItemStack{Item: "gel", Count: 4}
	inv.Slots[17] = ItemStack{Item: "iron_ore", Count: 6} // no home anywhere
	inv.Slots[18] = ItemStack{Item: "wood", Count: 2}
	inv.Favorited[18] = true

	var transfers []Transfer
	total := p.QuickStack(inv, QuickStackOptions{}, &transfers)
	if total != 12 {
		t.Fatalf("expected 12 items quick stacked, got %d", total)
	}
	if woodChest.Count("wood") != 28 {
		t.Fatalf("expected 28 wood in wood chest, got %d", woodChest.Count("wood"))
	}
	if gelChest.Count("gel") != 7 {
		t.Fatalf("expected 7 gel in gel chest, got %d", gelChest.Count("gel"))
	}
	if inv.Slots[0].Count != 5 {
		t.Fatalf("hotbar stack must stay, got %d", inv.Slots[0].Count)
	}
	if inv.Slots[18].Count != 2 {
		t.Fatalf("favorited stack must stay, got %d", inv.Slots[18].Count)
	}
	if inv.Slots[17].Count != 6 {
		t.Fatalf("homeless item must stay, got %d", inv.Slots[17].Count)
	}
	if len(transfers) != 2 {
		t.Fatalf("expected 2 recorded transfers, got %d", len(transfers))
	}
	for _, tr := range transfers {
		if tr.Count <= 0 {
			t.Fatalf("transfer with non-positive count: %+v", tr)
		}
	}
}

func TestQuickStackIncludesHotbarWhenAsked(t *testing.T) {
	p := newTestProvider(t)
	addContainer(t, p, Position{X: 1, Y: 1}, ItemStack{Item: "wood", Count: 1})
	inv := NewInventory()
	inv.Slots[2] = ItemStack{Item: "wood", Count: 5}

	total := p.QuickStack(inv, QuickStackOptions{IncludeHotbar: true}, nil)
	if total != 5 {
		t.Fatalf("expected hotbar stack moved, got %d", total)
	}
}

func TestProviderSnapshotsAreMergedAndDetached(t *testing.T) {
	p := newTestProvider(t)
	addContainer(t, p, Position{X: 1, Y: 1}, ItemStack{Item: "wood", Count: 10})
	addContainer(t, p, Position{X: 2, Y: 1}, ItemStack{Item: "wood", Count: 5}, ItemStack{Item: "gel", Count: 2})

	snaps := p.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("expected 2 merged snapshots, got %d", len(snaps))
	}
	byItem := map[ItemID]int{}
	for _, s := range snaps {
		byItem[s.Item] = s.Count
	}
	if byItem["wood"] != 15 || byItem["gel"] != 2 {
		t.Fatalf("unexpected merged counts: %+v", byItem)
	}
	snaps[0].Count = 0
	if got := p.ItemCount("wood"); got != 15 {
		t.Fatalf("snapshot mutation leaked into storage: %d", got)
	}
}
