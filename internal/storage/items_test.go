package storage

import "testing"

func newTestItemSet(t *testing.T) *ItemSet {
	t.Helper()
	set := NewItemSet()
	defs := []ItemDef{
		{ID: "iron_ore", Name: "Iron Ore"},
		{ID: "iron_bar", Name: "Iron Bar"},
		{ID: "torch", Name: "Torch"},
		{ID: "work_bench", Name: "Work Bench", MaxStack: 99},
	}
	for _, def := range defs {
		if err := set.Register(def); err != nil {
			t.Fatalf("register: %v", err)
		}
	}
	return set
}

func TestItemSetRegisterDefaults(t *testing.T) {
	set := NewItemSet()
	if err := set.Register(ItemDef{ID: "  Wood "}); err != nil {
		t.Fatalf("register: %v", err)
	}
	def, ok := set.Get("wood")
	if !ok {
		t.Fatalf("expected id to be normalized to lowercase")
	}
	if def.MaxStack != DefaultMaxStack {
		t.Fatalf("expected default max stack %d, got %d", DefaultMaxStack, def.MaxStack)
	}
	if def.Name != "wood" {
		t.Fatalf("expected name to default to id, got %q", def.Name)
	}
	if err := set.Register(ItemDef{}); err == nil {
		t.Fatalf("expected empty id to be rejected")
	}
}

func TestItemSetFindByName(t *testing.T) {
	set := newTestItemSet(t)
	cases := []struct {
		query string
		want  ItemID
	}{
		{"iron_bar", "iron_bar"},   // exact id
		{"Iron Bar", "iron_bar"},   // exact name
		{"torch", "torch"},         // id == name
		{"bench", "work_bench"},    // substring
		{"iron barr", "iron_bar"},  // typo
		{"tprch", "torch"},         // typo
	}
	for _, tc := range cases {
		def, ok := set.FindByName(tc.query)
		if !ok {
			t.Fatalf("query %q: no match", tc.query)
		}
		if def.ID != tc.want {
			t.Fatalf("query %q: expected %s, got %s", tc.query, tc.want, def.ID)
		}
	}
	if _, ok := set.FindByName("zzzzzzzzzz"); ok {
		t.Fatalf("nonsense query should not match")
	}
	if _, ok := set.FindByName(""); ok {
		t.Fatalf("empty query should not match")
	}
}

func TestItemSetMaxStackFallback(t *testing.T) {
	set := newTestItemSet(t)
	if got := set.MaxStack("unregistered"); got != DefaultMaxStack {
		t.Fatalf("expected fallback max stack, got %d", got)
	}
	if got := set.MaxStack("work_bench"); got != 99 {
		t.Fatalf("expected 99, got %d", got)
	}
}
