package craft

import "github.com/appengine-ltd/storage-hub/internal/storage"

// Item ids of the builtin catalog.
const (
	ItemWood       storage.ItemID = "wood"
	ItemStone      storage.ItemID = "stone"
	ItemGel        storage.ItemID = "gel"
	ItemIronOre    storage.ItemID = "iron_ore"
	ItemIronBar    storage.ItemID = "iron_bar"
	ItemCopperOre  storage.ItemID = "copper_ore"
	ItemCopperBar  storage.ItemID = "copper_bar"
	ItemTorch      storage.ItemID = "torch"
	ItemPlatform   storage.ItemID = "platform"
	ItemChain      storage.ItemID = "chain"
	ItemRope       storage.ItemID = "rope"
	ItemChest      storage.ItemID = "chest"
	ItemLantern    storage.ItemID = "lantern"
	ItemIronAnvil  storage.ItemID = "iron_anvil"
	ItemWorkBench  storage.ItemID = "work_bench"
	ItemSilk       storage.ItemID = "silk"
	ItemCobweb     storage.ItemID = "cobweb"
	ItemSail       storage.ItemID = "sail"
	ItemGrapple    storage.ItemID = "grappling_hook"
	ItemHook       storage.ItemID = "hook"
)

// Station ids of the builtin catalog.
const (
	StationWorkBench StationID = "work_bench"
	StationFurnace   StationID = "furnace"
	StationAnvil     StationID = "anvil"
	StationLoom      StationID = "loom"
)

// BuiltinItems returns the default item definitions.
func BuiltinItems() *storage.ItemSet {
	set := storage.NewItemSet()
	defs := []storage.ItemDef{
		{ID: ItemWood, Name: "Wood"},
		{ID: ItemStone, Name: "Stone"},
		{ID: ItemGel, Name: "Gel"},
		{ID: ItemIronOre, Name: "Iron Ore"},
		{ID: ItemIronBar, Name: "Iron Bar"},
		{ID: ItemCopperOre, Name: "Copper Ore"},
		{ID: ItemCopperBar, Name: "Copper Bar"},
		{ID: ItemTorch, Name: "Torch"},
		{ID: ItemPlatform, Name: "Platform"},
		{ID: ItemChain, Name: "Chain"},
		{ID: ItemRope, Name: "Rope"},
		{ID: ItemChest, Name: "Chest", MaxStack: 99},
		{ID: ItemLantern, Name: "Lantern", MaxStack: 99},
		{ID: ItemIronAnvil, Name: "Iron Anvil", MaxStack: 99},
		{ID: ItemWorkBench, Name: "Work Bench", MaxStack: 99},
		{ID: ItemSilk, Name: "Silk"},
		{ID: ItemCobweb, Name: "Cobweb"},
		{ID: ItemSail, Name: "Sail"},
		{ID: ItemGrapple, Name: "Grappling Hook", MaxStack: 1},
		{ID: ItemHook, Name: "Hook", MaxStack: 99},
	}
	for _, def := range defs {
		// Registration only fails on empty ids, which the table above
		// cannot produce.
		_ = set.Register(def)
	}
	return set
}

// BuiltinRecipes returns the default recipe catalog in selection order.
func BuiltinRecipes() []Recipe {
	return []Recipe{
		{
			Output: ItemIronBar, OutputCount: 1,
			Ingredients: []Ingredient{{Item: ItemIronOre, Count: 3}},
			Stations:    []StationID{StationFurnace},
		},
		{
			Output: ItemCopperBar, OutputCount: 1,
			Ingredients: []Ingredient{{Item: ItemCopperOre, Count: 3}},
			Stations:    []StationID{StationFurnace},
		},
		{
			Output: ItemTorch, OutputCount: 3,
			Ingredients: []Ingredient{{Item: ItemWood, Count: 1}, {Item: ItemGel, Count: 1}},
		},
		{
			Output: ItemPlatform, OutputCount: 2,
			Ingredients: []Ingredient{{Item: ItemWood, Count: 1}},
		},
		{
			Output: ItemChain, OutputCount: 10,
			Ingredients: []Ingredient{{Item: ItemIronBar, Count: 1}},
			Stations:    []StationID{StationAnvil},
		},
		{
			Output: ItemWorkBench, OutputCount: 1,
			Ingredients: []Ingredient{{Item: ItemWood, Count: 10}},
		},
		{
			Output: ItemIronAnvil, OutputCount: 1,
			Ingredients: []Ingredient{{Item: ItemIronBar, Count: 5}},
			Stations:    []StationID{StationWorkBench},
		},
		{
			Output: ItemChest, OutputCount: 1,
			Ingredients: []Ingredient{{Item: ItemWood, Count: 8}, {Item: ItemIronBar, Count: 2}},
			Stations:    []StationID{StationWorkBench},
		},
		{
			Output: ItemSilk, OutputCount: 1,
			Ingredients: []Ingredient{{Item: ItemCobweb, Count: 7}},
			Stations:    []StationID{StationLoom},
		},
		{
			Output: ItemSail, OutputCount: 1,
			Ingredients: []Ingredient{{Item: ItemSilk, Count: 2}},
			Stations:    []StationID{StationLoom},
		},
		{
			Output: ItemLantern, OutputCount: 1,
			Ingredients: []Ingredient{{Item: ItemTorch, Count: 1}, {Item: ItemIronBar, Count: 1}},
			Stations:    []StationID{StationAnvil},
		},
		{
			Output: ItemHook, OutputCount: 1,
			Ingredients: []Ingredient{{Item: ItemIronBar, Count: 3}},
			Stations:    []StationID{StationAnvil},
		},
		{
			Output: ItemGrapple, OutputCount: 1,
			Ingredients: []Ingredient{{Item: ItemHook, Count: 1}, {Item: ItemChain, Count: 3}},
			Stations:    []StationID{StationAnvil},
		},
	}
}
