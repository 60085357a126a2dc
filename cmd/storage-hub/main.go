package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/appengine-ltd/storage-hub/internal/craft"
	"github.com/appengine-ltd/storage-hub/internal/parser"
	"github.com/appengine-ltd/storage-hub/internal/storage"
)

// version, commit, date are injected at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var (
		showVersion bool
		catalogPath string
		verbose     bool
	)

	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.StringVar(&catalogPath, "catalog", "", "load items and recipes from a YAML catalog file")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.Parse()

	if showVersion {
		fmt.Printf("Storage Hub %s (%s) %s\n", version, commit, date)
		return
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	items := craft.BuiltinItems()
	recipes := craft.BuiltinRecipes()
	if catalogPath != "" {
		var err error
		items, recipes, err = craft.LoadCatalog(catalogPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	session, err := buildDemoSession(items, recipes, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	shell := newShell(session)
	fmt.Println("Storage Hub demo. Type 'help' for commands, 'quit' to exit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		out, quit := shell.dispatch(line)
		if out != "" {
			fmt.Println(out)
		}
		if quit {
			break
		}
	}
}

// buildDemoSession assembles a small world: one heart, four units wired
// through connectors, an access point, stations, and starter materials.
func buildDemoSession(items *storage.ItemSet, recipes []craft.Recipe, log *slog.Logger) (*craft.Session, error) {
	session, err := craft.NewSession(craft.SessionConfig{
		WorldWidth:  32,
		WorldHeight: 32,
		Items:       items,
		Recipes:     recipes,
		Logger:      log,
	})
	if err != nil {
		return nil, err
	}

	heart := storage.Position{X: 8, Y: 8}
	session.World.SetTile(heart, storage.TileHeart)
	session.World.SetTile(storage.Position{X: 9, Y: 8}, storage.TileConnector)
	session.World.SetTile(storage.Position{X: 10, Y: 8}, storage.TileConnector)
	access := storage.Position{X: 11, Y: 8}
	session.World.SetTile(access, storage.TileAccess)

	unitPositions := []storage.Position{
		{X: 8, Y: 7}, {X: 9, Y: 7}, {X: 8, Y: 9}, {X: 9, Y: 9},
	}
	for _, pos := range unitPositions {
		if _, err := session.PlaceUnit(pos, storage.DefaultUnitSlots); err != nil {
			return nil, err
		}
	}

	if _, err := session.AccessFrom(access); err != nil {
		return nil, err
	}

	session.AddStation(craft.StationWorkBench)
	session.AddStation(craft.StationFurnace)
	session.AddStation(craft.StationAnvil)

	starter := []storage.ItemSnapshot{
		{Item: craft.ItemWood, Count: 120},
		{Item: craft.ItemStone, Count: 80},
		{Item: craft.ItemGel, Count: 30},
		{Item: craft.ItemIronOre, Count: 45},
		{Item: craft.ItemCobweb, Count: 14},
	}
	for _, s := range starter {
		if rem := session.Provider.Deposit(s.Item, s.Count); rem > 0 {
			return nil, fmt.Errorf("demo setup: %d %s did not fit", rem, s.Item)
		}
	}
	session.Inventory.Slots[10] = storage.ItemStack{Item: craft.ItemWood, Count: 25}
	session.Inventory.Slots[11] = storage.ItemStack{Item: craft.ItemGel, Count: 5}

	return session, nil
}

type shell struct {
	session *craft.Session
	parser  *parser.Parser
}

func newShell(session *craft.Session) *shell {
	p := parser.New([]parser.CommandDef{
		{Canonical: "help", Aliases: []string{"h", "commands"}},
		{Canonical: "quit", Aliases: []string{"exit", "q"}},
		{Canonical: "count", Aliases: []string{"have"}, MinArgs: 1},
		{Canonical: "storage", Aliases: []string{"list", "contents"}},
		{Canonical: "inventory", Aliases: []string{"inv", "bag"}},
		{Canonical: "craft", Aliases: []string{"make", "build"}, MinArgs: 1},
		{Canonical: "check", Aliases: []string{"can"}, MinArgs: 1},
		{Canonical: "withdraw", Aliases: []string{"take"}, MinArgs: 1},
		{Canonical: "deposit", Aliases: []string{"store", "put"}, MinArgs: 1},
		{Canonical: "quickstack", Aliases: []string{"qs", "stack"}},
		{Canonical: "network", Aliases: []string{"net"}},
		{Canonical: "items", Aliases: []string{"catalog"}},
		{Canonical: "recipes", Aliases: []string{"recipe"}},
	})
	return &shell{session: session, parser: p}
}

func (s *shell) dispatch(line string) (string, bool) {
	intent := s.parser.Parse(line)
	if !intent.Recognised() {
		if intent.Suggestion != "" {
			return fmt.Sprintf("Unknown command. Did you mean %q?", intent.Suggestion), false
		}
		return "Unknown command. Type 'help' for the list.", false
	}

	switch intent.Verb {
	case "help":
		return "Commands: " + s.parser.Commands(), false
	case "quit":
		return "Bye.", true
	case "count":
		return s.cmdCount(intent), false
	case "storage":
		return formatSnapshots("Storage", s.session.Provider.Snapshots()), false
	case "inventory":
		return formatSnapshots("Inventory", s.session.Inventory.Snapshot()), false
	case "check":
		return s.cmdCheck(intent), false
	case "craft":
		return s.cmdCraft(intent), false
	case "withdraw":
		return s.cmdWithdraw(intent), false
	case "deposit":
		return s.cmdDeposit(intent), false
	case "quickstack":
		return s.cmdQuickStack(), false
	case "network":
		return s.cmdNetwork(), false
	case "items":
		return s.cmdItems(), false
	case "recipes":
		return s.cmdRecipes(), false
	}
	return "Unknown command. Type 'help' for the list.", false
}

func (s *shell) resolveItem(args []string) (storage.ItemDef, string) {
	if len(args) == 0 {
		return storage.ItemDef{}, "Which item?"
	}
	query := strings.Join(args, " ")
	def, ok := s.session.Items.FindByName(query)
	if !ok {
		return storage.ItemDef{}, fmt.Sprintf("No item matches %q.", query)
	}
	return def, ""
}

func (s *shell) cmdCount(intent parser.Intent) string {
	def, msg := s.resolveItem(intent.Args)
	if msg != "" {
		return msg
	}
	inStorage := s.session.Provider.ItemCount(def.ID)
	inInv := s.session.Inventory.Count(def.ID)
	return fmt.Sprintf("%s: %d in storage, %d carried", def.Name, inStorage, inInv)
}

func (s *shell) cmdCheck(intent parser.Intent) string {
	def, msg := s.resolveItem(intent.Args)
	if msg != "" {
		return msg
	}
	qty := 1
	if intent.HasQty && intent.Quantity > 0 {
		qty = intent.Quantity
	}
	res := s.session.CanCraft(def.ID, qty)
	if res.Feasible {
		return fmt.Sprintf("Yes: %d %s can be crafted.", qty, def.Name)
	}
	var parts []string
	for _, sh := range res.Shortages {
		parts = append(parts, fmt.Sprintf("%s x%d", sh.Item, sh.Need))
	}
	if len(parts) > 0 {
		return fmt.Sprintf("No: missing %s.", strings.Join(parts, ", "))
	}
	return fmt.Sprintf("No: %v", res.Err)
}

func (s *shell) cmdCraft(intent parser.Intent) string {
	def, msg := s.resolveItem(intent.Args)
	if msg != "" {
		return msg
	}
	qty := 1
	if intent.HasQty && intent.Quantity > 0 {
		qty = intent.Quantity
	}
	res, err := s.session.Craft(def.ID, qty)
	if err != nil {
		return fmt.Sprintf("Cannot craft %s: %v", def.Name, err)
	}
	if res.Err != nil {
		return fmt.Sprintf("Craft interrupted: %v", res.Err)
	}
	return fmt.Sprintf("Crafted %d %s in %d steps.", res.Produced, def.Name, res.StepsCompleted)
}

func (s *shell) cmdWithdraw(intent parser.Intent) string {
	def, msg := s.resolveItem(intent.Args)
	if msg != "" {
		return msg
	}
	qty := 1
	if intent.HasQty {
		if intent.Quantity < 0 {
			qty = s.session.Provider.ItemCount(def.ID)
		} else {
			qty = intent.Quantity
		}
	}
	moved := s.session.Provider.Withdraw(def.ID, qty)
	if moved == 0 {
		return fmt.Sprintf("No %s in storage.", def.Name)
	}
	if rem := s.session.Inventory.Deposit(def.ID, moved, def.MaxStack); rem > 0 {
		// Inventory full; put what bounced back.
		s.session.Provider.Deposit(def.ID, rem)
		moved -= rem
	}
	return fmt.Sprintf("Withdrew %d %s.", moved, def.Name)
}

func (s *shell) cmdDeposit(intent parser.Intent) string {
	def, msg := s.resolveItem(intent.Args)
	if msg != "" {
		return msg
	}
	qty := 1
	if intent.HasQty {
		if intent.Quantity < 0 {
			qty = s.session.Inventory.Count(def.ID)
		} else {
			qty = intent.Quantity
		}
	}
	moved := s.session.Inventory.Withdraw(def.ID, qty)
	if moved == 0 {
		return fmt.Sprintf("Not carrying any %s.", def.Name)
	}
	if rem := s.session.Provider.Deposit(def.ID, moved); rem > 0 {
		s.session.Inventory.Deposit(def.ID, rem, def.MaxStack)
		moved -= rem
	}
	return fmt.Sprintf("Deposited %d %s.", moved, def.Name)
}

func (s *shell) cmdQuickStack() string {
	var transfers []storage.Transfer
	total := s.session.Provider.QuickStack(s.session.Inventory, storage.QuickStackOptions{}, &transfers)
	if total == 0 {
		return "Nothing to quick stack."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Quick stacked %d items:", total)
	for _, t := range transfers {
		fmt.Fprintf(&b, "\n  %s x%d -> unit (%d,%d)", t.Item, t.Count, t.To.X, t.To.Y)
	}
	return b.String()
}

func (s *shell) cmdNetwork() string {
	res, err := s.session.AccessFrom(storage.Position{X: 11, Y: 8})
	if err != nil {
		return fmt.Sprintf("Network unavailable: %v", err)
	}
	return fmt.Sprintf("Network: heart at (%d,%d), %d storage units online.",
		res.RootPos.X, res.RootPos.Y, res.UnitCount())
}

func (s *shell) cmdItems() string {
	var b strings.Builder
	b.WriteString("Known items:")
	for _, def := range s.session.Items.All() {
		fmt.Fprintf(&b, "\n  %-16s %s", def.ID, def.Name)
	}
	return b.String()
}

func (s *shell) cmdRecipes() string {
	var b strings.Builder
	b.WriteString("Recipes:")
	for _, r := range s.session.Index.All() {
		var ings []string
		for _, ing := range r.Ingredients {
			ings = append(ings, fmt.Sprintf("%dx %s", ing.Count, ing.Item))
		}
		fmt.Fprintf(&b, "\n  %dx %-16s <- %s", r.OutputCount, r.Output, strings.Join(ings, " + "))
		if len(r.Stations) > 0 {
			var sts []string
			for _, st := range r.Stations {
				sts = append(sts, string(st))
			}
			fmt.Fprintf(&b, " @ %s", strings.Join(sts, ", "))
		}
	}
	return b.String()
}

func formatSnapshots(label string, snaps []storage.ItemSnapshot) string {
	if len(snaps) == 0 {
		return label + ": empty"
	}
	var b strings.Builder
	b.WriteString(label + ":")
	for _, s := range snaps {
		fmt.Fprintf(&b, "\n  %-16s x%d", s.Item, s.Count)
	}
	return b.String()
}
