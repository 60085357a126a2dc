package craft

import (
	"fmt"
	"log/slog"

	"github.com/appengine-ltd/storage-hub/internal/storage"
)

// SessionConfig describes one world session. Items and Recipes form the
// catalog feed supplied once at session start.
type SessionConfig struct {
	WorldWidth  int
	WorldHeight int
	Items       *storage.ItemSet
	Recipes     []Recipe
	Logger      *slog.Logger
}

func (c SessionConfig) Validate() error {
	if c.WorldWidth < 1 || c.WorldHeight < 1 {
		return fmt.Errorf("world size must be positive, got %dx%d", c.WorldWidth, c.WorldHeight)
	}
	if c.Items == nil {
		return fmt.Errorf("item set is required")
	}
	return nil
}

// Session ties the engine's components together for one world session.
// Everything is constructed here and passed explicitly; there is no
// package-level state, so sessions build at world start and are simply
// discarded at world end.
type Session struct {
	World     *storage.World
	Resolver  *storage.NetworkResolver
	Provider  *storage.SingleplayerProvider
	Inventory *storage.Inventory
	Items     *storage.ItemSet
	Index     *Index
	Env       Env
	Checker   *Checker
	Crafter   *Crafter

	log *slog.Logger
}

func NewSession(cfg SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	index, err := BuildIndex(cfg.Recipes, cfg.Items)
	if err != nil {
		return nil, fmt.Errorf("building recipe index: %w", err)
	}
	world := storage.NewWorld(cfg.WorldWidth, cfg.WorldHeight)
	provider := storage.NewSingleplayerProvider(cfg.Items, log)
	inventory := storage.NewInventory()
	s := &Session{
		World:     world,
		Resolver:  storage.NewNetworkResolver(world, log),
		Provider:  provider,
		Inventory: inventory,
		Items:     cfg.Items,
		Index:     index,
		Env:       NewEnv(),
		Checker:   NewChecker(index),
		Crafter:   NewCrafter(index, provider, inventory, cfg.Items, log),
		log:       log,
	}
	return s, nil
}

// PlaceUnit places a unit tile and registers its container in one move.
func (s *Session) PlaceUnit(pos storage.Position, slots int) (*storage.Container, error) {
	if s == nil {
		return nil, fmt.Errorf("session is nil")
	}
	s.World.SetTile(pos, storage.TileUnit)
	c := storage.NewContainer(pos, slots)
	if err := s.Provider.RegisterContainer(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AccessFrom resolves the network reachable from origin and narrows the
// provider to its unit positions. A network without a reachable heart is
// refused and leaves the provider untouched.
func (s *Session) AccessFrom(origin storage.Position) (storage.NetworkResult, error) {
	if s == nil {
		return storage.NetworkResult{}, fmt.Errorf("session is nil")
	}
	res, err := s.Resolver.Resolve(origin)
	if err != nil {
		return res, err
	}
	s.Provider.SetActivePositions(res.Units)
	s.log.Debug("storage access opened",
		"origin_x", origin.X, "origin_y", origin.Y,
		"units", res.UnitCount(), "root_x", res.RootPos.X, "root_y", res.RootPos.Y)
	return res, nil
}

func (s *Session) AddStation(id StationID) {
	if s == nil {
		return
	}
	s.Env.Stations[id] = true
}

func (s *Session) RemoveStation(id StationID) {
	if s == nil {
		return
	}
	delete(s.Env.Stations, id)
}

func (s *Session) SetFlag(name string, value bool) {
	if s == nil {
		return
	}
	s.Env.Flags[name] = value
}

// Availability snapshots merged counts for a feasibility check.
func (s *Session) Availability() Availability {
	if s == nil {
		return nil
	}
	return MergedAvailability(s.Provider, s.Inventory)
}

// CanCraft is the read-only entry point a UI may call every frame.
func (s *Session) CanCraft(item storage.ItemID, qty int) Result {
	if s == nil {
		return Result{Err: fmt.Errorf("session is nil")}
	}
	return s.Checker.CanCraft(item, qty, s.Availability(), s.Env)
}

// Craft runs the full request pipeline: check, plan, execute.
func (s *Session) Craft(item storage.ItemID, qty int) (ExecutionResult, error) {
	if s == nil {
		return ExecutionResult{}, fmt.Errorf("session is nil")
	}
	if res := s.CanCraft(item, qty); !res.Feasible {
		return ExecutionResult{Target: item, Requested: qty}, res.Err
	}
	plan, err := s.Crafter.BuildPlan(item, qty, s.Env)
	if err != nil {
		return ExecutionResult{Target: item, Requested: qty}, err
	}
	return s.Crafter.Execute(plan), nil
}
