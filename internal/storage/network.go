package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

var (
	// ErrNetworkNotFound means the query origin is not a network member tile.
	ErrNetworkNotFound = errors.New("no storage network at origin")
	// ErrNoRootConnected means the component has no reachable storage heart.
	ErrNoRootConnected = errors.New("no storage heart connected")
	// ErrNetworkTooLarge means traversal exceeded the visited-node bound.
	ErrNetworkTooLarge = errors.New("storage network exceeds traversal bound")
)

// MaxNetworkNodes bounds a single resolution so a corrupted or adversarial
// tile layout cannot stall the frame.
const MaxNetworkNodes = 2048

const resolutionTTL = 2 * time.Second

// NetworkResult describes one resolved connected component. Treat it as
// stale after any tile mutation; never persist it across frames.
type NetworkResult struct {
	HasRoot  bool
	RootPos  Position
	Units    []Position
	Revision uint64

	unitSet map[Position]struct{}
}

func (r NetworkResult) UnitCount() int {
	return len(r.Units)
}

func (r NetworkResult) ContainsUnit(p Position) bool {
	_, ok := r.unitSet[p]
	return ok
}

// NetworkResolver performs bounded breadth-first resolution over the world
// grid. Results are cached per origin and world revision; the cache is a
// pure performance layer and never changes observable results.
type NetworkResolver struct {
	world    *World
	log      *slog.Logger
	cache    *gocache.Cache
	maxNodes int
}

func NewNetworkResolver(world *World, log *slog.Logger) *NetworkResolver {
	if log == nil {
		log = slog.Default()
	}
	return &NetworkResolver{
		world:    world,
		log:      log,
		cache:    gocache.New(resolutionTTL, time.Minute),
		maxNodes: MaxNetworkNodes,
	}
}

func (r *NetworkResolver) cacheKey(origin Position) string {
	return fmt.Sprintf("%d:%d@%d", origin.X, origin.Y, r.world.Revision())
}

// Resolve returns the connected component containing origin. The result is
// identical for every origin inside the same component.
func (r *NetworkResolver) Resolve(origin Position) (NetworkResult, error) {
	if r == nil || r.world == nil {
		return NetworkResult{}, ErrNetworkNotFound
	}
	if !r.world.TileAt(origin).IsNetworkMember() {
		return NetworkResult{}, fmt.Errorf("%w at (%d,%d)", ErrNetworkNotFound, origin.X, origin.Y)
	}
	key := r.cacheKey(origin)
	if cached, ok := r.cache.Get(key); ok {
		res := cached.(NetworkResult)
		if !res.HasRoot {
			return res, ErrNoRootConnected
		}
		return res, nil
	}

	res, err := r.traverse(origin)
	if err != nil {
		return NetworkResult{}, err
	}
	r.cache.Set(key, res, gocache.DefaultExpiration)
	if !res.HasRoot {
		return res, ErrNoRootConnected
	}
	return res, nil
}

func (r *NetworkResolver) traverse(origin Position) (NetworkResult, error) {
	visited := map[Position]struct{}{origin: {}}
	queue := []Position{origin}

	var units []Position
	var roots []Position

	neighbors := [4]Position{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for len(queue) > 0 {
		if len(visited) > r.maxNodes {
			r.log.Warn("storage network traversal bound exceeded",
				"origin_x", origin.X, "origin_y", origin.Y, "bound", r.maxNodes)
			return NetworkResult{}, fmt.Errorf("%w (bound %d)", ErrNetworkTooLarge, r.maxNodes)
		}
		pos := queue[0]
		queue = queue[1:]

		switch r.world.TileAt(pos) {
		case TileHeart:
			roots = append(roots, pos)
		case TileUnit:
			units = append(units, pos)
		}

		for _, off := range neighbors {
			next := Position{X: pos.X + off.X, Y: pos.Y + off.Y}
			if _, seen := visited[next]; seen {
				continue
			}
			if !r.world.TileAt(next).IsNetworkMember() {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	sort.Slice(units, func(i, j int) bool { return units[i].Less(units[j]) })
	res := NetworkResult{
		Units:    units,
		Revision: r.world.Revision(),
		unitSet:  make(map[Position]struct{}, len(units)),
	}
	for _, u := range units {
		res.unitSet[u] = struct{}{}
	}

	if len(roots) == 0 {
		return res, nil
	}
	// Pick the smallest reachable heart in (y, x) order. Origin-independent,
	// so every member of the component resolves the same root.
	sort.Slice(roots, func(i, j int) bool { return roots[i].Less(roots[j]) })
	if len(roots) > 1 {
		r.log.Warn("multiple storage hearts reachable from one component",
			"count", len(roots),
			"selected_x", roots[0].X, "selected_y", roots[0].Y)
	}
	res.HasRoot = true
	res.RootPos = roots[0]
	return res, nil
}
