package storage

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// buildTestNetwork lays out a heart, connectors, units and an access point
// in one connected component and returns every member position.
func buildTestNetwork(w *World) []Position {
	layout := map[Position]TileKind{
		{X: 2, Y: 2}: TileHeart,
		{X: 3, Y: 2}: TileConnector,
		{X: 4, Y: 2}: TileConnector,
		{X: 5, Y: 2}: TileAccess,
		{X: 2, Y: 3}: TileUnit,
		{X: 3, Y: 3}: TileUnit,
		{X: 4, Y: 3}: TileComponent,
		{X: 4, Y: 4}: TileUnit,
	}
	members := make([]Position, 0, len(layout))
	for pos, kind := range layout {
		w.SetTile(pos, kind)
		members = append(members, pos)
	}
	return members
}

func TestResolveFindsRootAndUnits(t *testing.T) {
	w := NewWorld(10, 10)
	buildTestNetwork(w)
	r := NewNetworkResolver(w, testLogger())

	res, err := r.Resolve(Position{X: 5, Y: 2})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !res.HasRoot {
		t.Fatalf("expected a root to be found")
	}
	if res.RootPos != (Position{X: 2, Y: 2}) {
		t.Fatalf("expected root at (2,2), got (%d,%d)", res.RootPos.X, res.RootPos.Y)
	}
	if res.UnitCount() != 3 {
		t.Fatalf("expected 3 units, got %d", res.UnitCount())
	}
	for _, u := range []Position{{X: 2, Y: 3}, {X: 3, Y: 3}, {X: 4, Y: 4}} {
		if !res.ContainsUnit(u) {
			t.Fatalf("expected unit at (%d,%d) in result", u.X, u.Y)
		}
	}
	if res.ContainsUnit(Position{X: 4, Y: 2}) {
		t.Fatalf("connector must not be reported as a unit")
	}
}

func TestResolveSymmetry(t *testing.T) {
	w := NewWorld(10, 10)
	members := buildTestNetwork(w)
	r := NewNetworkResolver(w, testLogger())

	first, err := r.Resolve(members[0])
	if err != nil {
		t.Fatalf("resolve from %v failed: %v", members[0], err)
	}
	for _, origin := range members[1:] {
		res, err := r.Resolve(origin)
		if err != nil {
			t.Fatalf("resolve from %v failed: %v", origin, err)
		}
		if res.RootPos != first.RootPos {
			t.Fatalf("root differs by origin: %v vs %v", res.RootPos, first.RootPos)
		}
		if len(res.Units) != len(first.Units) {
			t.Fatalf("unit count differs by origin: %d vs %d", len(res.Units), len(first.Units))
		}
		for i := range res.Units {
			if res.Units[i] != first.Units[i] {
				t.Fatalf("unit set differs by origin at %d: %v vs %v", i, res.Units[i], first.Units[i])
			}
		}
	}
}

func TestResolveNoRoot(t *testing.T) {
	w := NewWorld(10, 10)
	w.SetTile(Position{X: 1, Y: 1}, TileUnit)
	w.SetTile(Position{X: 2, Y: 1}, TileConnector)
	r := NewNetworkResolver(w, testLogger())

	res, err := r.Resolve(Position{X: 1, Y: 1})
	if !errors.Is(err, ErrNoRootConnected) {
		t.Fatalf("expected ErrNoRootConnected, got %v", err)
	}
	if res.HasRoot {
		t.Fatalf("result must report hasRoot=false")
	}
}

func TestResolveOriginNotMember(t *testing.T) {
	w := NewWorld(10, 10)
	r := NewNetworkResolver(w, testLogger())
	if _, err := r.Resolve(Position{X: 5, Y: 5}); !errors.Is(err, ErrNetworkNotFound) {
		t.Fatalf("expected ErrNetworkNotFound, got %v", err)
	}
}

func TestResolveTraversalBound(t *testing.T) {
	w := NewWorld(100, 100)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			w.SetTile(Position{X: x, Y: y}, TileConnector)
		}
	}
	r := NewNetworkResolver(w, testLogger())
	if _, err := r.Resolve(Position{X: 50, Y: 50}); !errors.Is(err, ErrNetworkTooLarge) {
		t.Fatalf("expected ErrNetworkTooLarge, got %v", err)
	}
}

func TestResolveMultipleRootsDeterministic(t *testing.T) {
	w := NewWorld(10, 10)
	w.SetTile(Position{X: 1, Y: 1}, TileHeart)
	w.SetTile(Position{X: 2, Y: 1}, TileConnector)
	w.SetTile(Position{X: 3, Y: 1}, TileHeart)
	w.SetTile(Position{X: 2, Y: 2}, TileUnit)
	r := NewNetworkResolver(w, testLogger())

	want := Position{X: 1, Y: 1}
	for _, origin := range []Position{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 2, Y: 2}} {
		res, err := r.Resolve(origin)
		if err != nil {
			t.Fatalf("resolve from %v failed: %v", origin, err)
		}
		if res.RootPos != want {
			t.Fatalf("ambiguous root selection must be origin-independent: got %v from %v", res.RootPos, origin)
		}
	}
}

func TestResolveSeesTileMutations(t *testing.T) {
	w := NewWorld(10, 10)
	buildTestNetwork(w)
	r := NewNetworkResolver(w, testLogger())

	origin := Position{X: 5, Y: 2}
	res, err := r.Resolve(origin)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	before := res.UnitCount()

	// Attach a new unit; the cached result is keyed by world revision, so
	// the next resolve must include it.
	w.SetTile(Position{X: 5, Y: 3}, TileUnit)
	res, err = r.Resolve(origin)
	if err != nil {
		t.Fatalf("resolve after mutation failed: %v", err)
	}
	if res.UnitCount() != before+1 {
		t.Fatalf("expected %d units after attaching one, got %d", before+1, res.UnitCount())
	}
}
