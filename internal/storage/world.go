package storage

// TileKind classifies one world cell for network resolution.
type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileHeart
	TileUnit
	TileComponent
	TileConnector
	TileAccess
)

func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileHeart:
		return "heart"
	case TileUnit:
		return "unit"
	case TileComponent:
		return "component"
	case TileConnector:
		return "connector"
	case TileAccess:
		return "access"
	default:
		return "unknown"
	}
}

// IsNetworkMember reports whether a tile participates in network traversal.
func (k TileKind) IsNetworkMember() bool {
	return k != TileEmpty
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Less orders positions row-major (y first, then x).
func (p Position) Less(o Position) bool {
	if p.Y != o.Y {
		return p.Y < o.Y
	}
	return p.X < o.X
}

// World is the mutable tile grid the resolver traverses. Every mutation
// bumps Revision so cached resolutions can detect staleness.
type World struct {
	Width  int
	Height int

	tiles    []TileKind
	revision uint64
}

func NewWorld(width, height int) *World {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &World{
		Width:  width,
		Height: height,
		tiles:  make([]TileKind, width*height),
	}
}

func (w *World) index(p Position) (int, bool) {
	if w == nil {
		return 0, false
	}
	if p.X < 0 || p.Y < 0 || p.X >= w.Width || p.Y >= w.Height {
		return 0, false
	}
	return p.Y*w.Width + p.X, true
}

// TileAt returns TileEmpty for out-of-bounds positions.
func (w *World) TileAt(p Position) TileKind {
	idx, ok := w.index(p)
	if !ok {
		return TileEmpty
	}
	return w.tiles[idx]
}

// SetTile places or clears a tile. Out-of-bounds writes are ignored.
func (w *World) SetTile(p Position, kind TileKind) {
	idx, ok := w.index(p)
	if !ok {
		return
	}
	if w.tiles[idx] == kind {
		return
	}
	w.tiles[idx] = kind
	w.revision++
}

func (w *World) Revision() uint64 {
	if w == nil {
		return 0
	}
	return w.revision
}
