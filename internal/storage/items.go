package storage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type ItemID string

// ItemDef describes one item kind. MaxStack bounds how many units share a
// container or inventory slot.
type ItemDef struct {
	ID       ItemID `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	MaxStack int    `json:"max_stack" yaml:"max_stack"`
}

const DefaultMaxStack = 999

// ItemSet is the item definition registry for one session. Immutable after
// registration is complete.
type ItemSet struct {
	defs  map[ItemID]ItemDef
	order []ItemID
}

func NewItemSet() *ItemSet {
	return &ItemSet{defs: make(map[ItemID]ItemDef)}
}

func (s *ItemSet) Register(def ItemDef) error {
	if s == nil {
		return fmt.Errorf("item set is nil")
	}
	def.ID = ItemID(strings.ToLower(strings.TrimSpace(string(def.ID))))
	if def.ID == "" {
		return fmt.Errorf("item id must not be empty")
	}
	if def.MaxStack <= 0 {
		def.MaxStack = DefaultMaxStack
	}
	if strings.TrimSpace(def.Name) == "" {
		def.Name = string(def.ID)
	}
	if _, exists := s.defs[def.ID]; !exists {
		s.order = append(s.order, def.ID)
	}
	s.defs[def.ID] = def
	return nil
}

func (s *ItemSet) Get(id ItemID) (ItemDef, bool) {
	if s == nil {
		return ItemDef{}, false
	}
	def, ok := s.defs[ItemID(strings.ToLower(strings.TrimSpace(string(id))))]
	return def, ok
}

// MaxStack falls back to DefaultMaxStack for unregistered items so stack
// math stays safe against partial catalogs.
func (s *ItemSet) MaxStack(id ItemID) int {
	if def, ok := s.Get(id); ok {
		return def.MaxStack
	}
	return DefaultMaxStack
}

func (s *ItemSet) All() []ItemDef {
	if s == nil {
		return nil
	}
	defs := make([]ItemDef, 0, len(s.order))
	for _, id := range s.order {
		defs = append(defs, s.defs[id])
	}
	return defs
}

// FindByName resolves a display name or id to an item, trying exact id,
// exact name, substring, then fuzzy distance. Empty ok means no plausible
// match.
func (s *ItemSet) FindByName(query string) (ItemDef, bool) {
	if s == nil {
		return ItemDef{}, false
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return ItemDef{}, false
	}
	if def, ok := s.defs[ItemID(q)]; ok {
		return def, true
	}
	for _, id := range s.order {
		if strings.ToLower(s.defs[id].Name) == q {
			return s.defs[id], true
		}
	}
	var sub []ItemDef
	for _, id := range s.order {
		if strings.Contains(strings.ToLower(s.defs[id].Name), q) || strings.Contains(string(id), q) {
			sub = append(sub, s.defs[id])
		}
	}
	if len(sub) > 0 {
		sort.Slice(sub, func(i, j int) bool { return sub[i].ID < sub[j].ID })
		return sub[0], true
	}

	best := ItemDef{}
	bestDist := -1
	for _, id := range s.order {
		def := s.defs[id]
		d := levenshtein.ComputeDistance(q, strings.ToLower(def.Name))
		if dID := levenshtein.ComputeDistance(q, string(id)); dID < d {
			d = dID
		}
		if bestDist < 0 || d < bestDist {
			best = def
			bestDist = d
		}
	}
	// Accept fuzzy matches only when most of the query survives.
	if bestDist >= 0 && bestDist <= len(q)/2 {
		return best, true
	}
	return ItemDef{}, false
}
