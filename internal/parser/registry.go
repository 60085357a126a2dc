package parser

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

type phrase struct {
	canonical string
	alias     string
}

type Registry struct {
	commands map[string]CommandDef
	phrases  []phrase
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]CommandDef)}
}

func (r *Registry) RegisterCommand(c CommandDef) {
	c.Canonical = normaliseInput(c.Canonical)
	if c.Canonical == "" {
		return
	}
	r.commands[c.Canonical] = c
	r.phrases = append(r.phrases, phrase{canonical: c.Canonical, alias: c.Canonical})
	for _, a := range c.Aliases {
		if n := normaliseInput(a); n != "" {
			r.phrases = append(r.phrases, phrase{canonical: c.Canonical, alias: n})
		}
	}
}

func (r *Registry) command(canonical string) (CommandDef, bool) {
	c, ok := r.commands[canonical]
	return c, ok
}

type match struct {
	canonical string
	score     float64
}

// matchVerb scores the first token against every registered phrase: exact
// match wins outright, otherwise levenshtein distance relative to phrase
// length decides.
func (r *Registry) matchVerb(token string) (match, []match) {
	var all []match
	for _, p := range r.phrases {
		if p.alias == token {
			return match{canonical: p.canonical, score: 1}, nil
		}
		longest := max(len(p.alias), len(token))
		if longest == 0 {
			continue
		}
		d := levenshtein.ComputeDistance(token, p.alias)
		all = append(all, match{
			canonical: p.canonical,
			score:     1 - float64(d)/float64(longest),
		})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })
	// Collapse duplicate canonicals, keeping the best score.
	seen := make(map[string]bool)
	var uniq []match
	for _, m := range all {
		if seen[m.canonical] {
			continue
		}
		seen[m.canonical] = true
		uniq = append(uniq, m)
	}
	if len(uniq) == 0 {
		return match{}, nil
	}
	return uniq[0], uniq[1:]
}

func (r *Registry) commandList() string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
