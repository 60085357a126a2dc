package parser

import (
	"strconv"
	"strings"
)

func normaliseInput(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteByte(' ')
		}
		lastSpace = true
	}
	return strings.TrimSpace(b.String())
}

func tokenise(normalised string) []string {
	return strings.Fields(normalised)
}

// splitQuantity strips one trailing count token ("craft torch 5") or the
// word "all" and returns the remaining args.
func splitQuantity(tokens []string) (args []string, qty int, has bool) {
	if len(tokens) == 0 {
		return tokens, 0, false
	}
	last := tokens[len(tokens)-1]
	if last == "all" {
		return tokens[:len(tokens)-1], -1, true
	}
	if n, err := strconv.Atoi(last); err == nil && n >= 0 {
		return tokens[:len(tokens)-1], n, true
	}
	return tokens, 0, false
}
