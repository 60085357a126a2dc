// Package parser maps free-form shell input onto the storage hub's command
// vocabulary, tolerating typos through fuzzy phrase matching.
package parser

type Parser struct {
	registry *Registry
}

// minVerbScore is the fuzzy-match floor below which a verb is treated as
// unrecognised and only offered as a suggestion.
const minVerbScore = 0.6

func New(commands []CommandDef) *Parser {
	reg := NewRegistry()
	for _, c := range commands {
		reg.RegisterCommand(c)
	}
	return &Parser{registry: reg}
}

// Commands lists the registered canonical verbs for help output.
func (p *Parser) Commands() string {
	return p.registry.commandList()
}

func (p *Parser) Parse(raw string) Intent {
	intent := Intent{Raw: raw, Normalised: normaliseInput(raw)}
	if intent.Normalised == "" {
		return intent
	}
	tokens := tokenise(intent.Normalised)
	best, _ := p.registry.matchVerb(tokens[0])
	if best.canonical == "" {
		return intent
	}
	if best.score < minVerbScore {
		intent.Suggestion = best.canonical
		return intent
	}
	intent.Verb = best.canonical
	intent.Confidence = best.score

	args, qty, has := splitQuantity(tokens[1:])
	intent.Args = args
	intent.Quantity = qty
	intent.HasQty = has

	if def, ok := p.registry.command(intent.Verb); ok && len(intent.Args) < def.MinArgs {
		// Keep the verb so the shell can print targeted usage, but flag the
		// parse as incomplete through zero confidence.
		intent.Confidence = 0
	}
	return intent
}
