package parser

// Intent is the parsed form of one shell input line.
type Intent struct {
	Raw        string
	Normalised string
	Verb       string
	Args       []string
	Quantity   int
	HasQty     bool
	Confidence float64
	Suggestion string
}

// Recognised reports whether the input mapped to a registered command.
func (i Intent) Recognised() bool {
	return i.Verb != ""
}

// CommandDef registers one shell command with its aliases.
type CommandDef struct {
	Canonical string
	Aliases   []string
	MinArgs   int
}
