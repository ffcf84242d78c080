package parser

type IntentKind int

const (
	Command IntentKind = iota
	Query
	Help
	Unknown
)

type Intent struct {
	Raw        string
	Normalised string
	Kind       IntentKind
	Verb       string
	Args       []string
	// Index is the first numeric argument (1-based menu pick), if any.
	Index      *int
	Confidence float64
	Clarify    *ClarifyQuestion
}

type ClarifyQuestion struct {
	Prompt  string
	Options []Intent
}

// CommandDef is a verb and the phrases that select it. MaxArgs 0 means the
// command takes no arguments and any extra words are dropped.
type CommandDef struct {
	Canonical string
	Aliases   []string
	MaxArgs   int
}
