package parser

import (
	"strconv"
	"strings"
)

type Parser struct {
	registry *Registry
}

func New() *Parser {
	return &Parser{registry: DefaultRegistry()}
}

func (p *Parser) RegisterCommand(c CommandDef) {
	p.registry.RegisterCommand(c)
}

func (p *Parser) Parse(raw string) Intent {
	intent := Intent{
		Raw:        raw,
		Normalised: normaliseInput(raw),
		Kind:       Unknown,
		Confidence: 0,
	}
	if intent.Normalised == "" {
		intent.Clarify = &ClarifyQuestion{Prompt: "Enter a command: cast, travel, rod, inventory or quit."}
		return intent
	}

	tokens := tokenise(intent.Normalised)
	cmdMatch, alternates := p.registry.matchCommand(tokens)
	if cmdMatch.Canonical == "" || cmdMatch.Score < 0.5 {
		if inferred := inferFreeTextIntent(intent.Raw, intent.Normalised); inferred != nil {
			return *inferred
		}
		intent.Clarify = &ClarifyQuestion{
			Prompt: "I couldn't map that to a command. Try cast, travel, rod, inventory, quit or help.",
		}
		return intent
	}

	if len(alternates) > 0 && (cmdMatch.Score-alternates[0].Score) < 0.05 && alternates[0].Score > 0.65 {
		intent.Clarify = &ClarifyQuestion{
			Prompt: "Did you mean:",
			Options: []Intent{
				{Raw: raw, Normalised: cmdMatch.Canonical, Kind: commandKind(cmdMatch.Canonical), Verb: cmdMatch.Canonical, Confidence: cmdMatch.Score},
				{Raw: raw, Normalised: alternates[0].Canonical, Kind: commandKind(alternates[0].Canonical), Verb: alternates[0].Canonical, Confidence: alternates[0].Score},
			},
		}
		return intent
	}

	intent.Verb = cmdMatch.Canonical
	intent.Kind = commandKind(intent.Verb)
	intent.Confidence = clampScore(cmdMatch.Score)

	argsTokens := tokens
	if cmdMatch.Consumed > 0 && len(tokens) >= cmdMatch.Consumed {
		argsTokens = tokens[cmdMatch.Consumed:]
	}
	args, index := splitIndex(argsTokens)
	intent.Index = index
	intent.Args = args

	def, _ := p.registry.command(intent.Verb)
	if def.MaxArgs == 0 && (len(intent.Args) > 0 || intent.Index != nil) {
		// "cast now please" still casts, but with less certainty.
		intent.Args = nil
		intent.Index = nil
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}
	if def.MaxArgs > 0 && len(intent.Args) > def.MaxArgs {
		intent.Args = append([]string(nil), intent.Args[:def.MaxArgs]...)
		intent.Confidence = clampScore(intent.Confidence - 0.05)
	}

	if intent.Confidence < 0.52 && intent.Clarify == nil {
		intent.Clarify = &ClarifyQuestion{Prompt: "I have low confidence in that parse. Please rephrase or pick a clearer command."}
	}
	return intent
}

func commandKind(verb string) IntentKind {
	switch verb {
	case "help":
		return Help
	case "inventory":
		return Query
	default:
		return Command
	}
}

func splitIndex(tokens []string) ([]string, *int) {
	if len(tokens) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(tokens))
	var index *int
	for _, token := range tokens {
		if index == nil {
			if n, ok := parseIndexToken(token); ok {
				index = &n
				continue
			}
		}
		out = append(out, token)
	}
	if len(out) == 0 {
		out = nil
	}
	return out, index
}

func inferFreeTextIntent(raw string, normalised string) *Intent {
	n := normalised
	makeIntent := func(kind IntentKind, verb string, confidence float64) *Intent {
		return &Intent{
			Raw:        raw,
			Normalised: normalised,
			Kind:       kind,
			Verb:       verb,
			Confidence: clampScore(confidence),
		}
	}

	if containsAnyPhrase(n, "what did i catch", "what have i caught", "show my catches", "my journal", "check my journal") {
		return makeIntent(Query, "inventory", 0.9)
	}
	if containsAnyPhrase(n, "go fishing", "try for a bite", "drop a line", "lets fish", "lets cast") {
		return makeIntent(Command, "cast", 0.86)
	}
	if containsAnyPhrase(n, "somewhere else", "new spot", "different spot", "change location") {
		return makeIntent(Command, "travel", 0.82)
	}
	if containsAnyPhrase(n, "new rod", "different rod", "better rod") {
		return makeIntent(Command, "rod", 0.82)
	}
	if containsAnyPhrase(n, "im done", "i m done", "call it a day", "head home") {
		return makeIntent(Command, "quit", 0.8)
	}
	return nil
}

func containsAnyPhrase(value string, phrases ...string) bool {
	for _, phrase := range phrases {
		if containsPhrase(value, phrase) {
			return true
		}
	}
	return false
}

func containsPhrase(value, phrase string) bool {
	p := normaliseInput(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(" "+value+" ", " "+p+" ")
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// IntentToCommandString renders an intent back into canonical command text.
func IntentToCommandString(intent Intent) string {
	verb := normaliseInput(intent.Verb)
	if verb == "" {
		return ""
	}
	args := make([]string, 0, len(intent.Args)+1)
	if intent.Index != nil {
		args = append(args, strconv.Itoa(*intent.Index))
	}
	for _, arg := range intent.Args {
		n := normaliseInput(arg)
		if n != "" {
			args = append(args, n)
		}
	}
	if len(args) == 0 {
		return verb
	}
	return verb + " " + strings.Join(args, " ")
}
