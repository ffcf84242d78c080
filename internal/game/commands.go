package game

import (
	"fmt"
	"strings"

	"github.com/appengine-ltd/fishing-friday/internal/parser"
)

type CommandResult struct {
	Handled bool
	Message string
	// Encounter is set when the command cast a line.
	Encounter *EncounterResult
	Quit      bool
}

const commandHelp = "Actions: [c]ast | [t]ravel [# or name] | [r]od [# or name] | [i]nventory | [q]uit"

var commandParser = parser.New()

// ExecuteCommand parses free text and runs the matching action. Menu
// numbers are 1-based.
func (s *Session) ExecuteCommand(raw string) (CommandResult, error) {
	intent := commandParser.Parse(raw)
	if intent.Clarify != nil {
		return CommandResult{Handled: false, Message: clarifyMessage(intent.Clarify)}, nil
	}

	switch intent.Verb {
	case "help":
		return CommandResult{Handled: true, Message: commandHelp}, nil
	case "cast":
		res, err := s.Cast()
		if err != nil {
			return CommandResult{}, err
		}
		lines := append(append([]string(nil), res.Trace...), LandingLine(res))
		return CommandResult{Handled: true, Message: joinLines(lines), Encounter: &res}, nil
	case "travel":
		return s.executeTravelCommand(intent)
	case "rod":
		return s.executeRodCommand(intent)
	case "inventory":
		return CommandResult{Handled: true, Message: joinLines(s.Inventory().Lines())}, nil
	case "quit":
		s.Quit()
		return CommandResult{Handled: true, Message: "Thanks for visiting the water today! Happy Friday.", Quit: true}, nil
	default:
		return CommandResult{Handled: false, Message: commandHelp}, nil
	}
}

func (s *Session) executeTravelCommand(intent parser.Intent) (CommandResult, error) {
	index, err := s.menuIndex(intent, func(name string) (int, error) {
		loc, err := s.Catalog().LocationByName(name)
		if err != nil {
			return -1, err
		}
		return indexOf(s.Catalog().ListLocations(), loc), nil
	})
	if err != nil {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Travel failed: %v", err)}, nil
	}
	if index < 0 {
		lines := append([]string{"Where to fish next?"}, s.LocationMenu()...)
		return CommandResult{Handled: true, Message: joinLines(lines)}, nil
	}
	if err := s.Travel(index); err != nil {
		if isInvalidInput(err) {
			return CommandResult{Handled: true, Message: fmt.Sprintf("Travel failed: %v", err)}, nil
		}
		return CommandResult{}, err
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("You travel to %s.\n%s", s.Location.Name, s.Location.Description)}, nil
}

func (s *Session) executeRodCommand(intent parser.Intent) (CommandResult, error) {
	index, err := s.menuIndex(intent, func(name string) (int, error) {
		rod, err := s.Catalog().EquipmentByName(name)
		if err != nil {
			return -1, err
		}
		return indexOf(s.Catalog().ListEquipment(), rod), nil
	})
	if err != nil {
		return CommandResult{Handled: true, Message: fmt.Sprintf("Equip failed: %v", err)}, nil
	}
	if index < 0 {
		lines := append([]string{"Which rod?"}, s.RodMenu()...)
		return CommandResult{Handled: true, Message: joinLines(lines)}, nil
	}
	if err := s.Reequip(index); err != nil {
		if isInvalidInput(err) {
			return CommandResult{Handled: true, Message: fmt.Sprintf("Equip failed: %v", err)}, nil
		}
		return CommandResult{}, err
	}
	return CommandResult{Handled: true, Message: fmt.Sprintf("Equipped %s", s.Progress.Equipment.Name)}, nil
}

// menuIndex returns a 0-based index from a 1-based number or a name, or -1
// when the intent carried neither.
func (s *Session) menuIndex(intent parser.Intent, byName func(string) (int, error)) (int, error) {
	if intent.Index != nil {
		return *intent.Index - 1, nil
	}
	if len(intent.Args) == 0 {
		return -1, nil
	}
	return byName(strings.Join(intent.Args, " "))
}

func clarifyMessage(q *parser.ClarifyQuestion) string {
	if len(q.Options) == 0 {
		return q.Prompt
	}
	verbs := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		verbs = append(verbs, o.Verb)
	}
	return fmt.Sprintf("%s %s", q.Prompt, strings.Join(verbs, " or "))
}

func indexOf[T comparable](list []T, v T) int {
	for i, item := range list {
		if item == v {
			return i
		}
	}
	return -1
}
