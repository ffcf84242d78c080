package game

import (
	"fmt"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
)

const (
	bonusDayPayout = 6

	noBiteNarration = "A bite nibbles then darts away. Try again!"
)

// PlayerProgress is owned by the caller and only changed by a landed catch.
type PlayerProgress struct {
	Currency  int                `json:"currency"`
	CatchLog  []catalog.Creature `json:"catch_log"`
	Equipment catalog.Equipment  `json:"equipment"`
}

func NewPlayerProgress(currency int, equipment catalog.Equipment) PlayerProgress {
	return PlayerProgress{Currency: currency, Equipment: equipment}
}

// TotalValue sums the value of every creature in the catch log.
func (p *PlayerProgress) TotalValue() int {
	total := 0
	for _, c := range p.CatchLog {
		total += c.Value
	}
	return total
}

type EncounterResult struct {
	Landed   bool              `json:"landed"`
	Creature *catalog.Creature `json:"creature,omitempty"`
	Trace    []string          `json:"trace"`
	Payout   int               `json:"payout"`
	// Rounds is how many fight rounds ran; zero when nothing bit.
	Rounds int `json:"rounds"`
}

// Payout is what a landed creature earns at a location.
func Payout(location catalog.Location, creature catalog.Creature, isBonusDay bool) int {
	payout := location.BasePayout + creature.Value
	if isBonusDay {
		payout += bonusDayPayout
	}
	return payout
}

// Engine composes bite resolution and the tension fight against one catalog.
type Engine struct {
	catalog *catalog.Catalog
}

func NewEngine(c *catalog.Catalog) *Engine {
	if c == nil {
		c = catalog.Default()
	}
	return &Engine{catalog: c}
}

func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Attempt runs one cast. Progress is mutated only when the catch lands.
func (e *Engine) Attempt(progress *PlayerProgress, location catalog.Location, day DayContext, rng RandomSource) (EncounterResult, error) {
	if progress == nil {
		return EncounterResult{}, fmt.Errorf("%w: nil player progress", ErrInvalidInput)
	}
	if rng == nil {
		return EncounterResult{}, fmt.Errorf("%w: nil random source", ErrInvalidInput)
	}
	if !e.catalog.HasLocation(location) {
		return EncounterResult{}, fmt.Errorf("%w: location %q is not in the catalog", ErrInvalidInput, location.Name)
	}
	if !e.catalog.HasEquipment(progress.Equipment) {
		return EncounterResult{}, fmt.Errorf("%w: equipment %q is not in the catalog", ErrInvalidInput, progress.Equipment.Name)
	}

	bite, err := ResolveBite(
		location,
		progress.Equipment,
		e.catalog.RarityWeights(),
		e.catalog.ListCreaturesAt(location.Name),
		day.BonusDay,
		rng,
	)
	if err != nil {
		return EncounterResult{}, err
	}
	if !bite.Bit {
		return EncounterResult{Trace: []string{noBiteNarration}}, nil
	}

	creature := *bite.Creature
	trace := []string{fmt.Sprintf("Hooked a %s %s!", creature.Rarity, creature.Name)}
	fight := RunTensionSimulation(creature, progress.Equipment, day.BonusDay, rng)
	trace = append(trace, fight.Trace...)

	if !fight.Landed {
		return EncounterResult{Creature: &creature, Trace: trace, Rounds: fight.Rounds}, nil
	}

	payout := Payout(location, creature, day.BonusDay)
	progress.CatchLog = append(progress.CatchLog, creature)
	progress.Currency += payout
	trace = append(trace, fmt.Sprintf("Earned %d shells. Total shells: %d", payout, progress.Currency))
	return EncounterResult{
		Landed:   true,
		Creature: &creature,
		Trace:    trace,
		Payout:   payout,
		Rounds:   fight.Rounds,
	}, nil
}
