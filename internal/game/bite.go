package game

import (
	"fmt"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
)

const (
	baseBiteChance    = 0.45
	bonusDayBiteBoost = 0.10
	minBiteChance     = 0.15
	maxBiteChance     = 0.95

	prizedBonusMultiplier = 1.3
	plainBonusMultiplier  = 1.05
)

type BiteResult struct {
	Bit      bool
	Chance   float64
	Creature *catalog.Creature
}

// BiteChance is always within [0.15, 0.95] whatever the modifiers.
func BiteChance(location catalog.Location, equipment catalog.Equipment, isBonusDay bool) float64 {
	chance := baseBiteChance
	if isBonusDay {
		chance += bonusDayBiteBoost
	}
	chance += location.HookBonus + equipment.HookBonus
	return clampFloat(chance, minBiteChance, maxBiteChance)
}

// CreatureWeight scales the tier weight; bonus days tilt toward prized tiers
// without renormalising.
func CreatureWeight(c catalog.Creature, weights catalog.RarityWeights, isBonusDay bool) float64 {
	w := weights.Weight(c.Rarity)
	if !isBonusDay {
		return w
	}
	if c.Rarity.Prized() {
		return w * prizedBonusMultiplier
	}
	return w * plainBonusMultiplier
}

func ResolveBite(
	location catalog.Location,
	equipment catalog.Equipment,
	weights catalog.RarityWeights,
	creatures []catalog.Creature,
	isBonusDay bool,
	rng RandomSource,
) (BiteResult, error) {
	if len(creatures) == 0 {
		return BiteResult{}, fmt.Errorf("%w: location %q has no creatures", ErrInvalidState, location.Name)
	}

	chance := BiteChance(location, equipment, isBonusDay)
	if rng.Float64() >= chance {
		return BiteResult{Bit: false, Chance: chance}, nil
	}

	ws := make([]float64, len(creatures))
	for i, c := range creatures {
		ws[i] = CreatureWeight(c, weights, isBonusDay)
	}
	idx, err := rng.WeightedChoice(ws)
	if err != nil {
		return BiteResult{}, fmt.Errorf("pick creature at %q: %w", location.Name, err)
	}
	if idx < 0 || idx >= len(creatures) {
		return BiteResult{}, fmt.Errorf("%w: weighted choice returned index %d of %d", ErrInvalidState, idx, len(creatures))
	}
	creature := creatures[idx]
	return BiteResult{Bit: true, Chance: chance, Creature: &creature}, nil
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
