package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
)

const (
	tensionStart      = 50.0
	tensionSnapLow    = 10.0
	tensionSnapHigh   = 90.0
	maxFightRounds    = 3
	surgeSpread       = 12
	reelTensionDelta  = 12.0
	slackTensionDelta = -10.0

	baseForgiveness     = 18
	bonusDayForgiveness = 4

	gaugeSlots = 20
)

type LineAction int

const (
	LineReel LineAction = iota
	LineHold
	LineSlack
)

func (a LineAction) String() string {
	switch a {
	case LineReel:
		return "reel"
	case LineHold:
		return "hold"
	case LineSlack:
		return "slack"
	default:
		return "unknown"
	}
}

func (a LineAction) delta() float64 {
	switch a {
	case LineReel:
		return reelTensionDelta
	case LineSlack:
		return slackTensionDelta
	default:
		return 0
	}
}

func (a LineAction) narration() string {
	switch a {
	case LineReel:
		return "You reel firmly, pulling tension up."
	case LineSlack:
		return "You ease the line and let the fish run."
	default:
		return "You hold steady, letting the rod flex."
	}
}

const (
	snapNarration    = "The line snapped! Too much tension."
	landingNarration = "You guide the catch into your net!"
)

type TensionResult struct {
	Landed  bool
	Rounds  int
	Tension float64
	Trace   []string
}

// Forgiveness is the recentering strength in percent.
func Forgiveness(equipment catalog.Equipment, isBonusDay bool) int {
	f := baseForgiveness + equipment.TensionForgiveness
	if isBonusDay {
		f += bonusDayForgiveness
	}
	return f
}

// RunTensionSimulation fights the creature for at most three rounds. The
// line snaps as soon as tension leaves (10, 90), checked after the surge and
// again after the rod pulls tension back toward the centre.
func RunTensionSimulation(creature catalog.Creature, equipment catalog.Equipment, isBonusDay bool, rng RandomSource) TensionResult {
	res := TensionResult{Tension: tensionStart, Trace: make([]string, 0, 3*maxFightRounds+1)}
	pull := float64(Forgiveness(equipment, isBonusDay)) / 100

	for round := 1; round <= maxFightRounds; round++ {
		res.Rounds = round

		surge := float64(rng.IntRange(-surgeSpread, surgeSpread)) + float64(creature.Difficulty)/10
		res.Tension += surge
		res.Trace = append(res.Trace, fmt.Sprintf("The %s surges (%+.1f tension)! %s", creature.Name, surge, TensionGauge(res.Tension)))
		if lineSnapped(res.Tension) {
			res.Trace = append(res.Trace, snapNarration)
			return res
		}

		action := LineAction(rng.IntRange(int(LineReel), int(LineSlack)))
		res.Tension += action.delta()
		res.Trace = append(res.Trace, action.narration())

		res.Tension += (tensionStart - res.Tension) * pull
		res.Trace = append(res.Trace, "The rod flex smooths things out. "+TensionGauge(res.Tension))
		if lineSnapped(res.Tension) {
			res.Trace = append(res.Trace, snapNarration)
			return res
		}
	}

	res.Landed = true
	res.Trace = append(res.Trace, landingNarration)
	return res
}

func lineSnapped(tension float64) bool {
	return tension <= tensionSnapLow || tension >= tensionSnapHigh
}

// TensionGauge renders a 20-slot bar, e.g. "[##########          ] 52%".
func TensionGauge(tension float64) string {
	filled := max(0, int(math.Floor(tension/5)))
	bar := strings.Repeat("#", filled)
	if pad := gaugeSlots - filled; pad > 0 {
		bar += strings.Repeat(" ", pad)
	}
	return fmt.Sprintf("[%s] %d%%", bar, int(tension))
}
