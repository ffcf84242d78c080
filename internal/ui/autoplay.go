package ui

import (
	"fmt"
	"io"

	"github.com/appengine-ltd/fishing-friday/internal/game"
	"github.com/appengine-ltd/fishing-friday/internal/logging"
)

// RunAutoPlay casts the line n times without prompting and prints every
// trace followed by an inventory summary.
func RunAutoPlay(w io.Writer, s *game.Session, casts int) error {
	if s == nil {
		return fmt.Errorf("%w: no session", game.ErrInvalidInput)
	}
	if casts < 0 {
		return fmt.Errorf("%w: casts must be >= 0, got %d", game.ErrInvalidInput, casts)
	}

	logging.Info("auto-play started", logging.Fields{"seed": s.Seed(), "casts": casts})
	fmt.Fprintln(w, "Running cozy auto-play...")
	fmt.Fprintln(w)
	for i := 0; i < casts; i++ {
		res, err := s.Cast()
		if err != nil {
			return fmt.Errorf("cast %d: %w", i+1, err)
		}
		for _, line := range res.Trace {
			fmt.Fprintln(w, line)
		}
		if res.Landed && res.Creature != nil {
			fmt.Fprintf(w, "Catalogued %s. Shells now %d\n\n", res.Creature.Name, s.Progress.Currency)
		} else {
			fmt.Fprint(w, "That one slipped free.\n\n")
		}
	}

	fmt.Fprintln(w, "Auto-play finished! Inventory summary:")
	for _, fish := range s.Inventory().Catches {
		fmt.Fprintf(w, " - %s (%s)\n", fish.Name, fish.Rarity)
	}
	fmt.Fprintf(w, "Total shells earned: %d\n", s.Progress.Currency)
	logging.Info("auto-play finished", logging.Fields{
		"shells":  s.Progress.Currency,
		"catches": len(s.Progress.CatchLog),
	})
	return nil
}
