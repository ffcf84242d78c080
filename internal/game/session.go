package game

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
)

const DefaultStartingCurrency = 18

// ActionHandler is the boundary the interactive loop drives, one call per
// player action.
type ActionHandler interface {
	Cast() (EncounterResult, error)
	Travel(index int) error
	Reequip(index int) error
	Inventory() InventorySummary
	Quit()
}

type SessionConfig struct {
	Seed             int64
	DayOverride      string
	StartingCurrency int
	// Equipment and Location are catalog names; empty picks the first entry.
	Equipment string
	Location  string
	// Now is used for the weekday when no override is set. Zero means time.Now().
	Now time.Time
}

func (c SessionConfig) Validate() error {
	if c.StartingCurrency < 0 {
		return fmt.Errorf("%w: starting currency must be >= 0, got %d", ErrInvalidInput, c.StartingCurrency)
	}
	return nil
}

// Session is the single-player state for one sitting. It is not safe for
// concurrent use; parallel sessions need their own Session each.
type Session struct {
	engine   *Engine
	rng      RandomSource
	seed     int64
	Progress PlayerProgress
	Location catalog.Location
	Day      DayContext
	done     bool
}

var _ ActionHandler = (*Session)(nil)

func NewSession(c *catalog.Catalog, cfg SessionConfig) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	engine := NewEngine(c)
	cat := engine.Catalog()

	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	day, err := NewDayContext(cfg.DayOverride, now)
	if err != nil {
		return nil, err
	}

	equipment := cat.ListEquipment()[0]
	if cfg.Equipment != "" {
		if equipment, err = cat.EquipmentByName(cfg.Equipment); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	location := cat.ListLocations()[0]
	if cfg.Location != "" {
		if location, err = cat.LocationByName(cfg.Location); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = now.UnixNano()
	}

	return &Session{
		engine:   engine,
		rng:      NewSeededSource(seed),
		seed:     seed,
		Progress: NewPlayerProgress(cfg.StartingCurrency, equipment),
		Location: location,
		Day:      day,
	}, nil
}

func (s *Session) Seed() int64 {
	return s.seed
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.engine.Catalog()
}

func (s *Session) Done() bool {
	return s.done
}

func (s *Session) Cast() (EncounterResult, error) {
	return s.engine.Attempt(&s.Progress, s.Location, s.Day, s.rng)
}

// Travel moves to the location at a 0-based catalog index.
func (s *Session) Travel(index int) error {
	locs := s.Catalog().ListLocations()
	if index < 0 || index >= len(locs) {
		return fmt.Errorf("%w: location #%d out of range 1-%d", ErrInvalidInput, index+1, len(locs))
	}
	s.Location = locs[index]
	return nil
}

// Reequip switches to the equipment at a 0-based catalog index.
func (s *Session) Reequip(index int) error {
	rods := s.Catalog().ListEquipment()
	if index < 0 || index >= len(rods) {
		return fmt.Errorf("%w: rod #%d out of range 1-%d", ErrInvalidInput, index+1, len(rods))
	}
	s.Progress.Equipment = rods[index]
	return nil
}

func (s *Session) Quit() {
	s.done = true
}

type InventorySummary struct {
	Catches    []catalog.Creature
	TotalValue int
	Currency   int
}

func (s *Session) Inventory() InventorySummary {
	return InventorySummary{
		Catches:    append([]catalog.Creature(nil), s.Progress.CatchLog...),
		TotalValue: s.Progress.TotalValue(),
		Currency:   s.Progress.Currency,
	}
}

func (i InventorySummary) Lines() []string {
	if len(i.Catches) == 0 {
		return []string{"Your journal is empty. Time to fish!"}
	}
	lines := make([]string, 0, len(i.Catches)+2)
	lines = append(lines, "Caught fish:")
	for _, c := range i.Catches {
		lines = append(lines, fmt.Sprintf(" - %s (%s, worth %d shells)", c.Name, c.Rarity, c.Value))
	}
	lines = append(lines, fmt.Sprintf("Total catalog value: %d shells", i.TotalValue))
	return lines
}

// Header is the status block shown before each turn.
func (s *Session) Header() []string {
	note := "Calm ripples wait for a bite."
	if s.Day.BonusDay {
		note = "Shimmering anomalies drift across the water..."
	}
	return []string{
		s.Day.Describe(),
		fmt.Sprintf("Location: %s | Rod: %s | Shells: %d", s.Location.Name, s.Progress.Equipment.Name, s.Progress.Currency),
		note,
	}
}

// LocationMenu lists locations 1-based, marking the current one.
func (s *Session) LocationMenu() []string {
	locs := s.Catalog().ListLocations()
	lines := make([]string, 0, 2*len(locs))
	for i, l := range locs {
		marker := ""
		if l == s.Location {
			marker = " (current)"
		}
		lines = append(lines, fmt.Sprintf(" %d. %s%s", i+1, l.Name, marker), "    "+l.Description)
	}
	return lines
}

// RodMenu lists equipment 1-based, marking the equipped one.
func (s *Session) RodMenu() []string {
	rods := s.Catalog().ListEquipment()
	lines := make([]string, 0, 2*len(rods))
	for i, r := range rods {
		marker := ""
		if r == s.Progress.Equipment {
			marker = " (equipped)"
		}
		lines = append(lines,
			fmt.Sprintf(" %d. %s%s", i+1, r.Name, marker),
			fmt.Sprintf("    %s (hook %+.0f%%, forgiveness +%d)", r.Description, r.HookBonus*100, r.TensionForgiveness),
		)
	}
	return lines
}

// LandingLine is the follow-up printed after a cast's trace.
func LandingLine(res EncounterResult) string {
	if res.Landed && res.Creature != nil {
		return fmt.Sprintf("Added %s to your journal!", res.Creature.Name)
	}
	return "The fish got away..."
}

func isInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
