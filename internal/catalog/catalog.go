package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrNotFound       = errors.New("not found in catalog")
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type creatureEntry struct {
	Name       string `yaml:"name"`
	Location   string `yaml:"location"`
	Rarity     string `yaml:"rarity"`
	Difficulty int    `yaml:"difficulty"`
	Value      int    `yaml:"value"`
}

type rawCatalog struct {
	Equipment     []Equipment        `yaml:"equipment"`
	Locations     []Location         `yaml:"locations"`
	Creatures     []creatureEntry    `yaml:"creatures"`
	RarityWeights map[string]float64 `yaml:"rarity_weights"`
	RarityColors  map[string]string  `yaml:"rarity_colors"`
}

// Catalog is read-only reference data. Every accessor returns copies so
// callers cannot mutate the shared lists.
type Catalog struct {
	equipment []Equipment
	locations []Location
	creatures []Creature
	weights   RarityWeights
	colors    map[RarityTier]string
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the compiled-in catalog, parsed once per process.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(embeddedCatalog)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded data: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func Load(data []byte) (*Catalog, error) {
	var rc rawCatalog
	if err := yaml.Unmarshal(data, &rc); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrInvalidCatalog, err)
	}

	c := &Catalog{
		equipment: rc.Equipment,
		locations: rc.Locations,
		weights:   make(RarityWeights, len(rc.RarityWeights)),
		colors:    make(map[RarityTier]string, len(rc.RarityColors)),
	}
	for key, w := range rc.RarityWeights {
		tier, err := ParseRarityTier(key)
		if err != nil {
			return nil, fmt.Errorf("%w: rarity_weights: %v", ErrInvalidCatalog, err)
		}
		c.weights[tier] = w
	}
	for key, color := range rc.RarityColors {
		tier, err := ParseRarityTier(key)
		if err != nil {
			return nil, fmt.Errorf("%w: rarity_colors: %v", ErrInvalidCatalog, err)
		}
		c.colors[tier] = color
	}
	for _, e := range rc.Creatures {
		tier, err := ParseRarityTier(e.Rarity)
		if err != nil {
			return nil, fmt.Errorf("%w: creature %q: %v", ErrInvalidCatalog, e.Name, err)
		}
		c.creatures = append(c.creatures, Creature{
			Name:       e.Name,
			Location:   e.Location,
			Rarity:     tier,
			Difficulty: e.Difficulty,
			Value:      e.Value,
		})
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	if len(c.equipment) == 0 {
		return fmt.Errorf("%w: equipment list is empty", ErrInvalidCatalog)
	}
	if len(c.locations) == 0 {
		return fmt.Errorf("%w: locations list is empty", ErrInvalidCatalog)
	}

	seen := make(map[string]struct{}, len(c.equipment))
	for _, e := range c.equipment {
		key := foldName(e.Name)
		if key == "" {
			return fmt.Errorf("%w: equipment entry missing name", ErrInvalidCatalog)
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate equipment %q", ErrInvalidCatalog, e.Name)
		}
		if e.TensionForgiveness < 0 {
			return fmt.Errorf("%w: equipment %q has negative forgiveness", ErrInvalidCatalog, e.Name)
		}
		seen[key] = struct{}{}
	}

	stocked := make(map[string]int, len(c.locations))
	for _, l := range c.locations {
		key := foldName(l.Name)
		if key == "" {
			return fmt.Errorf("%w: location entry missing name", ErrInvalidCatalog)
		}
		if _, dup := stocked[key]; dup {
			return fmt.Errorf("%w: duplicate location %q", ErrInvalidCatalog, l.Name)
		}
		if l.BasePayout < 0 {
			return fmt.Errorf("%w: location %q has negative base payout", ErrInvalidCatalog, l.Name)
		}
		stocked[key] = 0
	}

	for _, tier := range AllRarityTiers() {
		if c.weights[tier] <= 0 {
			return fmt.Errorf("%w: rarity %s needs a positive weight", ErrInvalidCatalog, tier)
		}
	}

	names := make(map[string]struct{}, len(c.creatures))
	for _, cr := range c.creatures {
		key := foldName(cr.Name)
		if key == "" {
			return fmt.Errorf("%w: creature entry missing name", ErrInvalidCatalog)
		}
		if _, dup := names[key]; dup {
			return fmt.Errorf("%w: duplicate creature %q", ErrInvalidCatalog, cr.Name)
		}
		names[key] = struct{}{}
		n, ok := stocked[foldName(cr.Location)]
		if !ok {
			return fmt.Errorf("%w: creature %q lives in unknown location %q", ErrInvalidCatalog, cr.Name, cr.Location)
		}
		if cr.Difficulty <= 0 {
			return fmt.Errorf("%w: creature %q needs a positive difficulty", ErrInvalidCatalog, cr.Name)
		}
		if cr.Value < 0 {
			return fmt.Errorf("%w: creature %q has negative value", ErrInvalidCatalog, cr.Name)
		}
		stocked[foldName(cr.Location)] = n + 1
	}
	for _, l := range c.locations {
		if stocked[foldName(l.Name)] == 0 {
			return fmt.Errorf("%w: location %q has no creatures", ErrInvalidCatalog, l.Name)
		}
	}
	return nil
}

func (c *Catalog) ListEquipment() []Equipment {
	return slices.Clone(c.equipment)
}

func (c *Catalog) ListLocations() []Location {
	return slices.Clone(c.locations)
}

// ListCreaturesAt returns the creatures living at the named location in
// declaration order. Unknown locations yield an empty list.
func (c *Catalog) ListCreaturesAt(location string) []Creature {
	key := foldName(location)
	out := make([]Creature, 0, 2)
	for _, cr := range c.creatures {
		if foldName(cr.Location) == key {
			out = append(out, cr)
		}
	}
	return out
}

func (c *Catalog) RarityWeights() RarityWeights {
	out := make(RarityWeights, len(c.weights))
	for tier, w := range c.weights {
		out[tier] = w
	}
	return out
}

// TierColor returns the display colour name for a tier, "white" when unset.
func (c *Catalog) TierColor(t RarityTier) string {
	if color, ok := c.colors[t]; ok && color != "" {
		return color
	}
	return "white"
}

func (c *Catalog) HasEquipment(e Equipment) bool {
	return slices.Contains(c.equipment, e)
}

func (c *Catalog) HasLocation(l Location) bool {
	return slices.Contains(c.locations, l)
}

func (c *Catalog) EquipmentByName(name string) (Equipment, error) {
	names := make([]string, len(c.equipment))
	for i, e := range c.equipment {
		names[i] = e.Name
	}
	idx, err := matchName(names, name)
	if err != nil {
		return Equipment{}, fmt.Errorf("equipment: %w", err)
	}
	return c.equipment[idx], nil
}

func (c *Catalog) LocationByName(name string) (Location, error) {
	names := make([]string, len(c.locations))
	for i, l := range c.locations {
		names[i] = l.Name
	}
	idx, err := matchName(names, name)
	if err != nil {
		return Location{}, fmt.Errorf("location: %w", err)
	}
	return c.locations[idx], nil
}

// matchName resolves a case-insensitive exact name, then a unique prefix.
// Misses carry the closest name as a suggestion when it is near enough.
func matchName(names []string, query string) (int, error) {
	q := foldName(query)
	if q == "" {
		return -1, fmt.Errorf("%w: empty name", ErrNotFound)
	}
	for i, n := range names {
		if foldName(n) == q {
			return i, nil
		}
	}

	prefixHit := -1
	for i, n := range names {
		if len(q) >= 3 && strings.HasPrefix(foldName(n), q) {
			if prefixHit >= 0 {
				return -1, fmt.Errorf("%w: %q is ambiguous", ErrNotFound, query)
			}
			prefixHit = i
		}
	}
	if prefixHit >= 0 {
		return prefixHit, nil
	}

	best, bestDist := "", -1
	for _, n := range names {
		d := levenshtein.ComputeDistance(q, foldName(n))
		if bestDist < 0 || d < bestDist {
			best, bestDist = n, d
		}
	}
	if bestDist >= 0 && bestDist <= suggestLimit(len(q)) {
		return -1, fmt.Errorf("%w: %q (did you mean %q?)", ErrNotFound, query, best)
	}
	return -1, fmt.Errorf("%w: %q", ErrNotFound, query)
}

func suggestLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// foldName ignores case, surrounding space and apostrophes.
func foldName(s string) string {
	s = strings.NewReplacer("'", "", "’", "").Replace(s)
	return strings.ToLower(strings.TrimSpace(s))
}
