package catalog

// Equipment is a rod profile. Values are immutable once the catalog is loaded.
type Equipment struct {
	Name               string  `json:"name" yaml:"name"`
	Description        string  `json:"description" yaml:"description"`
	HookBonus          float64 `json:"hook_bonus" yaml:"hook_bonus"`
	TensionForgiveness int     `json:"tension_forgiveness" yaml:"tension_forgiveness"`
}

type Location struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	HookBonus   float64 `json:"hook_bonus" yaml:"hook_bonus"`
	BasePayout  int     `json:"base_payout" yaml:"base_payout"`
}

// Creature belongs to exactly one Location, referenced by name.
type Creature struct {
	Name       string     `json:"name"`
	Location   string     `json:"location"`
	Rarity     RarityTier `json:"rarity"`
	Difficulty int        `json:"difficulty"`
	Value      int        `json:"value"`
}
