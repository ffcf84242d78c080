package catalog

import (
	"fmt"
	"strings"
)

type RarityTier int

const (
	TierCommon RarityTier = iota
	TierUncommon
	TierRare
	TierEpic
	TierLegendary
)

func AllRarityTiers() []RarityTier {
	return []RarityTier{TierCommon, TierUncommon, TierRare, TierEpic, TierLegendary}
}

func (t RarityTier) String() string {
	switch t {
	case TierCommon:
		return "common"
	case TierUncommon:
		return "uncommon"
	case TierRare:
		return "rare"
	case TierEpic:
		return "epic"
	case TierLegendary:
		return "legendary"
	default:
		return "unknown"
	}
}

// Prized reports whether the tier benefits from the bonus-day rare boost.
func (t RarityTier) Prized() bool {
	return t == TierRare || t == TierEpic || t == TierLegendary
}

func ParseRarityTier(raw string) (RarityTier, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "common":
		return TierCommon, nil
	case "uncommon":
		return TierUncommon, nil
	case "rare":
		return TierRare, nil
	case "epic":
		return TierEpic, nil
	case "legendary":
		return TierLegendary, nil
	default:
		return TierCommon, fmt.Errorf("unknown rarity tier %q", raw)
	}
}

func (t RarityTier) MarshalText() ([]byte, error) {
	if t < TierCommon || t > TierLegendary {
		return nil, fmt.Errorf("unknown rarity tier %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *RarityTier) UnmarshalText(text []byte) error {
	parsed, err := ParseRarityTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// RarityWeights are relative likelihoods; they need not sum to 1.
type RarityWeights map[RarityTier]float64

func (w RarityWeights) Weight(t RarityTier) float64 {
	return w[t]
}
