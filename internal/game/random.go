package game

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// RandomSource supplies every draw the engine makes. A fixed seed must
// reproduce the same sequence.
type RandomSource interface {
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
	// IntRange returns a uniform integer in [lo, hi], both inclusive.
	IntRange(lo, hi int) int
	// WeightedChoice returns an index picked with probability proportional
	// to its weight. Weights need not be normalised.
	WeightedChoice(weights []float64) (int, error)
}

type SeededSource struct {
	seed int64
	rng  *rand.Rand
}

func NewSeededSource(seed int64) *SeededSource {
	return &SeededSource{seed: seed, rng: seededRNG(seed)}
}

func (s *SeededSource) Seed() int64 {
	return s.seed
}

func (s *SeededSource) Float64() float64 {
	return s.rng.Float64()
}

func (s *SeededSource) IntRange(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}

func (s *SeededSource) WeightedChoice(weights []float64) (int, error) {
	if err := checkWeights(weights); err != nil {
		return -1, err
	}
	return pickWeighted(weights, s.rng.Float64()), nil
}

func checkWeights(weights []float64) error {
	if len(weights) == 0 {
		return fmt.Errorf("%w: weighted choice over an empty set", ErrInvalidState)
	}
	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight %.4f at index %d", ErrInvalidState, w, i)
		}
		total += w
	}
	if total <= 0 {
		return fmt.Errorf("%w: weighted choice with zero total weight", ErrInvalidState)
	}
	return nil
}

// pickWeighted walks the cumulative weights with draw in [0, 1).
func pickWeighted(weights []float64, draw float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	target := draw * total
	cum := 0.0
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		last = i
		if target < cum {
			return i
		}
	}
	return last
}

func seededRNG(seed int64) *rand.Rand {
	// Non-cryptographic PRNG is intentional for deterministic simulation behavior.
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
