package game

import (
	"errors"
	"math"
	"testing"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
)

// scriptedSource replays fixed draws so fights can be steered exactly.
type scriptedSource struct {
	t       *testing.T
	floats  []float64
	ints    []int
	choices []int
}

func (s *scriptedSource) Float64() float64 {
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatalf("scripted source: out of float draws")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) IntRange(lo, hi int) int {
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatalf("scripted source: out of int draws")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < lo || v > hi {
		s.t.Fatalf("scripted source: int draw %d outside [%d, %d]", v, lo, hi)
	}
	return v
}

func (s *scriptedSource) WeightedChoice(weights []float64) (int, error) {
	s.t.Helper()
	if err := checkWeights(weights); err != nil {
		return -1, err
	}
	if len(s.choices) == 0 {
		s.t.Fatalf("scripted source: out of weighted choices")
	}
	v := s.choices[0]
	s.choices = s.choices[1:]
	return v, nil
}

func (s *scriptedSource) drained() bool {
	return len(s.floats) == 0 && len(s.ints) == 0 && len(s.choices) == 0
}

func TestSeededRNGDeterministic(t *testing.T) {
	rngA := seededRNG(12345)
	rngB := seededRNG(12345)

	for i := 0; i < 20; i++ {
		gotA := rngA.IntN(100000)
		gotB := rngB.IntN(100000)
		if gotA != gotB {
			t.Fatalf("expected deterministic sequence, mismatch at %d: %d != %d", i, gotA, gotB)
		}
	}
}

func TestSeedWordChangesWithSalt(t *testing.T) {
	a := seedWord(99, "a")
	b := seedWord(99, "b")
	if a == b {
		t.Fatalf("expected different seed words for different salts")
	}
}

func TestSeededSourceIntRangeInclusive(t *testing.T) {
	src := NewSeededSource(7)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := src.IntRange(-12, 12)
		if v < -12 || v > 12 {
			t.Fatalf("draw %d out of range", v)
		}
		seen[v] = true
	}
	if !seen[-12] || !seen[12] {
		t.Fatalf("expected both bounds to be drawn, got %v", seen)
	}
}

func TestWeightedChoiceRejectsEmptyAndZero(t *testing.T) {
	src := NewSeededSource(1)
	for _, weights := range [][]float64{nil, {}, {0, 0}, {1, -1}} {
		_, err := src.WeightedChoice(weights)
		if !errors.Is(err, ErrInvalidState) {
			t.Fatalf("weights %v: expected ErrInvalidState, got %v", weights, err)
		}
	}
}

func TestPickWeightedSkipsZeroWeights(t *testing.T) {
	weights := []float64{0, 2, 0, 1}
	cases := []struct {
		draw float64
		want int
	}{
		{draw: 0, want: 1},
		{draw: 0.66, want: 1},
		{draw: 0.67, want: 3},
		{draw: 0.999999, want: 3},
	}
	for _, tc := range cases {
		if got := pickWeighted(weights, tc.draw); got != tc.want {
			t.Fatalf("pickWeighted(draw=%v)=%d want=%d", tc.draw, got, tc.want)
		}
	}
}

func TestWeightedChoiceConvergesToWeightShare(t *testing.T) {
	weights := catalog.Default().RarityWeights()
	tiers := catalog.AllRarityTiers()
	ws := make([]float64, len(tiers))
	total := 0.0
	for i, tier := range tiers {
		ws[i] = weights[tier]
		total += ws[i]
	}

	src := NewSeededSource(2024)
	const draws = 200000
	counts := make([]int, len(tiers))
	for i := 0; i < draws; i++ {
		idx, err := src.WeightedChoice(ws)
		if err != nil {
			t.Fatalf("weighted choice: %v", err)
		}
		counts[idx]++
	}
	for i, tier := range tiers {
		want := ws[i] / total
		got := float64(counts[i]) / draws
		if math.Abs(want-got) > 0.006 {
			t.Fatalf("tier %s share=%.4f want=%.4f", tier, got, want)
		}
	}
}
