package game

import (
	"math"
	"strings"
	"testing"

	"github.com/appengine-ltd/fishing-friday/internal/catalog"
)

func reedMinnow() catalog.Creature {
	return catalog.Creature{Name: "Reed Minnow", Location: "Forest Pond", Rarity: catalog.TierCommon, Difficulty: 12, Value: 4}
}

func TestTensionGauge(t *testing.T) {
	tests := []struct {
		tension float64
		want    string
	}{
		{tension: 50, want: "[##########          ] 50%"},
		{tension: 52.24, want: "[##########          ] 52%"},
		{tension: 9.9, want: "[#                   ] 9%"},
		{tension: 96, want: "[################### ] 96%"},
		{tension: 104, want: "[####################] 104%"},
		{tension: -3, want: "[                    ] -3%"},
	}
	for _, tc := range tests {
		if got := TensionGauge(tc.tension); got != tc.want {
			t.Fatalf("TensionGauge(%.2f)=%q want=%q", tc.tension, got, tc.want)
		}
	}
}

func TestForgiveness(t *testing.T) {
	_, rod := pondAndSprig(t)
	if got := Forgiveness(rod, false); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	if got := Forgiveness(rod, true); got != 34 {
		t.Fatalf("expected 34 on bonus day, got %d", got)
	}
}

func TestTensionTrajectoryWillowSprig(t *testing.T) {
	_, rod := pondAndSprig(t)
	src := &scriptedSource{t: t, ints: []int{2, int(LineHold), -4, int(LineReel), 0, int(LineSlack)}}

	res := RunTensionSimulation(reedMinnow(), rod, false, src)
	if !res.Landed {
		t.Fatalf("expected landing, trace: %v", res.Trace)
	}
	if res.Rounds != 3 {
		t.Fatalf("expected 3 rounds, got %d", res.Rounds)
	}
	if math.Abs(res.Tension-49.4456) > 1e-9 {
		t.Fatalf("expected final tension 49.4456, got %.6f", res.Tension)
	}
	want := []string{
		"The Reed Minnow surges (+3.2 tension)! [##########          ] 53%",
		"You hold steady, letting the rod flex.",
		"The rod flex smooths things out. [##########          ] 52%",
		"The Reed Minnow surges (-2.8 tension)! [#########           ] 49%",
		"You reel firmly, pulling tension up.",
		"The rod flex smooths things out. [###########         ] 58%",
		"The Reed Minnow surges (+1.2 tension)! [###########         ] 59%",
		"You ease the line and let the fish run.",
		"The rod flex smooths things out. [#########           ] 49%",
		"You guide the catch into your net!",
	}
	if len(res.Trace) != len(want) {
		t.Fatalf("expected %d trace lines, got %d: %v", len(want), len(res.Trace), res.Trace)
	}
	for i := range want {
		if res.Trace[i] != want[i] {
			t.Fatalf("trace[%d]=%q want=%q", i, res.Trace[i], want[i])
		}
	}
	if !src.drained() {
		t.Fatalf("expected all scripted draws to be consumed")
	}
}

func TestTensionSnapsOnFirstSurge(t *testing.T) {
	brute := catalog.Creature{Name: "Iron Pike", Rarity: catalog.TierEpic, Difficulty: 300}
	src := &scriptedSource{t: t, ints: []int{12}}

	res := RunTensionSimulation(brute, catalog.Equipment{}, false, src)
	if res.Landed {
		t.Fatalf("expected the line to snap")
	}
	want := []string{
		"The Iron Pike surges (+42.0 tension)! [##################  ] 92%",
		"The line snapped! Too much tension.",
	}
	if strings.Join(res.Trace, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected trace %q", res.Trace)
	}
	if res.Rounds != 1 {
		t.Fatalf("expected to stop in round 1, got %d", res.Rounds)
	}
	if !src.drained() {
		t.Fatalf("expected no action draw after the snap")
	}
}

func TestTensionSnapsAfterRecentering(t *testing.T) {
	wisp := catalog.Creature{Name: "Friday Wisp", Rarity: catalog.TierEpic, Difficulty: 30}
	src := &scriptedSource{t: t, ints: []int{12, int(LineReel), 12, int(LineReel)}}

	res := RunTensionSimulation(wisp, catalog.Equipment{}, false, src)
	if res.Landed {
		t.Fatalf("expected the line to snap")
	}
	if res.Rounds != 2 {
		t.Fatalf("expected snap in round 2, got %d", res.Rounds)
	}
	if len(res.Trace) != 7 {
		t.Fatalf("expected 7 trace lines, got %d: %v", len(res.Trace), res.Trace)
	}
	if res.Trace[5] != "The rod flex smooths things out. [##################  ] 90%" {
		t.Fatalf("unexpected recenter line %q", res.Trace[5])
	}
	if res.Trace[6] != snapNarration {
		t.Fatalf("expected snap narration last, got %q", res.Trace[6])
	}
}

func TestTensionAlwaysTerminatesWithinThreeRounds(t *testing.T) {
	cat := catalog.Default()
	src := NewSeededSource(77)
	landed, snapped := 0, 0
	for i := 0; i < 3000; i++ {
		for _, loc := range cat.ListLocations() {
			for _, c := range cat.ListCreaturesAt(loc.Name) {
				rod := cat.ListEquipment()[i%3]
				res := RunTensionSimulation(c, rod, i%2 == 0, src)
				if res.Rounds < 1 || res.Rounds > maxFightRounds {
					t.Fatalf("rounds out of bounds: %d", res.Rounds)
				}
				last := res.Trace[len(res.Trace)-1]
				switch {
				case res.Landed && last == landingNarration:
					landed++
				case !res.Landed && last == snapNarration:
					snapped++
				default:
					t.Fatalf("inconsistent outcome landed=%v last=%q", res.Landed, last)
				}
				if res.Landed && res.Rounds != maxFightRounds {
					t.Fatalf("landed before round three")
				}
			}
		}
	}
	if landed == 0 || snapped == 0 {
		t.Fatalf("expected both outcomes over many fights, landed=%d snapped=%d", landed, snapped)
	}
}
