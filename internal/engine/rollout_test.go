package engine

import (
	"errors"
	"math/rand"
	"testing"

	"xiangqi/internal/xiangqi"
)

func TestParseRollout(t *testing.T) {
	for name, want := range map[string]RolloutPolicy{
		"random": RolloutRandom,
		"BestOf": RolloutBestOfK,
		"greedy": RolloutGreedy,
	} {
		got, err := ParseRollout(name)
		if err != nil || got != want {
			t.Fatalf("ParseRollout(%q) got=%v,%v want=%v", name, got, err, want)
		}
	}
	if _, err := ParseRollout("uniform"); !errors.Is(err, ErrUnknownRollout) {
		t.Fatalf("unknown rollout err got=%v want=%v", err, ErrUnknownRollout)
	}
}

func TestRolloutFromMatedPosition(t *testing.T) {
	mated := mustApply(t, mustDecode(t, mateInOneFEN), "a4a9")
	rng := rand.New(rand.NewSource(1))
	for _, p := range []RolloutPolicy{RolloutRandom, RolloutBestOfK, RolloutGreedy} {
		if got := Rollout(mated, p, RolloutPlies, PackMaterial, rng); got != 1 {
			t.Fatalf("%v got=%v want=1", p, got)
		}
	}
}

func TestRolloutBounded(t *testing.T) {
	pos := xiangqi.NewInitialPosition()
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		for _, p := range []RolloutPolicy{RolloutRandom, RolloutBestOfK, RolloutGreedy} {
			if v := Rollout(pos, p, RolloutPlies, PackMobility, rng); v < -1 || v > 1 {
				t.Fatalf("%v rollout out of range got=%v", p, v)
			}
		}
	}
	if got := Rollout(pos, RolloutRandom, 0, PackMaterial, rng); got != 0 {
		t.Fatalf("zero plies got=%v want=0", got)
	}
}

func TestGreedyRolloutTakesMaterial(t *testing.T) {
	pos := mustDecode(t, "4k4/9/9/9/9/9/9/9/r8/R2K5 w")
	rng := rand.New(rand.NewSource(2))
	if got, want := Rollout(pos, RolloutGreedy, 1, PackMaterial, rng), 90.0/rolloutScale; got != want {
		t.Fatalf("greedy got=%v want=%v", got, want)
	}
	// 轮到黑方时贪心也要站在黑方这边
	black := mustDecode(t, "r2k5/R8/9/9/9/9/9/9/9/4K4 b")
	if got, want := Rollout(black, RolloutGreedy, 1, PackMaterial, rng), -90.0/rolloutScale; got != want {
		t.Fatalf("black greedy got=%v want=%v", got, want)
	}
}

func TestTerminalValueClamps(t *testing.T) {
	pos := mustDecode(t, "rrr1k4/9/9/9/9/9/9/9/9/3K5 b")
	if got := TerminalValue(pos, scaled(100)); got != -1 {
		t.Fatalf("clamped got=%v want=-1", got)
	}
	if got := TerminalValue(pos, scaled(0.5)); got != -0.5*270/rolloutScale {
		t.Fatalf("scaled got=%v", got)
	}
}

// scaled 把子力分放大 k 倍
type scaled float64

func (k scaled) Evaluate(pos *xiangqi.Position) float64 {
	return float64(k) * PackMaterial.Evaluate(pos)
}
