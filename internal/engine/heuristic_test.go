package engine

import (
	"math/rand"
	"testing"
)

func TestBoardScoreEmptyBoardIsZeroShapeTerms(t *testing.T) {
	b := NewBoard()
	w := Weights{} // zero every coefficient, the b2b/combo ones included, so every term is zero
	got := BoardScore(b, 0, 0, w)
	if got != 0 {
		t.Errorf("an all-zero weight vector must score 0 regardless of board/chain state, got %d", got)
	}
}

func TestBoardScoreTallerBoardIsWorseUnderDefaultWeights(t *testing.T) {
	w := DefaultWeights()
	low := NewBoard()
	low.Set(0, 0)
	high := NewBoard()
	for y := 0; y < 10; y++ {
		high.Set(0, y)
	}
	if BoardScore(high, 0, 0, w) >= BoardScore(low, 0, 0, w) {
		t.Error("default weights penalize height; a taller stack must not score at least as well as a shorter one")
	}
}

func TestBoardScoreHolesPenalized(t *testing.T) {
	w := DefaultWeights()
	clean := NewBoard()
	clean.Set(0, 0)
	clean.Set(0, 1)
	holey := NewBoard()
	holey.Set(0, 0)
	holey.Set(0, 2) // hole at y=1
	if BoardScore(holey, 0, 0, w) >= BoardScore(clean, 0, 0, w) {
		t.Error("a board with a hole must score worse than an equally tall board without one")
	}
}

func TestBoardScoreB2BMonotonic(t *testing.T) {
	w := DefaultWeights()
	b := NewBoard()
	prev := BoardScore(b, 0, 0, w)
	for b2b := int16(1); b2b < 10; b2b++ {
		got := BoardScore(b, b2b, 0, w)
		if got < prev {
			t.Errorf("B2B weight is positive; score must not decrease as b2b grows: b2b=%d got %d < prev %d", b2b, got, prev)
		}
		prev = got
	}
}

func TestClearWeightSelectsTerm(t *testing.T) {
	w := DefaultWeights()
	if got := ClearWeight(0, SpinNone, w); got != 0 {
		t.Errorf("ClearWeight(0 lines) = %d, want 0 (a non-clearing drop contributes nothing)", got)
	}
	if got := ClearWeight(1, SpinMini, w); got != w.ClearMini {
		t.Errorf("ClearWeight(mini) = %d, want ClearMini %d", got, w.ClearMini)
	}
	if got := ClearWeight(1, SpinNormal, w); got != w.ClearNormal {
		t.Errorf("ClearWeight(normal spin) = %d, want ClearNormal %d", got, w.ClearNormal)
	}
	if got := ClearWeight(4, SpinNone, w); got != w.ClearNone {
		t.Errorf("ClearWeight(4 lines, no spin) = %d, want ClearNone %d (classified by spin, not line count)", got, w.ClearNone)
	}
}

func TestWeightsMutateRateZeroIsIdentity(t *testing.T) {
	w := DefaultWeights()
	rng := rand.New(rand.NewSource(7))
	got := w.Mutate(rng, 0, 100)
	if got != w {
		t.Errorf("Mutate with rate 0 must return w unchanged, got %+v want %+v", got, w)
	}
}

func TestWeightsMutateRateOneStaysInRange(t *testing.T) {
	w := DefaultWeights()
	rng := rand.New(rand.NewSource(7))
	const amount = 5
	got := w.Mutate(rng, 1, amount)
	if d := got.Height - w.Height; d < -amount || d > amount {
		t.Errorf("Height mutated by %d, outside [-%d,%d]", d, amount, amount)
	}
}
